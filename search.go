package sectionize

import (
	"sort"
	"strings"

	"github.com/AmritanshuRaj45/sectionize/nlp"
	"github.com/AmritanshuRaj45/sectionize/store"
)

const rrfK = 60 // RRF constant (standard value from literature)

// SearchOption customizes a search call.
type SearchOption func(*searchOptions)

type searchOptions struct {
	maxResults int
	persona    string
	snippets   bool
}

// WithMaxResults limits how many fused results are returned.
func WithMaxResults(n int) SearchOption {
	return func(o *searchOptions) {
		if n > 0 {
			o.maxResults = n
		}
	}
}

// WithSearchPersona sets the persona used for snippet extraction on
// search results.
func WithSearchPersona(persona string) SearchOption {
	return func(o *searchOptions) { o.persona = persona }
}

// WithSnippets toggles snippet extraction for each result.
func WithSnippets(enabled bool) SearchOption {
	return func(o *searchOptions) { o.snippets = enabled }
}

// fuseRRF implements Reciprocal Rank Fusion over the vector and FTS
// result lists. Each list is ranked independently, then scores combine
// as: score = sum(weight_i / (k + rank_i)).
func fuseRRF(vecResults, ftsResults []store.SearchResult, weightVec, weightFTS float64, maxResults int) []store.SearchResult {
	type fusedEntry struct {
		result store.SearchResult
		score  float64
		order  int
	}

	fused := make(map[int64]*fusedEntry)
	next := 0

	add := func(results []store.SearchResult, weight float64) {
		for rank, r := range results {
			entry, ok := fused[r.SectionID]
			if !ok {
				entry = &fusedEntry{result: r, order: next}
				next++
				fused[r.SectionID] = entry
			}
			entry.score += weight / float64(rrfK+rank+1)
		}
	}

	add(vecResults, weightVec)
	add(ftsResults, weightFTS)

	entries := make([]*fusedEntry, 0, len(fused))
	for _, e := range fused {
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].order < entries[j].order
	})

	if maxResults > 0 && len(entries) > maxResults {
		entries = entries[:maxResults]
	}

	results := make([]store.SearchResult, len(entries))
	for i, e := range entries {
		results[i] = e.result
		results[i].Score = e.score
	}
	return results
}

// sanitizeFTSQuery strips FTS5 syntax characters and builds an OR
// query: the full phrase plus individual significant terms.
func sanitizeFTSQuery(query string) string {
	replacer := strings.NewReplacer(
		"\"", "",
		"*", "",
		"(", "",
		")", "",
		"+", "",
		"-", "",
		"^", "",
		":", "",
		"?", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
		"!", "",
		".", "",
		",", "",
		";", "",
	)
	cleaned := replacer.Replace(query)

	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return query
	}

	var parts []string
	if len(words) > 1 {
		parts = append(parts, "\""+strings.Join(words, " ")+"\"")
	}
	for _, w := range words {
		if len(w) > 2 && !nlp.IsStopWord(w) {
			parts = append(parts, w)
		}
	}

	if len(parts) == 0 {
		return strings.Join(words, " OR ")
	}
	return strings.Join(parts, " OR ")
}
