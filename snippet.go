package sectionize

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/AmritanshuRaj45/sectionize/nlp"
)

// DefaultSnippetMaxLength is the character budget for extracted
// snippets when no override is given.
const DefaultSnippetMaxLength = 320

// SnippetOption customizes snippet extraction.
type SnippetOption func(*snippetOptions)

type snippetOptions struct {
	persona   string
	maxLength int
}

// WithPersona sets the persona used for relevance ranking and for
// persona-specific framing prefixes.
func WithPersona(persona string) SnippetOption {
	return func(o *snippetOptions) { o.persona = persona }
}

// WithMaxLength overrides the snippet character budget.
func WithMaxLength(n int) SnippetOption {
	return func(o *snippetOptions) {
		if n > 0 {
			o.maxLength = n
		}
	}
}

// personaPrefixes maps persona keywords to framing prefixes. Matched
// case-sensitively, in order; every match prepends, so a later match
// ends up outermost.
var personaPrefixes = []struct {
	keyword string
	prefix  string
}{
	{"HR", "For HR professionals: "},
	{"Travel", "Travel planner note: "},
}

var sentenceSplitRe = regexp.MustCompile(`[.\n]`)

// ExtractSnippet builds a short, query-relevant excerpt from a section
// body. Sentences are ranked by relevance to the query and persona,
// then greedily packed into the length budget in rank order. The
// oracle may be nil; ranking then falls back to word overlap.
func ExtractSnippet(ctx context.Context, oracle nlp.Oracle, body, query string, opts ...SnippetOption) string {
	o := snippetOptions{maxLength: DefaultSnippetMaxLength}
	for _, opt := range opts {
		opt(&o)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}

	candidates := splitCandidates(body)
	if len(candidates) == 0 {
		return strings.TrimSpace(truncateRunes(body, o.maxLength))
	}

	ranked := rankSentences(ctx, oracle, candidates, query, o.persona)

	var buf strings.Builder
	used := 0
	for _, sent := range ranked {
		n := utf8.RuneCountInString(sent)
		if used+n+2 > o.maxLength {
			break
		}
		buf.WriteString(sent)
		buf.WriteString(". ")
		used += n + 2
	}

	result := buf.String()
	if result == "" {
		// Nothing fit whole; hard-truncate the best sentence.
		return strings.TrimSpace(truncateRunes(ranked[0], o.maxLength))
	}

	result = applyPersonaPrefix(result, o.persona)
	return strings.TrimSpace(result)
}

// splitCandidates breaks a body into candidate sentences on periods
// and newlines, keeping only substantial ones.
func splitCandidates(body string) []string {
	parts := sentenceSplitRe.Split(body, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) > 10 {
			out = append(out, p)
		}
	}
	return out
}

// rankSentences orders candidates by descending relevance. With an
// oracle available, relevance is semantic similarity to the combined
// persona and query text; otherwise it is whitespace-token overlap
// with the query. Ties keep input order.
func rankSentences(ctx context.Context, oracle nlp.Oracle, candidates []string, query, persona string) []string {
	target := strings.TrimSpace(persona + " " + query)
	scores := make([]float64, len(candidates))

	scored := false
	if oracle != nil && target != "" {
		scored = true
		for i, sent := range candidates {
			sim, err := oracle.Similarity(ctx, sent, target)
			if err != nil {
				scored = false
				break
			}
			scores[i] = sim
		}
	}
	if !scored && query != "" {
		// Lexical fallback ranks against the query alone; persona
		// only matters to the oracle's semantic comparison.
		queryWords := wordSet(query)
		for i, sent := range candidates {
			scores[i] = overlapCount(wordSet(sent), queryWords)
		}
	}

	ranked := make([]string, len(candidates))
	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	for i, j := range idx {
		ranked[i] = candidates[j]
	}
	return ranked
}

// wordSet collects the raw lowercased whitespace tokens of a string.
// Tokens are not cleaned or length-filtered, so short function words
// still count toward overlap.
func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[w] = struct{}{}
	}
	return out
}

func overlapCount(sent, target map[string]struct{}) float64 {
	n := 0
	for w := range sent {
		if _, ok := target[w]; ok {
			n++
		}
	}
	return float64(n)
}

func applyPersonaPrefix(snippet, persona string) string {
	if persona == "" {
		return snippet
	}
	for _, pp := range personaPrefixes {
		if strings.Contains(persona, pp.keyword) {
			snippet = pp.prefix + snippet
		}
	}
	return snippet
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
