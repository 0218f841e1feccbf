package section

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/AmritanshuRaj45/sectionize/nlp"
)

// ---------------------------------------------------------------------------
// Heading rules
// ---------------------------------------------------------------------------

// headingPatterns are the structural line shapes that mark a probable
// section title, tried in order.
var headingPatterns = []*regexp.Regexp{
	// Capitalized line of moderate length with no internal period.
	regexp.MustCompile(`^[A-Z][^.\n]{10,100}$`),
	// Capitalized phrase of word-like and light punctuation characters.
	regexp.MustCompile(`^(?:[A-Z][a-z0-9 \-&(),:]{8,120})$`),
	// Title Case with at least two words.
	regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+)+$`),
	// Capitalized line naming a structural noun.
	regexp.MustCompile(`^(?:[A-Za-z].*Guide|Checklist|Tips|Things to Do)`),
}

// focusKeywords promote a line to heading candidate when one appears
// within the line's first 50 characters, case-insensitively.
var focusKeywords = []string{
	"guide", "how to", "create", "convert", "edit", "checklist", "tips", "tricks",
	"introduction", "overview", "summary", "activity", "activities",
	"culinary", "nightlife", "entertainment", "forms", "sign",
}

// reservedTitles are placeholder strings that can never be a heading
// or a usable title.
var reservedTitles = map[string]bool{
	"untitled section": true,
	"section":          true,
	"heading":          true,
	"index":            true,
}

// bulletGlyphs are bare list markers.
var bulletGlyphs = map[string]bool{"•": true, "●": true, "-": true, "*": true}

// ---------------------------------------------------------------------------
// Detector
// ---------------------------------------------------------------------------

// Detector infers section boundaries from one page of raw text. A nil
// oracle loses the noun-phrase heading signal and the noun-chunk
// fallback but never disables detection.
type Detector struct {
	oracle nlp.Oracle
}

// NewDetector returns a Detector using the given oracle, which may be nil.
func NewDetector(oracle nlp.Oracle) *Detector {
	return &Detector{oracle: oracle}
}

// DetectSections splits one page's text into ordered (title, body)
// sections. It never fails: malformed or empty input yields an empty
// slice, and an empty slice is a valid final outcome when no usable
// structure exists.
func (d *Detector) DetectSections(ctx context.Context, pageText string, fontInfo []FontSpan) []Section {
	_ = fontInfo

	rawLines := strings.Split(pageText, "\n")
	lines := make([]string, len(rawLines))
	for i, l := range rawLines {
		lines[i] = strings.TrimSpace(l)
	}

	// Line indices are visited in order and appended at most once, so
	// the candidate list is already unique and ascending.
	var headingIdxs []int
	for i, line := range lines {
		if isHeading(line) {
			headingIdxs = append(headingIdxs, i)
		} else if d.oracle != nil && d.isNounPhraseHeading(ctx, line) {
			headingIdxs = append(headingIdxs, i)
		}
	}

	var sections []Section
	for i, hidx := range headingIdxs {
		hend := len(lines)
		if i+1 < len(headingIdxs) {
			hend = headingIdxs[i+1]
		}
		title := lines[hidx]
		if !UsableTitle(title) {
			continue
		}
		// Adjacent heading candidates legitimately produce zero-content
		// sections here; the length filter drops them.
		var bodyLines []string
		for _, l := range lines[hidx+1 : hend] {
			if l != "" {
				bodyLines = append(bodyLines, l)
			}
		}
		body := strings.TrimSpace(strings.Join(bodyLines, "\n"))
		if utf8.RuneCountInString(body) < 30 {
			continue
		}
		sections = append(sections, Section{Title: title, Body: body})
	}
	if len(sections) > 0 {
		return sections
	}

	return d.fallback(ctx, pageText, lines)
}

// fallback is the ladder applied when boundary detection finds nothing
// on a page that still has text. It emits at most one section covering
// the whole page, or nothing: a meaningless placeholder title is never
// fabricated, since downstream consumers read absence as "no usable
// structure".
func (d *Detector) fallback(ctx context.Context, pageText string, lines []string) []Section {
	trimmed := strings.TrimSpace(pageText)
	if trimmed == "" {
		return nil
	}

	// Longest capitalized line with an internal space.
	var best string
	for _, l := range lines {
		if utf8.RuneCountInString(l) < 10 || bulletGlyphs[l] {
			continue
		}
		first, _ := utf8.DecodeRuneInString(l)
		if !unicode.IsUpper(first) || !strings.Contains(l, " ") {
			continue
		}
		if utf8.RuneCountInString(l) > utf8.RuneCountInString(best) {
			best = l
		}
	}
	if best != "" {
		if UsableTitle(best) {
			return []Section{{Title: best, Body: trimmed}}
		}
		// A candidate line exists but is unusable; noun chunks are
		// only consulted when no candidate line exists at all.
		return nil
	}

	// First usable title-cased noun chunk.
	if d.oracle != nil {
		chunks, err := d.oracle.NounChunks(ctx, pageText)
		if err == nil {
			for _, c := range chunks {
				c = strings.TrimSpace(c)
				if utf8.RuneCountInString(c) <= 12 {
					continue
				}
				if title := titleCase(c); UsableTitle(title) {
					return []Section{{Title: title, Body: trimmed}}
				}
			}
		}
	}

	return nil
}

// isNounPhraseHeading reports whether a line reads as a noun phrase
// rather than a sentence: longer than 10 characters, no trailing
// period, at least one noun-headed chunk, and no verb. Oracle errors
// count as no signal.
func (d *Detector) isNounPhraseHeading(ctx context.Context, line string) bool {
	if utf8.RuneCountInString(line) <= 10 || strings.HasSuffix(line, ".") {
		return false
	}
	chunks, err := d.oracle.NounChunks(ctx, line)
	if err != nil || len(chunks) == 0 {
		return false
	}
	toks, err := d.oracle.Tokens(ctx, line)
	if err != nil {
		return false
	}
	for _, t := range toks {
		if t.POS == nlp.POSVerb {
			return false
		}
	}
	return true
}

// isHeading applies the rule-based heading test to a trimmed line.
func isHeading(line string) bool {
	if line == "" {
		return false
	}
	if reservedTitles[strings.ToLower(line)] {
		return false
	}
	if bulletGlyphs[line] || line == "." {
		return false
	}
	if strings.HasSuffix(line, ".") {
		return false
	}
	if utf8.RuneCountInString(line) < 10 {
		return false
	}
	for _, pat := range headingPatterns {
		if pat.MatchString(line) {
			return true
		}
	}
	head := strings.ToLower(line)
	if r := []rune(head); len(r) > 50 {
		head = string(r[:50])
	}
	for _, kw := range focusKeywords {
		if strings.Contains(head, kw) {
			return true
		}
	}
	return false
}

// UsableTitle is the single validity predicate for candidate section
// titles, shared verbatim by boundary detection and the fallback
// ladder: non-empty, at least 10 characters and 2 words, at least one
// letter, no reserved placeholder, no terminal punctuation, not a bare
// bullet, and not starting lowercase.
func UsableTitle(title string) bool {
	t := strings.TrimSpace(title)
	if t == "" || utf8.RuneCountInString(t) < 10 {
		return false
	}
	lower := strings.ToLower(t)
	if lower == "untitled section" || lower == "section" || lower == "heading" {
		return false
	}
	if strings.HasSuffix(t, ".") || strings.HasSuffix(t, "*") ||
		strings.HasSuffix(t, ":") || strings.HasSuffix(t, ";") {
		return false
	}
	if bulletGlyphs[t] {
		return false
	}
	hasAlpha := false
	for _, r := range t {
		if unicode.IsLetter(r) {
			hasAlpha = true
			break
		}
	}
	if !hasAlpha {
		return false
	}
	if len(strings.Fields(t)) < 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(t)
	return !unicode.IsLower(first)
}

// titleCase uppercases the first letter of each word and lowercases
// the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		for j := range r {
			if j == 0 {
				r[j] = unicode.ToUpper(r[j])
			} else {
				r[j] = unicode.ToLower(r[j])
			}
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
