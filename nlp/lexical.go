package nlp

import (
	"strings"
	"unicode"
)

// LexicalTokens annotates text with lexicon-based heuristics: suffix
// lemmatization, stopword and alphabetic flags, and a coarse POS tag
// from the verb lexicon. It is the token primitive behind the
// embedding-backed oracle and is deterministic and allocation-light.
func LexicalTokens(text string) []Token {
	words := splitWords(text)
	toks := make([]Token, 0, len(words))
	for _, w := range words {
		lower := strings.ToLower(w)
		t := Token{
			Text:    w,
			Lemma:   lemma(lower),
			IsStop:  stopWords[lower],
			IsAlpha: isAlpha(w),
		}
		t.POS = tagPOS(lower, t)
		toks = append(toks, t)
	}
	return toks
}

// lexicalNounChunks returns maximal runs of alphabetic, non-stopword,
// non-verb tokens. Each run is headed by its final token, which is a
// noun by construction, approximating noun-phrase extraction.
func lexicalNounChunks(text string) []string {
	toks := LexicalTokens(text)
	var chunks []string
	var run []string
	flush := func() {
		if len(run) > 0 {
			chunks = append(chunks, strings.Join(run, " "))
			run = nil
		}
	}
	for _, t := range toks {
		if t.IsAlpha && !t.IsStop && t.POS != POSVerb {
			run = append(run, t.Text)
			continue
		}
		flush()
	}
	flush()
	return chunks
}

// tagPOS assigns a coarse part-of-speech tag. Anything alphabetic that
// is neither a stopword nor in the verb lexicon counts as a noun; the
// callers only distinguish noun-ish from verb-ish.
func tagPOS(lower string, t Token) string {
	if !t.IsAlpha {
		if isNumeric(t.Text) {
			return POSNum
		}
		return POSOther
	}
	if verbLexicon[lower] {
		return POSVerb
	}
	if t.IsStop {
		return POSStop
	}
	return POSNoun
}

// lemma applies crude suffix stripping: plural and inflection endings
// only, never short words.
func lemma(lower string) string {
	switch {
	case len(lower) > 4 && strings.HasSuffix(lower, "ies"):
		return lower[:len(lower)-3] + "y"
	case len(lower) > 4 && strings.HasSuffix(lower, "sses"):
		return lower[:len(lower)-2]
	case len(lower) > 5 && strings.HasSuffix(lower, "ing"):
		return lower[:len(lower)-3]
	case len(lower) > 4 && strings.HasSuffix(lower, "ed"):
		return lower[:len(lower)-2]
	case len(lower) > 3 && strings.HasSuffix(lower, "s") &&
		!strings.HasSuffix(lower, "ss") && !strings.HasSuffix(lower, "us"):
		return lower[:len(lower)-1]
	}
	return lower
}

// splitWords breaks text into word tokens, keeping internal
// apostrophes and hyphens.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
