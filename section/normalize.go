package section

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/AmritanshuRaj45/sectionize/nlp"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// punctuation is the ASCII punctuation set stripped by Clean.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Clean lowercases text, strips punctuation, and collapses whitespace
// runs to single spaces. It is pure, total, and idempotent.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// TokenizeForVector produces the token stream used for vectorization:
// lemmatized, non-stopword, alphabetic tokens when the oracle is
// available, whitespace tokens of the cleaned text otherwise. Tokens
// of fewer than three characters are dropped on both paths; order and
// duplicates are preserved.
func TokenizeForVector(ctx context.Context, oracle nlp.Oracle, text string) []string {
	if oracle != nil {
		toks, err := oracle.Tokens(ctx, text)
		if err == nil {
			var out []string
			for _, t := range toks {
				if t.IsStop || !t.IsAlpha || utf8.RuneCountInString(t.Text) <= 2 {
					continue
				}
				out = append(out, t.Lemma)
			}
			return out
		}
		// Oracle errors degrade this call to the lexical path.
	}
	var out []string
	for _, w := range strings.Fields(Clean(text)) {
		if utf8.RuneCountInString(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}

// PreprocessForVector returns the vector-ready form of text as a
// single space-joined string.
func PreprocessForVector(ctx context.Context, oracle nlp.Oracle, text string) string {
	return strings.Join(TokenizeForVector(ctx, oracle, text), " ")
}
