package nlp

import "strings"

// stopWords is a compact English stopword set used by lexical
// tokenization.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"but": true, "if": true, "of": true, "at": true, "by": true,
	"for": true, "with": true, "about": true, "to": true, "from": true,
	"in": true, "on": true, "as": true, "it": true, "its": true,
	"this": true, "that": true, "these": true, "those": true,
	"he": true, "she": true, "they": true, "them": true, "their": true,
	"we": true, "you": true, "your": true, "i": true, "my": true,
	"not": true, "no": true, "nor": true, "so": true, "than": true,
	"then": true, "there": true, "here": true, "when": true,
	"where": true, "which": true, "what": true, "who": true,
	"all": true, "any": true, "each": true, "some": true, "such": true,
	"only": true, "both": true, "more": true, "most": true,
	"other": true, "into": true, "over": true, "under": true,
	"very": true, "just": true, "too": true, "also": true,
	"up": true, "down": true, "out": true, "off": true,
}

// IsStopWord reports whether a word is in the shared stopword set.
// The word is lowercased before lookup.
func IsStopWord(w string) bool {
	return stopWords[strings.ToLower(w)]
}

// verbLexicon lists auxiliaries and common verbs for the coarse tagger.
// Deliberately conservative: a missed verb only weakens the
// noun-phrase heading signal, while a word wrongly tagged as verb can
// suppress a real heading.
var verbLexicon = map[string]bool{
	// auxiliaries and copulas
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "am": true,
	"have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true,
	"will": true, "would": true, "can": true, "could": true,
	"shall": true, "should": true, "may": true, "might": true, "must": true,
	// common content verbs
	"go": true, "goes": true, "went": true, "make": true, "makes": true,
	"made": true, "take": true, "takes": true, "took": true,
	"get": true, "gets": true, "got": true, "use": true, "uses": true,
	"bring": true, "brings": true, "brought": true,
	"keep": true, "keeps": true, "kept": true,
	"book": false, // noun far more often than verb in this domain
	"see": true, "sees": true, "saw": true, "come": true, "comes": true,
	"came": true, "give": true, "gives": true, "gave": true,
	"find": true, "finds": true, "found": true,
	"know": true, "knows": true, "knew": true,
	"want": true, "wants": true, "wanted": true,
	"need": true, "needs": true, "needed": true,
	"avoid": true, "avoids": true, "ensure": true, "ensures": true,
	"remember": true, "visit": true, "visits": true,
	"stay": true, "stays": true, "stayed": true,
	"arrive": true, "arrives": true, "arrived": true,
}
