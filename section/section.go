// Package section turns noisy, page-level document text into ordered,
// classified section chunks: a heading/boundary detector infers
// structure from plain text, a keyword classifier assigns a topic
// label, and the pipeline assembles the terminal chunk records.
package section

// FontSpan is an opaque font metadata record supplied by page
// extraction. The detector accepts font metadata for callers that have
// it, but plain text carries no reliable layout signal and the current
// heuristics do not consult it.
type FontSpan struct {
	Text string  `json:"text,omitempty"`
	Font string  `json:"font,omitempty"`
	Size float64 `json:"size,omitempty"`
}

// Page is one physical page of extracted document text.
type Page struct {
	Number   int        `json:"page_number"`
	Text     string     `json:"text"`
	FontInfo []FontSpan `json:"font_info,omitempty"`
}

// Document is a named, ordered sequence of pages. Callers control
// iteration order through the slice order.
type Document struct {
	Name  string `json:"name"`
	Pages []Page `json:"pages"`
}

// Section is a (title, body) pair detected on a single page. The title
// always passes UsableTitle and the body is non-empty after trimming.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Chunk is a Section enriched with document metadata and derived
// statistics, the terminal output record of the pipeline. Chunks are
// immutable once emitted.
type Chunk struct {
	Document      string `json:"document"`
	PageNumber    int    `json:"page_number"`
	SectionTitle  string `json:"section_title"`
	SectionText   string `json:"section_text"`
	WordCount     int    `json:"word_count"`
	CharCount     int    `json:"char_count"`
	SentenceCount int    `json:"sentence_count"`
	SectionType   string `json:"section_type"`
}
