package section

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/AmritanshuRaj45/sectionize/nlp"
)

// DefaultMinSectionLength is the minimum trimmed body length, in
// characters, for a section to become a chunk.
const DefaultMinSectionLength = 30

// PipelineConfig controls chunk assembly.
type PipelineConfig struct {
	// MinSectionLength overrides DefaultMinSectionLength when positive.
	MinSectionLength int
}

// Pipeline runs the section detector over documents and assembles the
// final chunk list. It holds no mutable state and is safe for
// concurrent use.
type Pipeline struct {
	detector *Detector
	minLen   int
}

// NewPipeline returns a Pipeline using the given oracle, which may be
// nil for degraded mode.
func NewPipeline(oracle nlp.Oracle, cfg PipelineConfig) *Pipeline {
	if cfg.MinSectionLength <= 0 {
		cfg.MinSectionLength = DefaultMinSectionLength
	}
	return &Pipeline{detector: NewDetector(oracle), minLen: cfg.MinSectionLength}
}

// Detector returns the pipeline's section detector.
func (p *Pipeline) Detector() *Detector {
	return p.detector
}

// BuildChunks runs section detection over every page of every document
// and returns the flat chunk list. Output order is exactly the nested
// input order: document, then page, then detected-section order; no
// relevance re-sorting happens at this layer.
func (p *Pipeline) BuildChunks(ctx context.Context, docs []Document) []Chunk {
	var chunks []Chunk
	for _, doc := range docs {
		for _, page := range doc.Pages {
			for _, sec := range p.detector.DetectSections(ctx, page.Text, page.FontInfo) {
				body := strings.TrimSpace(sec.Body)
				if utf8.RuneCountInString(body) < p.minLen {
					continue
				}
				chunks = append(chunks, Chunk{
					Document:      doc.Name,
					PageNumber:    page.Number,
					SectionTitle:  sec.Title,
					SectionText:   body,
					WordCount:     len(strings.Fields(body)),
					CharCount:     utf8.RuneCountInString(body),
					SentenceCount: countSentences(body),
					SectionType:   Classify(sec.Title, body),
				})
			}
		}
	}
	return chunks
}

// countSentences counts the non-blank segments after splitting on
// periods.
func countSentences(text string) int {
	n := 0
	for _, s := range strings.Split(text, ".") {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}
