// Package parser extracts ordered page text from document files. It is
// the ingestion collaborator feeding the section pipeline: each parser
// produces section.Page records and leaves all structure inference to
// the detector.
package parser

import (
	"context"

	"github.com/AmritanshuRaj45/sectionize/section"
)

// ParseResult is what a parser produces from a document file.
type ParseResult struct {
	Pages    []section.Page // Ordered pages extracted from the document
	Method   string         // "native"
	Metadata map[string]string
}

// Parser can parse a specific document format.
type Parser interface {
	Parse(ctx context.Context, path string) (*ParseResult, error)
	SupportedFormats() []string
}
