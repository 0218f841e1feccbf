package parser

import (
	"context"
	"fmt"
	"os"

	"github.com/AmritanshuRaj45/sectionize/section"
)

// TextParser handles plain text (.txt) files as a single page.
type TextParser struct{}

func (p *TextParser) SupportedFormats() []string { return []string{"txt"} }

func (p *TextParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}

	content := string(data)
	if content == "" {
		return &ParseResult{Method: "native"}, nil
	}

	return &ParseResult{
		Pages:  []section.Page{newPage(1, content)},
		Method: "native",
	}, nil
}

// newPage builds a Page record with no font metadata; plain text
// extraction carries no layout signal.
func newPage(number int, text string) section.Page {
	return section.Page{Number: number, Text: text}
}
