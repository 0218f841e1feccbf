package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXParser maps each sheet to one page: the sheet name as the first
// line followed by pipe-delimited rows, so the detector can pick the
// sheet name up as a heading candidate.
type XLSXParser struct{}

func (p *XLSXParser) SupportedFormats() []string { return []string{"xlsx", "xls"} }

func (p *XLSXParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening XLSX: %w", err)
	}
	defer f.Close()

	result := &ParseResult{Method: "native"}

	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}

		var content strings.Builder
		content.WriteString(sheet + "\n")
		for _, row := range rows {
			content.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}

		result.Pages = append(result.Pages, newPage(i+1, content.String()))
	}

	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("no data found in XLSX")
	}

	return result, nil
}
