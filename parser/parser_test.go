package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Registry tests
// ---------------------------------------------------------------------------

func TestRegistryBuiltInParsers(t *testing.T) {
	reg := NewRegistry()

	formats := []struct {
		format     string
		wantParser string
	}{
		{"pdf", "*parser.PDFParser"},
		{"txt", "*parser.TextParser"},
		{"xlsx", "*parser.XLSXParser"},
		{"xls", "*parser.XLSXParser"},
	}

	for _, tt := range formats {
		t.Run(tt.format, func(t *testing.T) {
			p, err := reg.Get(tt.format)
			if err != nil {
				t.Fatalf("Get(%q) returned error: %v", tt.format, err)
			}
			if p == nil {
				t.Fatalf("Get(%q) returned nil parser", tt.format)
			}
			supported := p.SupportedFormats()
			found := false
			for _, f := range supported {
				if f == tt.format {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("parser for %q does not list %q in SupportedFormats(): %v",
					tt.format, tt.format, supported)
			}
		})
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()

	for _, format := range []string{"csv", "json", "html", "rtf", "odt", ""} {
		t.Run("format_"+format, func(t *testing.T) {
			p, err := reg.Get(format)
			if err == nil {
				t.Errorf("Get(%q) expected error for unknown format, got parser: %v", format, p)
			}
			if p != nil {
				t.Errorf("Get(%q) expected nil parser for unknown format", format)
			}
		})
	}
}

func TestRegistryCustomParser(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("custom")
	if err == nil {
		t.Fatal("expected error for unregistered format")
	}

	reg.Register("custom", &TextParser{}) // reuse TextParser as a stand-in
	p, err := reg.Get("custom")
	if err != nil {
		t.Fatalf("Get(\"custom\") after Register returned error: %v", err)
	}
	if p == nil {
		t.Fatal("Get(\"custom\") returned nil after Register")
	}
}

// ---------------------------------------------------------------------------
// Text parser tests
// ---------------------------------------------------------------------------

func TestTextParserParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	content := "Packing Checklist\nBring layers and comfortable shoes for walking.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p := &TextParser{}
	result, err := p.Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(result.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(result.Pages))
	}
	if result.Pages[0].Number != 1 {
		t.Errorf("page number = %d, want 1", result.Pages[0].Number)
	}
	if result.Pages[0].Text == "" {
		t.Error("page text should not be empty")
	}
	if result.Method == "" {
		t.Error("parse method should be set")
	}
}

func TestTextParserMissingFile(t *testing.T) {
	p := &TextParser{}
	if _, err := p.Parse(context.Background(), "/nonexistent/file.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPDFParserMissingFile(t *testing.T) {
	p := &PDFParser{}
	if _, err := p.Parse(context.Background(), "/nonexistent/file.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestXLSXParserMissingFile(t *testing.T) {
	p := &XLSXParser{}
	if _, err := p.Parse(context.Background(), "/nonexistent/file.xlsx"); err == nil {
		t.Error("expected error for missing file")
	}
}
