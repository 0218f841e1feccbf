package sectionize

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/AmritanshuRaj45/sectionize/nlp"
)

// recordingOracle remembers the comparison target passed to Similarity.
type recordingOracle struct {
	target string
}

func (o *recordingOracle) Tokens(ctx context.Context, text string) ([]nlp.Token, error) {
	return nil, nil
}

func (o *recordingOracle) NounChunks(ctx context.Context, text string) ([]string, error) {
	return nil, nil
}

func (o *recordingOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	o.target = b
	return 0, nil
}

func TestExtractSnippetEmptyBody(t *testing.T) {
	got := ExtractSnippet(context.Background(), nil, "", "packing tips")
	if got != "" {
		t.Errorf("ExtractSnippet on empty body = %q, want empty", got)
	}
	got = ExtractSnippet(context.Background(), nil, "   \n  ", "packing tips")
	if got != "" {
		t.Errorf("ExtractSnippet on blank body = %q, want empty", got)
	}
}

func TestExtractSnippetRanksByOverlap(t *testing.T) {
	body := "The museum quarter closes early on Sundays. " +
		"Pack light layers and comfortable walking shoes for the coastal trails. " +
		"Local buses run every twenty minutes from the old port."

	got := ExtractSnippet(context.Background(), nil, body, "packing shoes for walking")

	if !strings.HasPrefix(got, "Pack light layers") {
		t.Errorf("best-overlap sentence should lead the snippet, got %q", got)
	}
}

// Overlap counts raw lowercased whitespace tokens, so short function
// words in the query still score.
func TestExtractSnippetOverlapCountsShortWords(t *testing.T) {
	body := "We must go to it immediately without delay. " +
		"Now more than ever people wait."

	got := ExtractSnippet(context.Background(), nil, body, "go to it now")

	if !strings.HasPrefix(got, "We must go to it") {
		t.Errorf("three shared tokens should outrank one, got %q", got)
	}
}

// Every assembled sentence carries its ". " suffix, so the trimmed
// snippet ends with a period even when only one sentence fits.
func TestExtractSnippetEndsWithPeriod(t *testing.T) {
	body := "Pack light layers and comfortable walking shoes for the trails."

	got := ExtractSnippet(context.Background(), nil, body, "walking shoes")
	if !strings.HasSuffix(got, "shoes for the trails.") {
		t.Errorf("snippet should end with its sentence period, got %q", got)
	}
}

func TestExtractSnippetRespectsBudget(t *testing.T) {
	body := "The museum quarter closes early on Sundays. " +
		"Pack light layers and comfortable walking shoes for the coastal trails. " +
		"Local buses run every twenty minutes from the old port."

	got := ExtractSnippet(context.Background(), nil, body, "walking shoes", WithMaxLength(90))
	if n := utf8.RuneCountInString(got); n > 90 {
		t.Errorf("snippet length %d exceeds budget 90: %q", n, got)
	}
	if got == "" {
		t.Error("expected non-empty snippet within budget")
	}
}

// When no whole sentence fits, the top-ranked sentence is truncated to
// the budget instead of returning nothing.
func TestExtractSnippetTruncatesWhenNothingFits(t *testing.T) {
	body := "Pack light layers and comfortable walking shoes for the long coastal trails around the city."

	got := ExtractSnippet(context.Background(), nil, body, "walking shoes", WithMaxLength(50))
	if got == "" {
		t.Fatal("expected truncated snippet, got empty")
	}
	if n := utf8.RuneCountInString(got); n > 50 {
		t.Errorf("snippet length %d exceeds budget 50: %q", n, got)
	}
	if !strings.HasPrefix(got, "Pack light layers") {
		t.Errorf("truncation should keep the sentence head, got %q", got)
	}
}

func TestExtractSnippetBlankQueryKeepsOrder(t *testing.T) {
	body := "First sentence about nothing in particular. " +
		"Second sentence about nothing in particular either."

	got := ExtractSnippet(context.Background(), nil, body, "")
	if !strings.HasPrefix(got, "First sentence") {
		t.Errorf("blank query should keep input order, got %q", got)
	}
}

func TestExtractSnippetPersonaPrefixes(t *testing.T) {
	body := "Submit the signed onboarding forms before the start date arrives."

	tests := []struct {
		persona string
		prefix  string
	}{
		{"HR professional", "For HR professionals: "},
		{"Travel planner", "Travel planner note: "},
		{"Food contractor", ""},
		// Matching is case-sensitive: "hr" inside a name and a
		// lowercase "travel" trigger nothing.
		{"Chris Admin", ""},
		{"travel blogger", ""},
	}

	for _, tt := range tests {
		got := ExtractSnippet(context.Background(), nil, body, "forms", WithPersona(tt.persona))
		if tt.prefix == "" {
			if strings.HasPrefix(got, "For HR") || strings.HasPrefix(got, "Travel planner note") {
				t.Errorf("persona %q should add no prefix, got %q", tt.persona, got)
			}
			continue
		}
		if !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("persona %q: snippet %q missing prefix %q", tt.persona, got, tt.prefix)
		}
	}
}

// The oracle compares each sentence against the persona followed by
// the query.
func TestExtractSnippetOracleTargetOrder(t *testing.T) {
	oracle := &recordingOracle{}
	body := "Submit the signed onboarding forms before the start date arrives."

	ExtractSnippet(context.Background(), oracle, body, "onboarding forms",
		WithPersona("HR Manager"))

	want := "HR Manager onboarding forms"
	if oracle.target != want {
		t.Errorf("similarity target = %q, want %q", oracle.target, want)
	}
}

// The persona prefix applies only to assembled snippets, never to the
// raw-truncation fallback.
func TestExtractSnippetNoPrefixOnTruncation(t *testing.T) {
	body := "Submit the signed onboarding forms before the start date arrives at headquarters."

	got := ExtractSnippet(context.Background(), nil, body, "forms",
		WithPersona("HR manager"), WithMaxLength(40))
	if strings.HasPrefix(got, "For HR professionals:") {
		t.Errorf("truncation fallback should not carry a persona prefix: %q", got)
	}
}

func TestSplitCandidates(t *testing.T) {
	body := "Short one. This sentence is long enough to keep.\nAnother keeper line right here. Tiny."
	got := splitCandidates(body)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(got), got)
	}
	for _, c := range got {
		if utf8.RuneCountInString(c) <= 10 {
			t.Errorf("candidate %q under minimum length", c)
		}
	}
}
