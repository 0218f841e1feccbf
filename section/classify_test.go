package section

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"The Ultimate PDF Guide", "guide"},
		{"Packing Guide Checklist", "guide"}, // guide outranks checklist and packing
		{"Convert Word To PDF", "conversion"},
		{"Export Settings Overview", "conversion"},
		{"Request E-Signatures", "signatures"},
		{"How To Sign Documents", "signatures"},
		{"Pre-Departure Checklist", "checklist"},
		{"Things to Do In Marseille", "activity"},
		{"Outdoor Activities", "activity"},
		{"Packing Essentials", "tips"},
		{"Tips And Tricks", "tips"},
		{"Nightlife And Entertainment", "entertainment"},
		{"General Information", "content"},
		{"", "content"},
	}

	for _, tt := range tests {
		if got := Classify(tt.title, ""); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

// The body never influences the label.
func TestClassifyIgnoresBody(t *testing.T) {
	got := Classify("General Information", "a complete guide to packing checklists and nightlife")
	if got != "content" {
		t.Errorf("Classify = %q, want %q", got, "content")
	}
}
