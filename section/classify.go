package section

import "strings"

// classificationRules map title keywords to topic labels. Rules are
// evaluated in order and the first match wins; some keywords are
// substrings of other rules' domains ("guide" vs "checklist",
// "packing" vs "tips"), so the order is load-bearing.
var classificationRules = []struct {
	keywords []string
	label    string
}{
	{[]string{"guide"}, "guide"},
	{[]string{"convert", "export"}, "conversion"},
	{[]string{"sign", "signature"}, "signatures"},
	{[]string{"checklist"}, "checklist"},
	{[]string{"activity", "things to do"}, "activity"},
	{[]string{"packing"}, "tips"},
	{[]string{"tips", "trick"}, "tips"},
	{[]string{"nightlife", "entertainment"}, "entertainment"},
}

// Classify maps a section title to a topic label, falling back to
// "content" when no rule matches. The body is accepted for interface
// symmetry but does not influence the result.
func Classify(title, body string) string {
	_ = body
	t := strings.ToLower(title)
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.label
			}
		}
	}
	return "content"
}
