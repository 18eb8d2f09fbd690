package usecase

import (
	"regexp"
	"strings"
)

// DefaultKeywords is matched when no other list is configured.
var DefaultKeywords = []string{"python", "sql", "flask", "aws", "javascript"}

// ExtractKeywords returns the keywords that occur in text as whole words,
// ignoring case, in the order of keywords.
func ExtractKeywords(text string, keywords []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		re := regexp.MustCompile(`(?i)(^|[^\pL\pN_])` + regexp.QuoteMeta(k) + `($|[^\pL\pN_])`)
		if re.MatchString(text) {
			out = append(out, k)
		}
	}
	return out
}
