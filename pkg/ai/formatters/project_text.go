package formatters

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// maxReadmeRunes bounds the README share of a project text so embeddings
// stay within the model's input limit.
const maxReadmeRunes = 6000

// ProjectText renders the retrieval text of a repository. The same text is
// embedded for search and handed to the model when writing bullet points.
func ProjectText(name, description string, languages map[string]int, readme string) string {
	var b strings.Builder
	b.WriteString("Project: " + name + "\n")
	if d := strings.TrimSpace(description); d != "" {
		b.WriteString("Description: " + d + "\n")
	}
	if langs := LanguagesBySize(languages); len(langs) > 0 {
		b.WriteString("Languages: " + strings.Join(langs, ", ") + "\n")
	}
	if r := strings.TrimSpace(readme); r != "" {
		if utf8.RuneCountInString(r) > maxReadmeRunes {
			r = string([]rune(r)[:maxReadmeRunes])
		}
		b.WriteString("README:\n" + r + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// LanguagesBySize orders language names by byte count, largest first, then
// by name.
func LanguagesBySize(languages map[string]int) []string {
	out := make([]string, 0, len(languages))
	for l := range languages {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if languages[out[i]] != languages[out[j]] {
			return languages[out[i]] > languages[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
