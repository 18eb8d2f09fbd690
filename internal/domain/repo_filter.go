package domain

import "strings"

// Apply returns the repos that pass f, keeping their order.
func (f RepoFilter) Apply(repos []Repo) []Repo {
	only := lowerSet(f.Only)
	exclude := lowerSet(f.Exclude)
	include := lowerSet(f.Include)

	out := make([]Repo, 0, len(repos))
	for _, r := range repos {
		name := strings.ToLower(r.Name)
		switch {
		case r.Stars < f.MinStars:
		case r.IsArchived && !f.IncludeArchived:
		case len(only) > 0 && !only[name]:
		case exclude[name]:
		case len(include) > 0 && !usesAny(r.Languages, include):
		default:
			out = append(out, r)
		}
	}
	return out
}

func usesAny(langs []string, set map[string]bool) bool {
	for _, l := range langs {
		if set[strings.ToLower(l)] {
			return true
		}
	}
	return false
}

func lowerSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return m
}
