package portfolio

import (
	"sort"
	"strings"

	"zenfolio/internal/models"
)

// AllFrameworks selects every framework
const AllFrameworks = "All"

// Matches reports whether p passes the query and framework selection
func Matches(p models.ProjectData, query, framework string) bool {
	if framework != AllFrameworks && p.Framework != framework {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Framework), q)
}

// FilterProjects returns the projects whose name or framework contains query
// (case-insensitively) and whose framework equals framework, unless it is "All".
// The input is left untouched and order is preserved.
func FilterProjects(projects []models.ProjectData, query, framework string) []models.ProjectData {
	out := make([]models.ProjectData, 0, len(projects))
	for _, p := range projects {
		if Matches(p, query, framework) {
			out = append(out, p)
		}
	}
	return out
}

// Frameworks returns "All" followed by the distinct frameworks in sorted order
func Frameworks(projects []models.ProjectData) []string {
	seen := make(map[string]struct{})
	var unique []string
	for _, p := range projects {
		if p.Framework == AllFrameworks {
			continue
		}
		if _, ok := seen[p.Framework]; ok {
			continue
		}
		seen[p.Framework] = struct{}{}
		unique = append(unique, p.Framework)
	}
	sort.Strings(unique)
	return append([]string{AllFrameworks}, unique...)
}
