package prescription

import (
	"strings"

	"github.com/openrx/pharmacy-api/catalog"
)

// Lister is the slice of the catalog the matcher needs.
type Lister interface {
	List() []catalog.Medicine
}

// Resolve matches each candidate's raw name against the catalog and fills in
// Resolved on a hit. Matching is case-insensitive, trims surrounding
// whitespace, and checks substring containment in both directions against
// name and generic name. When several entries match, the first in catalog
// iteration order is used; there is no ranking. A miss leaves Resolved nil.
func Resolve(candidates []Candidate, store Lister) []Candidate {
	medicines := store.List()

	resolved := make([]Candidate, len(candidates))
	for i, c := range candidates {
		resolved[i] = c
		if m := matchMedicine(c.RawName, medicines); m != nil {
			resolved[i].Resolved = m
		}
	}
	return resolved
}

func matchMedicine(rawName string, medicines []catalog.Medicine) *catalog.Medicine {
	searchName := strings.ToLower(strings.TrimSpace(rawName))
	if searchName == "" {
		return nil
	}

	for i := range medicines {
		name := strings.ToLower(medicines[i].Name)
		generic := strings.ToLower(medicines[i].GenericName)

		matches := strings.Contains(name, searchName) ||
			strings.Contains(searchName, name)
		if !matches && generic != "" {
			matches = strings.Contains(generic, searchName) ||
				strings.Contains(searchName, generic)
		}
		if matches {
			m := medicines[i]
			return &m
		}
	}
	return nil
}
