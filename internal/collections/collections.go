// Package collections maps department labels to their partitioned record
// collections. The map is an explicit dependency handed to whoever needs it,
// never a package-level singleton.
package collections

import (
	"strings"

	"github.com/mestral-events/opsboard/backend/internal/identity"
)

// Resolver resolves free-form department labels to collection names. A label
// matches a department when its normalized form starts with one of the
// recognized prefixes, so "Serveis", "servei de sala" and "SERV." all land in
// the same collection.
type Resolver struct {
	prefixes map[string]string
	ordered  []string
}

// DefaultCollections is the department partition set the platform ships with.
var DefaultCollections = map[string]string{
	"serv": "records_serveis",
	"log":  "records_logistica",
	"cui":  "records_cuina",
	"prod": "records_produccio",
}

func NewResolver(prefixes map[string]string) *Resolver {
	r := &Resolver{prefixes: make(map[string]string, len(prefixes))}

	seen := make(map[string]bool)
	for prefix, collection := range prefixes {
		r.prefixes[identity.Normalize(prefix)] = collection
		if !seen[collection] {
			seen[collection] = true
			r.ordered = append(r.ordered, collection)
		}
	}

	// deterministic sweep order
	for i := 0; i < len(r.ordered); i++ {
		for j := i + 1; j < len(r.ordered); j++ {
			if r.ordered[j] < r.ordered[i] {
				r.ordered[i], r.ordered[j] = r.ordered[j], r.ordered[i]
			}
		}
	}

	return r
}

// Resolve maps a department label to its collection name. It reports false
// for labels matching no recognized department.
func (r *Resolver) Resolve(label string) (string, bool) {
	normalized := identity.Normalize(label)
	if normalized == "" {
		return "", false
	}

	for prefix, collection := range r.prefixes {
		if strings.HasPrefix(normalized, prefix) {
			return collection, true
		}
	}
	return "", false
}

// All returns every known collection name, for cross-department sweeps.
func (r *Resolver) All() []string {
	out := make([]string, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Known reports whether name is one of the partitioned collections. The
// repository uses this to keep table names out of caller control.
func (r *Resolver) Known(name string) bool {
	for _, collection := range r.ordered {
		if collection == name {
			return true
		}
	}
	return false
}
