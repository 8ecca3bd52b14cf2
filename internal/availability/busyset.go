package availability

import (
	"github.com/mestral-events/opsboard/backend/internal/domain"
	"github.com/mestral-events/opsboard/backend/internal/identity"
	"github.com/mestral-events/opsboard/backend/internal/interval"
)

// BusySet is a flat membership set of identifiers (raw ids and normalized
// names). Role information is not preserved: callers only need to test
// membership.
type BusySet map[string]struct{}

func (s BusySet) add(key string) {
	if key != "" {
		s[key] = struct{}{}
	}
}

// Contains tests an id or a name against the set.
func (s BusySet) Contains(idOrName string) bool {
	if _, ok := s[idOrName]; ok {
		return true
	}
	_, ok := s[identity.Normalize(idOrName)]
	return ok
}

// Identifiers returns the set's members, for callers serializing the result.
func (s BusySet) Identifiers() []string {
	out := make([]string, 0, len(s))
	for key := range s {
		out = append(out, key)
	}
	return out
}

func collectBusy(set BusySet, records []*domain.AssignmentRecord, requested interval.Range) {
	for _, record := range records {
		for _, line := range record.Lines() {
			window, ok := interval.EffectiveWindow(line, record)
			if !ok {
				// no usable interval: the line is never considered busy
				continue
			}
			if !window.Overlaps(requested) {
				continue
			}
			if line.ID != "" {
				set.add(line.ID)
			} else {
				set.add(identity.Normalize(line.Name))
			}
		}
	}
}

// BusyIdentifiers returns everyone committed during the requested window in
// one department. An unresolvable department label yields an empty set, in
// line with the engine-wide fail-open policy.
func (e *Engine) BusyIdentifiers(department string, q Query) BusySet {
	set := make(BusySet)

	requested, ok := q.Window()
	if !ok {
		return set
	}

	collection, ok := e.resolver.Resolve(department)
	if !ok {
		return set
	}

	collectBusy(set, e.collectionRecords(collection, q.EndDate), requested)
	return set
}

// BusyIdentifiersAll sweeps every department, for global double-booking
// checks. excludeRecordID skips the record being edited.
func (e *Engine) BusyIdentifiersAll(q Query, excludeRecordID string) BusySet {
	set := make(BusySet)

	requested, ok := q.Window()
	if !ok {
		return set
	}

	collectBusy(set, e.sweepRecords(q.EndDate, excludeRecordID), requested)
	return set
}

// IsPersonAvailable reports whether the person has no overlapping commitment
// in the department during the window.
func (e *Engine) IsPersonAvailable(department string, idOrName string, q Query) bool {
	return !e.BusyIdentifiers(department, q).Contains(idOrName)
}
