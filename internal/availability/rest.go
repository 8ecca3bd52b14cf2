package availability

import (
	"time"

	"github.com/mestral-events/opsboard/backend/internal/domain"
	"github.com/mestral-events/opsboard/backend/internal/identity"
	"github.com/mestral-events/opsboard/backend/internal/interval"
)

// RestViolation describes the record that blocked a rest check, so operators
// see which commitment is in the way instead of a bare rejection.
type RestViolation struct {
	RecordID      string         `json:"recordID"`
	EventID       string         `json:"eventID"`
	Window        interval.Range `json:"window"`
	DirectOverlap bool           `json:"directOverlap"`
}

func recordNamesPerson(record *domain.AssignmentRecord, normalizedName string) bool {
	for _, line := range record.Lines() {
		if line.Name != "" && identity.Normalize(line.Name) == normalizedName {
			return true
		}
	}
	return false
}

// MinRestCheck decides whether assigning the person to the requested window
// leaves at least minRestHours of rest around every existing commitment that
// names them. A direct overlap fails regardless of the rest rule. The check
// runs at record granularity: the record's own window, not the individual
// line's, is what the source data supports here.
func MinRestCheck(personName string, records []*domain.AssignmentRecord, requested interval.Range, minRestHours int) (bool, *RestViolation) {
	normalizedName := identity.Normalize(personName)
	if normalizedName == "" {
		return true, nil
	}

	minRest := time.Duration(minRestHours) * time.Hour

	for _, record := range records {
		if !recordNamesPerson(record, normalizedName) {
			continue
		}

		window, ok := interval.RecordWindow(record)
		if !ok {
			// record without a usable window is excluded from interval reasoning
			continue
		}

		if window.Overlaps(requested) {
			return false, &RestViolation{
				RecordID:      record.ID,
				EventID:       record.EventID,
				Window:        window,
				DirectOverlap: true,
			}
		}

		gapBefore := requested.Start.Sub(window.End)
		gapAfter := window.Start.Sub(requested.End)
		if gapBefore < minRest && gapAfter < minRest {
			return false, &RestViolation{
				RecordID: record.ID,
				EventID:  record.EventID,
				Window:   window,
			}
		}
	}

	return true, nil
}

// CheckRest loads the person's commitments in scope and evaluates the
// department's rest rule against the requested window. An empty department
// widens the scope to every collection.
func (e *Engine) CheckRest(department string, personName string, q Query, excludeRecordID string) (bool, *RestViolation) {
	requested, ok := q.Window()
	if !ok {
		return true, nil
	}

	var records []*domain.AssignmentRecord
	var minRestHours int

	if department == "" {
		records = e.sweepRecords(q.EndDate, excludeRecordID)
		minRestHours = e.rest.MinRestHours("")
	} else {
		collection, resolved := e.resolver.Resolve(department)
		if !resolved {
			return true, nil
		}
		records = e.collectionRecords(collection, q.EndDate)
		if excludeRecordID != "" {
			kept := records[:0]
			for _, record := range records {
				if record.ID != excludeRecordID && record.EventID != excludeRecordID {
					kept = append(kept, record)
				}
			}
			records = kept
		}
		minRestHours = e.rest.MinRestHours(collection)
	}

	return MinRestCheck(personName, records, requested, minRestHours)
}
