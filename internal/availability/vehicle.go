package availability

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/mestral-events/opsboard/backend/internal/domain"
	"github.com/mestral-events/opsboard/backend/internal/identity"
	"github.com/mestral-events/opsboard/backend/internal/interval"
)

// FindVehicleConflict reports the first occupation of the plate overlapping
// the requested window, or nil when the vehicle is free. Occupations come
// from two sources gathered concurrently: participant lines carrying the
// plate inside department records, and active rows of the standalone
// vehicle-assignment store. excludeAssignmentID skips the standalone row
// being edited (0 means none). The returned occupation is the first overlap
// found, not the earliest.
func (e *Engine) FindVehicleConflict(plate string, q Query, excludeAssignmentID int64) *domain.Occupation {
	requested, ok := q.Window()
	if !ok {
		return nil
	}

	normalizedPlate := identity.Normalize(plate)
	if normalizedPlate == "" {
		return nil
	}

	var wg sync.WaitGroup
	var records []*domain.AssignmentRecord
	var standalone []*domain.VehicleAssignment

	wg.Add(2)
	go func() {
		defer wg.Done()
		records = e.sweepRecords(q.EndDate, "")
	}()
	go func() {
		defer wg.Done()
		rows, err := e.vehicles.AssignmentsByPlate(plate, interval.DayKeys(requested))
		if err != nil {
			slog.Warn("vehicle assignment query failed, treating as empty", "plate", plate, "error", err)
			return
		}
		standalone = rows
	}()
	wg.Wait()

	occupations := make([]*domain.Occupation, 0)

	for _, record := range records {
		for _, line := range record.Lines() {
			if line.Plate == "" || identity.Normalize(line.Plate) != normalizedPlate {
				continue
			}
			window, ok := interval.EffectiveWindow(line, record)
			if !ok {
				continue
			}
			occupations = append(occupations, &domain.Occupation{
				Source:   domain.OccupationFromRecord,
				RecordID: record.ID,
				Start:    window.Start,
				End:      window.End,
			})
		}
	}

	for _, row := range standalone {
		if !row.Status.IsActive() {
			continue
		}
		if excludeAssignmentID != 0 && row.ID == excludeAssignmentID {
			continue
		}
		window, ok := interval.NewRange(row.StartDate, row.StartTime, row.EndDate, row.EndTime)
		if !ok {
			continue
		}
		occupations = append(occupations, &domain.Occupation{
			Source:   domain.OccupationFromStandalone,
			RecordID: strconv.FormatInt(row.ID, 10),
			Start:    window.Start,
			End:      window.End,
			Status:   row.Status,
		})
	}

	for _, occupation := range occupations {
		window := interval.Range{Start: occupation.Start, End: occupation.End}
		if window.Overlaps(requested) {
			return occupation
		}
	}

	return nil
}
