// Package availability answers point queries over externally-owned schedule
// state: who is already committed in a window, whether a new assignment would
// break a department's minimum-rest rule, and whether a vehicle is double
// booked. It only reads and decides; it never reserves, so two concurrent
// checks can both see "free" before either caller writes.
package availability

import (
	"log/slog"
	"sync"

	"github.com/mestral-events/opsboard/backend/internal/collections"
	"github.com/mestral-events/opsboard/backend/internal/domain"
	"github.com/mestral-events/opsboard/backend/internal/interval"
)

// RecordSource reads assignment records from one department-partitioned
// collection. The until argument is the loose YYYY-MM-DD prefilter
// (start_date <= until); exact overlap is re-checked here, because the store
// only supports simple comparisons.
type RecordSource interface {
	RecordsUntil(collection string, until string) ([]*domain.AssignmentRecord, error)
}

// VehicleSource reads standalone vehicle-assignment rows, coarsely
// prefiltered by plate and day keys.
type VehicleSource interface {
	AssignmentsByPlate(plate string, dayKeys []string) ([]*domain.VehicleAssignment, error)
}

type Engine struct {
	records  RecordSource
	vehicles VehicleSource
	resolver *collections.Resolver
	rest     *collections.RestPolicy
}

func NewEngine(records RecordSource, vehicles VehicleSource, resolver *collections.Resolver, rest *collections.RestPolicy) *Engine {
	return &Engine{
		records:  records,
		vehicles: vehicles,
		resolver: resolver,
		rest:     rest,
	}
}

// Query is a requested window as it arrives from a caller. Times may be
// omitted; they default to the whole day at this level only, never for
// stored data.
type Query struct {
	StartDate string `json:"startDate"`
	StartTime string `json:"startTime"`
	EndDate   string `json:"endDate"`
	EndTime   string `json:"endTime"`
}

// Window resolves the query into a normalized range.
func (q Query) Window() (interval.Range, bool) {
	startTime := q.StartTime
	if startTime == "" {
		startTime = "00:00"
	}
	endTime := q.EndTime
	if endTime == "" {
		endTime = "23:59"
	}
	return interval.NewRange(q.StartDate, startTime, q.EndDate, endTime)
}

// collectionRecords is the fail-open read: a failing collection query is
// logged and treated as empty, so a degraded store yields "no conflict"
// rather than an error.
func (e *Engine) collectionRecords(collection string, until string) []*domain.AssignmentRecord {
	records, err := e.records.RecordsUntil(collection, until)
	if err != nil {
		slog.Warn("assignment record query failed, treating as empty", "collection", collection, "error", err)
		return nil
	}
	return records
}

// sweepRecords scans every known department collection concurrently and
// merges the results, dropping the excluded record so a record being edited
// never conflicts with itself.
func (e *Engine) sweepRecords(until string, excludeRecordID string) []*domain.AssignmentRecord {
	all := e.resolver.All()

	var mu sync.Mutex
	var wg sync.WaitGroup
	var merged []*domain.AssignmentRecord

	for _, collection := range all {
		wg.Add(1)
		go func(collection string) {
			defer wg.Done()
			records := e.collectionRecords(collection, until)
			mu.Lock()
			merged = append(merged, records...)
			mu.Unlock()
		}(collection)
	}
	wg.Wait()

	if excludeRecordID == "" {
		return merged
	}

	filtered := merged[:0]
	for _, record := range merged {
		if record.ID != excludeRecordID && record.EventID != excludeRecordID {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
