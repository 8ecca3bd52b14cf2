package availability

import (
	"errors"

	"github.com/mestral-events/opsboard/backend/internal/collections"
	"github.com/mestral-events/opsboard/backend/internal/domain"
)

// fakeRecords serves canned records per collection, honoring the loose
// start_date <= until prefilter the real store applies.
type fakeRecords struct {
	byCollection map[string][]*domain.AssignmentRecord
	failing      map[string]bool
}

func (f *fakeRecords) RecordsUntil(collection string, until string) ([]*domain.AssignmentRecord, error) {
	if f.failing[collection] {
		return nil, errors.New("missing index")
	}

	var out []*domain.AssignmentRecord
	for _, record := range f.byCollection[collection] {
		if until == "" || record.StartDate <= until {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeVehicles struct {
	rows []*domain.VehicleAssignment
	err  error
}

func (f *fakeVehicles) AssignmentsByPlate(plate string, dayKeys []string) ([]*domain.VehicleAssignment, error) {
	if f.err != nil {
		return nil, f.err
	}

	var out []*domain.VehicleAssignment
	for _, row := range f.rows {
		if row.Plate == plate {
			out = append(out, row)
		}
	}
	return out, nil
}

type fixedSettings struct {
	hours int
}

func (s fixedSettings) GetMinRestHours(string) (int, error) {
	if s.hours == 0 {
		return 0, errors.New("no settings row")
	}
	return s.hours, nil
}

func newTestEngine(records *fakeRecords, vehicles *fakeVehicles, restHours int) *Engine {
	if records == nil {
		records = &fakeRecords{}
	}
	if vehicles == nil {
		vehicles = &fakeVehicles{}
	}
	resolver := collections.NewResolver(collections.DefaultCollections)
	rest := collections.NewRestPolicy(fixedSettings{hours: restHours}, nil, 0, 0, 8)
	return NewEngine(records, vehicles, resolver, rest)
}
