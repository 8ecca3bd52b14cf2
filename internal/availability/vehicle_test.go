package availability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mestral-events/opsboard/backend/internal/domain"
)

func TestFindVehicleConflictNoOccupations(t *testing.T) {
	e := newTestEngine(nil, nil, 8)

	q := Query{StartDate: "2024-06-01", StartTime: "09:00", EndDate: "2024-06-01", EndTime: "10:00"}
	assert.Nil(t, e.FindVehicleConflict("1234ABC", q, 0))
}

func TestFindVehicleConflictActiveStatusesOnly(t *testing.T) {
	vehicles := &fakeVehicles{rows: []*domain.VehicleAssignment{
		{ID: 1, Plate: "1234ABC", StartDate: "2024-06-01", StartTime: "08:00", EndDate: "2024-06-01", EndTime: "12:00", Status: domain.VehicleStatusPending},
		{ID: 2, Plate: "1234ABC", StartDate: "2024-06-01", StartTime: "09:00", EndDate: "2024-06-01", EndTime: "11:00", Status: domain.VehicleStatusCancelled},
	}}
	e := newTestEngine(nil, vehicles, 8)

	q := Query{StartDate: "2024-06-01", StartTime: "09:00", EndDate: "2024-06-01", EndTime: "10:00"}
	occupation := e.FindVehicleConflict("1234ABC", q, 0)
	require.NotNil(t, occupation)
	assert.Equal(t, domain.OccupationFromStandalone, occupation.Source)
	assert.Equal(t, domain.VehicleStatusPending, occupation.Status)
	assert.Equal(t, "1", occupation.RecordID)
}

func TestFindVehicleConflictExactWindowMatch(t *testing.T) {
	vehicles := &fakeVehicles{rows: []*domain.VehicleAssignment{
		{ID: 7, Plate: "1234ABC", StartDate: "2024-06-01", StartTime: "09:00", EndDate: "2024-06-01", EndTime: "10:00", Status: domain.VehicleStatusConfirmed},
	}}
	e := newTestEngine(nil, vehicles, 8)

	q := Query{StartDate: "2024-06-01", StartTime: "09:00", EndDate: "2024-06-01", EndTime: "10:00"}
	occupation := e.FindVehicleConflict("1234ABC", q, 0)
	require.NotNil(t, occupation, "a confirmed row equal to the requested window must conflict")
	assert.Equal(t, domain.VehicleStatusConfirmed, occupation.Status)
}

func TestFindVehicleConflictExcludesRowUnderEdit(t *testing.T) {
	vehicles := &fakeVehicles{rows: []*domain.VehicleAssignment{
		{ID: 7, Plate: "1234ABC", StartDate: "2024-06-01", StartTime: "09:00", EndDate: "2024-06-01", EndTime: "10:00", Status: domain.VehicleStatusConfirmed},
	}}
	e := newTestEngine(nil, vehicles, 8)

	q := Query{StartDate: "2024-06-01", StartTime: "09:00", EndDate: "2024-06-01", EndTime: "10:00"}
	assert.Nil(t, e.FindVehicleConflict("1234ABC", q, 7))
}

func TestFindVehicleConflictFromEmbeddedLine(t *testing.T) {
	records := &fakeRecords{byCollection: map[string][]*domain.AssignmentRecord{
		"records_logistica": {{
			ID:        "rec-9",
			EventID:   "ev-9",
			StartDate: "2024-06-01",
			StartTime: "07:00",
			EndDate:   "2024-06-01",
			EndTime:   "15:00",
			Drivers:   domain.ParticipantLines{{Name: "Pere Camps", Plate: "1234abc"}},
		}},
	}}
	e := newTestEngine(records, nil, 8)

	q := Query{StartDate: "2024-06-01", StartTime: "09:00", EndDate: "2024-06-01", EndTime: "10:00"}
	occupation := e.FindVehicleConflict("1234ABC", q, 0)
	require.NotNil(t, occupation, "plate matching is case-insensitive")
	assert.Equal(t, domain.OccupationFromRecord, occupation.Source)
	assert.Equal(t, "rec-9", occupation.RecordID)
}

func TestFindVehicleConflictFailOpenOnStoreError(t *testing.T) {
	vehicles := &fakeVehicles{err: errors.New("store down")}
	e := newTestEngine(nil, vehicles, 8)

	q := Query{StartDate: "2024-06-01", StartTime: "09:00", EndDate: "2024-06-01", EndTime: "10:00"}
	assert.Nil(t, e.FindVehicleConflict("1234ABC", q, 0))
}
