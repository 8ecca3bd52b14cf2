package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mestral-events/opsboard/backend/internal/domain"
)

func serveisRecord() *domain.AssignmentRecord {
	return &domain.AssignmentRecord{
		ID:         "rec-1",
		EventID:    "ev-1",
		Department: "Serveis",
		StartDate:  "2024-05-01",
		StartTime:  "09:00",
		EndDate:    "2024-05-01",
		EndTime:    "17:00",
		Responsible: domain.ParticipantLines{
			{ID: "u-12", Name: "Núria Vidal"},
		},
		Drivers: domain.ParticipantLines{
			{Name: "Pere Camps", StartTime: "08:00", EndTime: "10:00", Plate: "1234ABC"},
		},
		Workers: domain.ParticipantLines{
			{Name: "Anna Soler"},
			{Name: "Sense Dates", StartDate: "", StartTime: ""},
		},
	}
}

func TestBusyIdentifiersSingleDepartment(t *testing.T) {
	records := &fakeRecords{byCollection: map[string][]*domain.AssignmentRecord{
		"records_serveis": {serveisRecord()},
	}}
	e := newTestEngine(records, nil, 8)

	set := e.BusyIdentifiers("Serveis", Query{StartDate: "2024-05-01", StartTime: "10:00", EndDate: "2024-05-01", EndTime: "12:00"})

	// id wins over name when present
	assert.True(t, set.Contains("u-12"))
	assert.False(t, set.Contains("nuria vidal"))
	// name-only lines land as normalized names
	assert.True(t, set.Contains("Anna Soler"))
	assert.True(t, set.Contains("anna soler"))
	// the driver's own window ended before the request
	assert.False(t, set.Contains("Pere Camps"))
}

func TestBusyIdentifiersDriverWindowOverride(t *testing.T) {
	records := &fakeRecords{byCollection: map[string][]*domain.AssignmentRecord{
		"records_serveis": {serveisRecord()},
	}}
	e := newTestEngine(records, nil, 8)

	set := e.BusyIdentifiers("serv. sala", Query{StartDate: "2024-05-01", StartTime: "08:30", EndDate: "2024-05-01", EndTime: "09:30"})
	assert.True(t, set.Contains("Pere Camps"))
}

func TestBusyIdentifiersDefaultsToWholeDay(t *testing.T) {
	records := &fakeRecords{byCollection: map[string][]*domain.AssignmentRecord{
		"records_serveis": {serveisRecord()},
	}}
	e := newTestEngine(records, nil, 8)

	set := e.BusyIdentifiers("Serveis", Query{StartDate: "2024-05-01", EndDate: "2024-05-01"})
	assert.True(t, set.Contains("u-12"))
	assert.True(t, set.Contains("Anna Soler"))
}

func TestBusyIdentifiersUnknownDepartment(t *testing.T) {
	records := &fakeRecords{byCollection: map[string][]*domain.AssignmentRecord{
		"records_serveis": {serveisRecord()},
	}}
	e := newTestEngine(records, nil, 8)

	set := e.BusyIdentifiers("Comptabilitat", Query{StartDate: "2024-05-01", EndDate: "2024-05-01"})
	assert.Empty(t, set.Identifiers())
}

func TestBusyIdentifiersFailOpen(t *testing.T) {
	records := &fakeRecords{
		byCollection: map[string][]*domain.AssignmentRecord{
			"records_serveis": {serveisRecord()},
		},
		failing: map[string]bool{"records_serveis": true},
	}
	e := newTestEngine(records, nil, 8)

	set := e.BusyIdentifiers("Serveis", Query{StartDate: "2024-05-01", EndDate: "2024-05-01"})
	assert.Empty(t, set.Identifiers(), "a failing collection must read as no data")
}

func TestBusyIdentifiersAllSweepsAndExcludes(t *testing.T) {
	cuina := &domain.AssignmentRecord{
		ID:        "rec-2",
		EventID:   "ev-2",
		StartDate: "2024-05-01",
		StartTime: "10:00",
		EndDate:   "2024-05-01",
		EndTime:   "14:00",
		Workers:   domain.ParticipantLines{{Name: "Martí Pagès"}},
	}
	records := &fakeRecords{byCollection: map[string][]*domain.AssignmentRecord{
		"records_serveis": {serveisRecord()},
		"records_cuina":   {cuina},
	}}
	e := newTestEngine(records, nil, 8)

	q := Query{StartDate: "2024-05-01", StartTime: "10:00", EndDate: "2024-05-01", EndTime: "12:00"}

	set := e.BusyIdentifiersAll(q, "")
	assert.True(t, set.Contains("u-12"))
	assert.True(t, set.Contains("Martí Pagès"))

	// a record being edited must not conflict with itself
	set = e.BusyIdentifiersAll(q, "rec-2")
	assert.False(t, set.Contains("Martí Pagès"))
	assert.True(t, set.Contains("u-12"))
}

func TestIsPersonAvailable(t *testing.T) {
	records := &fakeRecords{byCollection: map[string][]*domain.AssignmentRecord{
		"records_serveis": {serveisRecord()},
	}}
	e := newTestEngine(records, nil, 8)

	q := Query{StartDate: "2024-05-01", StartTime: "10:00", EndDate: "2024-05-01", EndTime: "12:00"}
	require.False(t, e.IsPersonAvailable("Serveis", "ANNA SOLER", q))
	require.True(t, e.IsPersonAvailable("Serveis", "Laia Ferrer", q))
}
