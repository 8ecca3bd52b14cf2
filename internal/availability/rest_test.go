package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mestral-events/opsboard/backend/internal/domain"
	"github.com/mestral-events/opsboard/backend/internal/interval"
)

func overnightRecord() *domain.AssignmentRecord {
	return &domain.AssignmentRecord{
		ID:        "rec-night",
		EventID:   "ev-night",
		StartDate: "2024-05-01",
		StartTime: "22:00",
		EndDate:   "2024-05-02",
		EndTime:   "02:00",
		Workers:   domain.ParticipantLines{{Name: "Anna Soler"}},
	}
}

func mustWindow(t *testing.T, q Query) interval.Range {
	t.Helper()
	w, ok := q.Window()
	require.True(t, ok)
	return w
}

func TestMinRestCheckShortGapFails(t *testing.T) {
	records := []*domain.AssignmentRecord{overnightRecord()}
	requested := mustWindow(t, Query{StartDate: "2024-05-02", StartTime: "03:00", EndDate: "2024-05-02", EndTime: "06:00"})

	ok, violation := MinRestCheck("Anna Soler", records, requested, 8)
	require.False(t, ok, "1h gap after an overnight shift must fail an 8h rest rule")
	require.NotNil(t, violation)
	assert.Equal(t, "rec-night", violation.RecordID)
	assert.False(t, violation.DirectOverlap)
}

func TestMinRestCheckLongGapPasses(t *testing.T) {
	records := []*domain.AssignmentRecord{overnightRecord()}
	requested := mustWindow(t, Query{StartDate: "2024-05-02", StartTime: "12:00", EndDate: "2024-05-02", EndTime: "16:00"})

	ok, violation := MinRestCheck("Anna Soler", records, requested, 8)
	assert.True(t, ok, "10h gap satisfies an 8h rest rule")
	assert.Nil(t, violation)
}

func TestMinRestCheckDirectOverlapFailsRegardlessOfRest(t *testing.T) {
	records := []*domain.AssignmentRecord{overnightRecord()}
	requested := mustWindow(t, Query{StartDate: "2024-05-02", StartTime: "01:00", EndDate: "2024-05-02", EndTime: "03:00"})

	ok, violation := MinRestCheck("Anna Soler", records, requested, 0)
	require.False(t, ok)
	require.NotNil(t, violation)
	assert.True(t, violation.DirectOverlap)
}

func TestMinRestCheckZeroRestReducesToOverlap(t *testing.T) {
	records := []*domain.AssignmentRecord{overnightRecord()}

	// adjacent but not overlapping: passes with no rest requirement
	requested := mustWindow(t, Query{StartDate: "2024-05-02", StartTime: "02:00", EndDate: "2024-05-02", EndTime: "04:00"})
	ok, _ := MinRestCheck("Anna Soler", records, requested, 0)
	assert.True(t, ok)
}

func TestMinRestCheckIgnoresOtherPeople(t *testing.T) {
	records := []*domain.AssignmentRecord{overnightRecord()}
	requested := mustWindow(t, Query{StartDate: "2024-05-02", StartTime: "01:00", EndDate: "2024-05-02", EndTime: "03:00"})

	ok, violation := MinRestCheck("Laia Ferrer", records, requested, 8)
	assert.True(t, ok)
	assert.Nil(t, violation)
}

func TestMinRestCheckMatchesAccentInsensitively(t *testing.T) {
	records := []*domain.AssignmentRecord{{
		ID:          "rec-3",
		StartDate:   "2024-05-02",
		StartTime:   "04:00",
		EndDate:     "2024-05-02",
		EndTime:     "06:00",
		Responsible: domain.ParticipantLines{{Name: "Núria Vidal"}},
	}}
	requested := mustWindow(t, Query{StartDate: "2024-05-02", StartTime: "05:00", EndDate: "2024-05-02", EndTime: "07:00"})

	ok, _ := MinRestCheck("nuria vidal", records, requested, 8)
	assert.False(t, ok)
}

func TestMinRestCheckSkipsRecordsWithoutWindow(t *testing.T) {
	records := []*domain.AssignmentRecord{{
		ID:      "rec-4",
		Workers: domain.ParticipantLines{{Name: "Anna Soler"}},
	}}
	requested := mustWindow(t, Query{StartDate: "2024-05-02", StartTime: "05:00", EndDate: "2024-05-02", EndTime: "07:00"})

	ok, _ := MinRestCheck("Anna Soler", records, requested, 8)
	assert.True(t, ok, "a record without dates is excluded from interval reasoning")
}

func TestCheckRestUsesDepartmentScope(t *testing.T) {
	records := &fakeRecords{byCollection: map[string][]*domain.AssignmentRecord{
		"records_serveis": {overnightRecord()},
	}}
	e := newTestEngine(records, nil, 8)

	q := Query{StartDate: "2024-05-02", StartTime: "03:00", EndDate: "2024-05-02", EndTime: "06:00"}

	ok, violation := e.CheckRest("Serveis", "Anna Soler", q, "")
	require.False(t, ok)
	assert.Equal(t, "rec-night", violation.RecordID)

	// excluding the record under edit clears the violation
	ok, _ = e.CheckRest("Serveis", "Anna Soler", q, "rec-night")
	assert.True(t, ok)

	// cross-department scope finds it too
	ok, _ = e.CheckRest("", "Anna Soler", q, "")
	assert.False(t, ok)
}
