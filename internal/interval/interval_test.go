package interval

import (
	"testing"
	"time"

	"github.com/mestral-events/opsboard/backend/internal/domain"
)

func at(day int, hour int, min int) time.Time {
	return time.Date(2024, time.May, day, hour, min, 0, 0, time.UTC)
}

func TestNormalizeRangeOvernight(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantEnd time.Time
	}{
		{"well ordered", at(1, 9, 0), at(1, 17, 0), at(1, 17, 0)},
		{"overnight", at(1, 22, 0), at(1, 2, 0), at(2, 2, 0)},
		{"zero length", at(1, 9, 0), at(1, 9, 0), at(2, 9, 0)},
		{"inverted", at(1, 17, 0), at(1, 9, 0), at(2, 9, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := NormalizeRange(tt.start, tt.end)
			if !start.Equal(tt.start) {
				t.Fatalf("start changed: got %v, want %v", start, tt.start)
			}
			if !end.Equal(tt.wantEnd) {
				t.Fatalf("end: got %v, want %v", end, tt.wantEnd)
			}
			if !end.After(start) {
				t.Fatalf("normalized end %v not after start %v", end, start)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical windows", at(1, 9, 0), at(1, 17, 0), at(1, 9, 0), at(1, 17, 0), true},
		{"partial overlap", at(1, 9, 0), at(1, 12, 0), at(1, 11, 0), at(1, 15, 0), true},
		{"contained", at(1, 9, 0), at(1, 17, 0), at(1, 10, 0), at(1, 11, 0), true},
		{"touching ends", at(1, 9, 0), at(1, 12, 0), at(1, 12, 0), at(1, 15, 0), false},
		{"far apart", at(1, 9, 0), at(1, 10, 0), at(3, 9, 0), at(3, 10, 0), false},
		{"overnight crosses morning", at(1, 22, 0), at(1, 2, 0), at(2, 1, 0), at(2, 3, 0), true},
		{"overnight misses later slot", at(1, 22, 0), at(1, 2, 0), at(2, 3, 0), at(2, 6, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Fatalf("Overlaps = %v, want %v", got, tt.want)
			}
			// overlap must be symmetric
			if sym := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); sym != got {
				t.Fatalf("Overlaps not symmetric: %v vs %v", got, sym)
			}
		})
	}
}

func TestNewRange(t *testing.T) {
	r, ok := NewRange("2024-05-01", "22:00", "2024-05-02", "02:00")
	if !ok {
		t.Fatal("expected a usable range")
	}
	if !r.Start.Equal(at(1, 22, 0)) || !r.End.Equal(at(2, 2, 0)) {
		t.Fatalf("unexpected range %v - %v", r.Start, r.End)
	}

	// end date omitted: same-day window
	r, ok = NewRange("2024-05-01", "09:00", "", "17:00")
	if !ok {
		t.Fatal("expected a usable range")
	}
	if !r.End.Equal(at(1, 17, 0)) {
		t.Fatalf("unexpected end %v", r.End)
	}

	// same-day with inverted times: overnight correction applies
	r, ok = NewRange("2024-05-01", "23:00", "", "01:00")
	if !ok {
		t.Fatal("expected a usable range")
	}
	if !r.End.Equal(at(2, 1, 0)) {
		t.Fatalf("unexpected end %v", r.End)
	}

	for _, bad := range [][4]string{
		{"", "09:00", "", "17:00"},
		{"2024-05-01", "", "", "17:00"},
		{"2024-05-01", "09:00", "", ""},
		{"not-a-date", "09:00", "", "17:00"},
		{"2024-05-01", "9am", "", "17:00"},
	} {
		if _, ok := NewRange(bad[0], bad[1], bad[2], bad[3]); ok {
			t.Fatalf("expected no interval for %v", bad)
		}
	}
}

func TestEffectiveWindow(t *testing.T) {
	record := &domain.AssignmentRecord{
		StartDate: "2024-05-01",
		StartTime: "09:00",
		EndDate:   "2024-05-01",
		EndTime:   "17:00",
	}

	// empty line inherits the full record window
	r, ok := EffectiveWindow(domain.ParticipantLine{}, record)
	if !ok {
		t.Fatal("expected inherited window")
	}
	if !r.Start.Equal(at(1, 9, 0)) || !r.End.Equal(at(1, 17, 0)) {
		t.Fatalf("unexpected window %v - %v", r.Start, r.End)
	}

	// line fields win over the record's
	line := domain.ParticipantLine{StartTime: "12:00", EndTime: "20:00"}
	r, ok = EffectiveWindow(line, record)
	if !ok {
		t.Fatal("expected window")
	}
	if !r.Start.Equal(at(1, 12, 0)) || !r.End.Equal(at(1, 20, 0)) {
		t.Fatalf("unexpected window %v - %v", r.Start, r.End)
	}

	// nothing supplies a date: no interval
	if _, ok := EffectiveWindow(domain.ParticipantLine{StartTime: "12:00"}, &domain.AssignmentRecord{EndTime: "20:00"}); ok {
		t.Fatal("expected no interval without dates")
	}
}

func TestDayKeys(t *testing.T) {
	r, _ := NewRange("2024-05-01", "22:00", "2024-05-02", "02:00")
	keys := DayKeys(r)
	want := []string{"2024-05-01", "2024-05-02"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v, want %v", keys, want)
		}
	}
}
