package interval

import (
	"time"

	"github.com/mestral-events/opsboard/backend/internal/domain"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseAt combines a calendar date and a clock time into an absolute instant.
func ParseAt(date string, clock string) (time.Time, error) {
	return time.Parse(DateLayout+" "+TimeLayout, date+" "+clock)
}

// NormalizeRange corrects overnight shifts: a window that ends at or before
// its start is taken to span midnight, so the end gets pushed one day
// forward. Every comparison in this package runs on normalized ranges.
func NormalizeRange(start time.Time, end time.Time) (time.Time, time.Time) {
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end
}

// Overlaps reports whether the two windows share any instant. Both ranges are
// normalized before the comparison, so raw overnight windows are safe to pass.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	aStart, aEnd = NormalizeRange(aStart, aEnd)
	bStart, bEnd = NormalizeRange(bStart, bEnd)
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Range is a normalized absolute window.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewRange builds a normalized range from document date/time fields. It
// reports false when the fields do not describe a usable interval, which
// callers must treat as "no interval": the line is neither busy nor a
// conflict source.
func NewRange(startDate, startTime, endDate, endTime string) (Range, bool) {
	if startDate == "" || startTime == "" || endTime == "" {
		return Range{}, false
	}
	if endDate == "" {
		endDate = startDate
	}

	start, err := ParseAt(startDate, startTime)
	if err != nil {
		return Range{}, false
	}
	end, err := ParseAt(endDate, endTime)
	if err != nil {
		return Range{}, false
	}

	start, end = NormalizeRange(start, end)
	return Range{Start: start, End: end}, true
}

func (r Range) Overlaps(other Range) bool {
	return Overlaps(r.Start, r.End, other.Start, other.End)
}

// EffectiveWindow resolves a participant line's window by line-first-then-
// record inheritance. It never invents times: a line whose resolved fields
// still lack a date or a time has no interval.
func EffectiveWindow(line domain.ParticipantLine, record *domain.AssignmentRecord) (Range, bool) {
	startDate := line.StartDate
	if startDate == "" {
		startDate = record.StartDate
	}
	startTime := line.StartTime
	if startTime == "" {
		startTime = record.StartTime
	}
	endDate := line.EndDate
	if endDate == "" {
		endDate = record.EndDate
	}
	endTime := line.EndTime
	if endTime == "" {
		endTime = record.EndTime
	}

	return NewRange(startDate, startTime, endDate, endTime)
}

// RecordWindow resolves the record-level default window. The rest rule is
// evaluated at this granularity, not per line.
func RecordWindow(record *domain.AssignmentRecord) (Range, bool) {
	return NewRange(record.StartDate, record.StartTime, record.EndDate, record.EndTime)
}

// DayKeys lists every calendar day (inclusive) a window touches, in the
// store's YYYY-MM-DD key format.
func DayKeys(r Range) []string {
	var keys []string
	day := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, r.Start.Location())
	for !day.After(r.End) {
		keys = append(keys, day.Format(DateLayout))
		day = day.AddDate(0, 0, 1)
	}
	return keys
}
