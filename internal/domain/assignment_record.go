package domain

import (
	"encoding/json"
	"time"
)

// ParticipantLine is one scheduled role entry inside an assignment record
// (responsible, driver, worker or ad hoc group). Every field except the
// identity ones is optional; empty time fields inherit from the record.
type ParticipantLine struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	StartTime    string `json:"startTime,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	MeetingPoint string `json:"meetingPoint,omitempty"`
	Plate        string `json:"plate,omitempty"`
	VehicleType  string `json:"vehicleType,omitempty"`
}

// participantLineAliases carries every historic field name ever used for a
// line. Older documents written by the first version of the platform use the
// Catalan field names; all "which field name wins" decisions live here.
type participantLineAliases struct {
	ID  string `json:"id"`
	UID string `json:"uid"`

	Name     string `json:"name"`
	Nom      string `json:"nom"`
	FullName string `json:"fullName"`

	StartDate string `json:"startDate"`
	DataInici string `json:"dataInici"`
	StartTime string `json:"startTime"`
	HoraInici string `json:"horaInici"`
	EndDate   string `json:"endDate"`
	DataFi    string `json:"dataFi"`
	EndTime   string `json:"endTime"`
	HoraFi    string `json:"horaFi"`

	MeetingPoint string `json:"meetingPoint"`
	PuntTrobada  string `json:"puntTrobada"`

	Plate     string `json:"plate"`
	Matricula string `json:"matricula"`

	VehicleType  string `json:"vehicleType"`
	TipusVehicle string `json:"tipusVehicle"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (l *ParticipantLine) UnmarshalJSON(data []byte) error {
	var aliases participantLineAliases
	if err := json.Unmarshal(data, &aliases); err != nil {
		return err
	}

	l.ID = firstNonEmpty(aliases.ID, aliases.UID)
	l.Name = firstNonEmpty(aliases.Name, aliases.Nom, aliases.FullName)
	l.StartDate = firstNonEmpty(aliases.StartDate, aliases.DataInici)
	l.StartTime = firstNonEmpty(aliases.StartTime, aliases.HoraInici)
	l.EndDate = firstNonEmpty(aliases.EndDate, aliases.DataFi)
	l.EndTime = firstNonEmpty(aliases.EndTime, aliases.HoraFi)
	l.MeetingPoint = firstNonEmpty(aliases.MeetingPoint, aliases.PuntTrobada)
	l.Plate = firstNonEmpty(aliases.Plate, aliases.Matricula)
	l.VehicleType = firstNonEmpty(aliases.VehicleType, aliases.TipusVehicle)

	return nil
}

// ParticipantLines tolerates both a single object and an array in stored
// documents. Old records store "responsible" as a bare object.
type ParticipantLines []ParticipantLine

func (ls *ParticipantLines) UnmarshalJSON(data []byte) error {
	trimmed := data
	for len(trimmed) > 0 && (trimmed[0] == ' ' || trimmed[0] == '\t' || trimmed[0] == '\n' || trimmed[0] == '\r') {
		trimmed = trimmed[1:]
	}

	if len(trimmed) == 0 || string(trimmed) == "null" {
		*ls = nil
		return nil
	}

	if trimmed[0] == '{' {
		var single ParticipantLine
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*ls = ParticipantLines{single}
		return nil
	}

	var many []ParticipantLine
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*ls = ParticipantLines(many)
	return nil
}

// AssignmentRecord is one schedule document per (event, department). Revised
// schedules are superseded rather than deleted, so multiple documents may
// exist for the same event.
type AssignmentRecord struct {
	ID          string           `json:"id"`
	EventID     string           `json:"eventID"`
	Department  string           `json:"department"`
	StartDate   string           `json:"startDate"`
	StartTime   string           `json:"startTime"`
	EndDate     string           `json:"endDate"`
	EndTime     string           `json:"endTime"`
	Responsible ParticipantLines `json:"responsible"`
	Drivers     ParticipantLines `json:"drivers"`
	Workers     ParticipantLines `json:"workers"`
	AdHocGroups ParticipantLines `json:"adHocGroups"`
	CreatedAt   time.Time        `json:"createdAt"`
	Version     int32            `json:"-"`
}

// Lines returns every participant line of the record across all roles.
func (r *AssignmentRecord) Lines() []ParticipantLine {
	lines := make([]ParticipantLine, 0, len(r.Responsible)+len(r.Drivers)+len(r.Workers)+len(r.AdHocGroups))
	lines = append(lines, r.Responsible...)
	lines = append(lines, r.Drivers...)
	lines = append(lines, r.Workers...)
	lines = append(lines, r.AdHocGroups...)
	return lines
}
