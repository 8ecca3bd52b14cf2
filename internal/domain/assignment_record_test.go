package domain

import (
	"encoding/json"
	"testing"
)

func TestParticipantLineFieldAliases(t *testing.T) {
	raw := `{"uid":"u-7","nom":"Núria Vidal","dataInici":"2024-05-01","horaInici":"09:00","horaFi":"17:00","matricula":"1234ABC"}`

	var line ParticipantLine
	if err := json.Unmarshal([]byte(raw), &line); err != nil {
		t.Fatal(err)
	}

	if line.ID != "u-7" {
		t.Errorf("ID = %q", line.ID)
	}
	if line.Name != "Núria Vidal" {
		t.Errorf("Name = %q", line.Name)
	}
	if line.StartDate != "2024-05-01" || line.StartTime != "09:00" || line.EndTime != "17:00" {
		t.Errorf("window fields not resolved: %+v", line)
	}
	if line.Plate != "1234ABC" {
		t.Errorf("Plate = %q", line.Plate)
	}
}

func TestParticipantLineModernFieldsWin(t *testing.T) {
	raw := `{"id":"new","uid":"old","name":"Anna","nom":"Anna Vella"}`

	var line ParticipantLine
	if err := json.Unmarshal([]byte(raw), &line); err != nil {
		t.Fatal(err)
	}

	if line.ID != "new" || line.Name != "Anna" {
		t.Errorf("modern field names must win: %+v", line)
	}
}

func TestParticipantLinesObjectOrArray(t *testing.T) {
	var fromObject ParticipantLines
	if err := json.Unmarshal([]byte(`{"name":"Anna Soler"}`), &fromObject); err != nil {
		t.Fatal(err)
	}
	if len(fromObject) != 1 || fromObject[0].Name != "Anna Soler" {
		t.Fatalf("object form: %+v", fromObject)
	}

	var fromArray ParticipantLines
	if err := json.Unmarshal([]byte(`[{"name":"Anna Soler"},{"nom":"Pere Camps"}]`), &fromArray); err != nil {
		t.Fatal(err)
	}
	if len(fromArray) != 2 || fromArray[1].Name != "Pere Camps" {
		t.Fatalf("array form: %+v", fromArray)
	}

	var fromNull ParticipantLines
	if err := json.Unmarshal([]byte(`null`), &fromNull); err != nil {
		t.Fatal(err)
	}
	if fromNull != nil {
		t.Fatalf("null form: %+v", fromNull)
	}
}

func TestVehicleStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to VehicleAssignmentStatus
		want     bool
	}{
		{VehicleStatusPending, VehicleStatusConfirmed, true},
		{VehicleStatusPending, VehicleStatusCancelled, true},
		{VehicleStatusConfirmed, VehicleStatusAddedToTorns, true},
		{VehicleStatusConfirmed, VehicleStatusCancelled, false},
		{VehicleStatusAddedToTorns, VehicleStatusCancelled, false},
		{VehicleStatusCancelled, VehicleStatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	for _, s := range []VehicleAssignmentStatus{VehicleStatusPending, VehicleStatusConfirmed, VehicleStatusAddedToTorns} {
		if !s.IsActive() {
			t.Errorf("%s must be active", s)
		}
	}
	if VehicleStatusCancelled.IsActive() {
		t.Error("cancelled must not block")
	}
}
