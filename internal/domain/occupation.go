package domain

import "time"

type OccupationSource string

const (
	OccupationFromRecord     OccupationSource = "record"
	OccupationFromStandalone OccupationSource = "standalone"
)

// Occupation is a vehicle's committed time window, derived either from a
// participant line embedded in an assignment record or from a row of the
// standalone vehicle-assignment store.
type Occupation struct {
	Source   OccupationSource        `json:"source"`
	RecordID string                  `json:"recordID,omitempty"`
	Start    time.Time               `json:"start"`
	End      time.Time               `json:"end"`
	Status   VehicleAssignmentStatus `json:"status,omitempty"`
}
