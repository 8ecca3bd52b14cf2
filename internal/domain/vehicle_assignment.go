package domain

import "time"

type VehicleAssignmentStatus string

const (
	VehicleStatusPending      VehicleAssignmentStatus = "pending"
	VehicleStatusConfirmed    VehicleAssignmentStatus = "confirmed"
	VehicleStatusAddedToTorns VehicleAssignmentStatus = "addedToTorns"
	VehicleStatusCancelled    VehicleAssignmentStatus = "cancelled"
)

// IsActive reports whether the assignment blocks the vehicle. Cancelled is
// the only terminal, non-blocking status.
func (s VehicleAssignmentStatus) IsActive() bool {
	switch s {
	case VehicleStatusPending, VehicleStatusConfirmed, VehicleStatusAddedToTorns:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes pending -> confirmed -> addedToTorns and
// pending -> cancelled. The availability engine never calls this; only the
// handlers mutating vehicle assignments do.
func (s VehicleAssignmentStatus) CanTransitionTo(next VehicleAssignmentStatus) bool {
	switch s {
	case VehicleStatusPending:
		return next == VehicleStatusConfirmed || next == VehicleStatusCancelled
	case VehicleStatusConfirmed:
		return next == VehicleStatusAddedToTorns
	default:
		return false
	}
}

// VehicleAssignment is one row of the standalone vehicle-assignment store.
type VehicleAssignment struct {
	ID        int64                   `json:"id"`
	Plate     string                  `json:"plate"`
	EventID   string                  `json:"eventID"`
	StartDate string                  `json:"startDate"`
	StartTime string                  `json:"startTime"`
	EndDate   string                  `json:"endDate"`
	EndTime   string                  `json:"endTime"`
	Status    VehicleAssignmentStatus `json:"status"`
	DayKeys   []string                `json:"dayKeys"`
	CreatedAt time.Time               `json:"createdAt"`
	Version   int32                   `json:"-"`
}
