package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mestral-events/opsboard/backend/internal/availability"
	"github.com/mestral-events/opsboard/backend/internal/domain"
	"github.com/mestral-events/opsboard/backend/internal/interval"
)

// alertVehicleConflict mails the requesting user about the occupation that
// blocked their booking. Best effort.
func (h *Handler) alertVehicleConflict(r *http.Request, plate string, occupation *domain.Occupation) {
	subString := r.Context().Value(SubCtxKey).(string)
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		return
	}

	user, err := h.repository.GetUserByID(sub)
	if err != nil {
		slog.Warn("conflict alert lookup failed", "sub", sub, "error", err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "conflict_alert",
		To:   user.Email,
		Data: domain.ConflictAlertMailData{
			Plate:    plate,
			Source:   string(occupation.Source),
			RecordID: occupation.RecordID,
			Start:    occupation.Start.Format("2006-01-02 15:04"),
			End:      occupation.End.Format("2006-01-02 15:04"),
			Status:   string(occupation.Status),
		},
	}
	if err := h.publishMail(mailMessage); err != nil {
		slog.Warn("conflict alert not queued", "plate", plate, "error", err)
	}
}

func (h *Handler) CreateVehicleAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plate     string `json:"plate" validate:"required"`
		EventID   string `json:"eventID" validate:"required"`
		StartDate string `json:"startDate" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndDate   string `json:"endDate"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	window, ok := interval.NewRange(req.StartDate, req.StartTime, req.EndDate, req.EndTime)
	if !ok {
		h.errorResponse(w, r, "invalid schedule window")
		return
	}

	// Advisory pre-check: another booking can land between this check and the
	// insert. Conflicts caught here still cover the common case.
	q := availability.Query{
		StartDate: req.StartDate,
		StartTime: req.StartTime,
		EndDate:   req.EndDate,
		EndTime:   req.EndTime,
	}
	if occupation := h.engine.FindVehicleConflict(req.Plate, q, 0); occupation != nil {
		h.alertVehicleConflict(r, req.Plate, occupation)
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: "vehicle already occupied in that window",
			Data:    occupation,
		})
		return
	}

	assignment := &domain.VehicleAssignment{
		Plate:     req.Plate,
		EventID:   req.EventID,
		StartDate: req.StartDate,
		StartTime: req.StartTime,
		EndDate:   req.EndDate,
		EndTime:   req.EndTime,
		Status:    domain.VehicleStatusPending,
		DayKeys:   interval.DayKeys(window),
	}

	if err := h.repository.CreateVehicleAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle assignment created", assignment)
}

func (h *Handler) ListVehicleAssignments(w http.ResponseWriter, r *http.Request) {
	plate := r.URL.Query().Get("plate")

	assignments, err := h.repository.ListVehicleAssignments(plate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle assignments fetched", assignments)
}

func (h *Handler) GetVehicleAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(VehicleAssignmentCtx).(*domain.VehicleAssignment)

	h.successResponse(w, r, "vehicle assignment fetched", assignment)
}

func (h *Handler) UpdateVehicleAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=pending confirmed addedToTorns cancelled"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignment := r.Context().Value(VehicleAssignmentCtx).(*domain.VehicleAssignment)
	next := domain.VehicleAssignmentStatus(req.Status)

	if !assignment.Status.CanTransitionTo(next) {
		h.errorResponse(w, r, "status transition not allowed")
		return
	}

	assignment.Status = next

	if err := h.repository.UpdateVehicleAssignmentStatus(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "status updated", assignment)
}
