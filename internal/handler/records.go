package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mestral-events/opsboard/backend/internal/availability"
	"github.com/mestral-events/opsboard/backend/internal/domain"
	"github.com/mestral-events/opsboard/backend/internal/interval"
	"github.com/mestral-events/opsboard/backend/internal/utils"
)

// notifyAssignedUsers mails every participant line whose id matches a platform
// username. Lines for externals carry no id and are skipped. Best effort: a
// failed lookup or publish is logged, never surfaced.
func (h *Handler) notifyAssignedUsers(record *domain.AssignmentRecord) {
	for _, line := range record.Lines() {
		if line.ID == "" {
			continue
		}

		user, err := h.repository.GetUserByUsername(line.ID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				slog.Warn("assignment notice lookup failed", "username", line.ID, "error", err)
			}
			continue
		}

		mailMessage := domain.MailMessage{
			Type: "assignment_notice",
			To:   user.Email,
			Data: domain.AssignmentNoticeMailData{
				FullName:   user.FullName,
				EventID:    record.EventID,
				Department: record.Department,
				StartDate:  record.StartDate,
				StartTime:  record.StartTime,
				EndDate:    record.EndDate,
				EndTime:    record.EndTime,
			},
		}
		if err := h.publishMail(mailMessage); err != nil {
			slog.Warn("assignment notice not queued", "username", user.Username, "error", err)
		}
	}
}

type assignmentRecordRequest struct {
	EventID     string                  `json:"eventID" validate:"required"`
	StartDate   string                  `json:"startDate" validate:"required"`
	StartTime   string                  `json:"startTime" validate:"required"`
	EndDate     string                  `json:"endDate"`
	EndTime     string                  `json:"endTime" validate:"required"`
	Responsible domain.ParticipantLines `json:"responsible"`
	Drivers     domain.ParticipantLines `json:"drivers"`
	Workers     domain.ParticipantLines `json:"workers"`
	AdHocGroups domain.ParticipantLines `json:"adHocGroups"`
}

func (h *Handler) CreateAssignmentRecord(w http.ResponseWriter, r *http.Request) {
	var req assignmentRecordRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, ok := interval.NewRange(req.StartDate, req.StartTime, req.EndDate, req.EndTime); !ok {
		h.errorResponse(w, r, "invalid schedule window")
		return
	}

	collection := r.Context().Value(DepartmentCtx).(string)
	department := chi.URLParam(r, "department")

	record := &domain.AssignmentRecord{
		ID:          utils.GenerateRecordID(),
		EventID:     req.EventID,
		Department:  department,
		StartDate:   req.StartDate,
		StartTime:   req.StartTime,
		EndDate:     req.EndDate,
		EndTime:     req.EndTime,
		Responsible: req.Responsible,
		Drivers:     req.Drivers,
		Workers:     req.Workers,
		AdHocGroups: req.AdHocGroups,
	}

	// Advisory pre-check only. Another record can land between this check and
	// the insert; the availability endpoints re-detect such overlaps on read.
	q := availability.Query{
		StartDate: req.StartDate,
		StartTime: req.StartTime,
		EndDate:   req.EndDate,
		EndTime:   req.EndTime,
	}
	warnings := make([]string, 0)
	for _, line := range record.Lines() {
		if line.Name == "" {
			continue
		}
		if ok, _ := h.engine.CheckRest(department, line.Name, q, ""); !ok {
			warnings = append(warnings, line.Name)
		}
	}

	if err := h.repository.CreateAssignmentRecord(collection, record); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.notifyAssignedUsers(record)

	h.successResponse(w, r, "record created", map[string]any{
		"record":       record,
		"restWarnings": warnings,
	})
}

func (h *Handler) ListAssignmentRecords(w http.ResponseWriter, r *http.Request) {
	collection := r.Context().Value(DepartmentCtx).(string)
	until := r.URL.Query().Get("until")

	records, err := h.repository.RecordsUntil(collection, until)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "records fetched", records)
}

func (h *Handler) GetAssignmentRecord(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(AssignmentRecordCtx).(*domain.AssignmentRecord)

	h.successResponse(w, r, "record fetched", record)
}

func (h *Handler) UpdateAssignmentRecord(w http.ResponseWriter, r *http.Request) {
	var req assignmentRecordRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, ok := interval.NewRange(req.StartDate, req.StartTime, req.EndDate, req.EndTime); !ok {
		h.errorResponse(w, r, "invalid schedule window")
		return
	}

	collection := r.Context().Value(DepartmentCtx).(string)
	record := r.Context().Value(AssignmentRecordCtx).(*domain.AssignmentRecord)

	record.StartDate = req.StartDate
	record.StartTime = req.StartTime
	record.EndDate = req.EndDate
	record.EndTime = req.EndTime
	record.Responsible = req.Responsible
	record.Drivers = req.Drivers
	record.Workers = req.Workers
	record.AdHocGroups = req.AdHocGroups

	if err := h.repository.UpdateAssignmentRecord(collection, record); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyAssignedUsers(record)

	h.successResponse(w, r, "record updated", record)
}

func (h *Handler) DeleteAssignmentRecord(w http.ResponseWriter, r *http.Request) {
	collection := r.Context().Value(DepartmentCtx).(string)
	record := r.Context().Value(AssignmentRecordCtx).(*domain.AssignmentRecord)

	if err := h.repository.DeleteAssignmentRecord(collection, record.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "record deleted", nil)
}
