package handler

import (
	"net/http"
	"sort"

	"github.com/mestral-events/opsboard/backend/internal/availability"
)

func queryFromParams(r *http.Request) availability.Query {
	params := r.URL.Query()
	return availability.Query{
		StartDate: params.Get("startDate"),
		StartTime: params.Get("startTime"),
		EndDate:   params.Get("endDate"),
		EndTime:   params.Get("endTime"),
	}
}

func (h *Handler) GetBusyIdentifiers(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")
	if department == "" {
		h.errorResponse(w, r, "department is required")
		return
	}

	set := h.engine.BusyIdentifiers(department, queryFromParams(r))

	identifiers := set.Identifiers()
	sort.Strings(identifiers)

	h.successResponse(w, r, "busy identifiers fetched", identifiers)
}

func (h *Handler) GetBusyIdentifiersAll(w http.ResponseWriter, r *http.Request) {
	excludeRecordID := r.URL.Query().Get("exclude")

	set := h.engine.BusyIdentifiersAll(queryFromParams(r), excludeRecordID)

	identifiers := set.Identifiers()
	sort.Strings(identifiers)

	h.successResponse(w, r, "busy identifiers fetched", identifiers)
}

func (h *Handler) CheckRest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Department      string `json:"department"`
		PersonName      string `json:"personName" validate:"required"`
		StartDate       string `json:"startDate" validate:"required"`
		StartTime       string `json:"startTime"`
		EndDate         string `json:"endDate"`
		EndTime         string `json:"endTime"`
		ExcludeRecordID string `json:"excludeRecordID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	q := availability.Query{
		StartDate: req.StartDate,
		StartTime: req.StartTime,
		EndDate:   req.EndDate,
		EndTime:   req.EndTime,
	}

	allowed, violation := h.engine.CheckRest(req.Department, req.PersonName, q, req.ExcludeRecordID)

	h.successResponse(w, r, "rest rule evaluated", map[string]any{
		"allowed":   allowed,
		"violation": violation,
	})
}

func (h *Handler) CheckVehicleConflict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plate               string `json:"plate" validate:"required"`
		StartDate           string `json:"startDate" validate:"required"`
		StartTime           string `json:"startTime"`
		EndDate             string `json:"endDate"`
		EndTime             string `json:"endTime"`
		ExcludeAssignmentID int64  `json:"excludeAssignmentID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	q := availability.Query{
		StartDate: req.StartDate,
		StartTime: req.StartTime,
		EndDate:   req.EndDate,
		EndTime:   req.EndTime,
	}

	occupation := h.engine.FindVehicleConflict(req.Plate, q, req.ExcludeAssignmentID)

	h.successResponse(w, r, "vehicle availability evaluated", map[string]any{
		"available":  occupation == nil,
		"occupation": occupation,
	})
}

func (h *Handler) GetRestRule(w http.ResponseWriter, r *http.Request) {
	collection := r.Context().Value(DepartmentCtx).(string)

	h.successResponse(w, r, "rest rule fetched", map[string]any{
		"collection":   collection,
		"minRestHours": h.restPolicy.MinRestHours(collection),
	})
}

func (h *Handler) UpdateRestRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MinRestHours int `json:"minRestHours" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	collection := r.Context().Value(DepartmentCtx).(string)

	if err := h.repository.UpsertMinRestHours(collection, req.MinRestHours); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.restPolicy.Invalidate(collection)

	h.successResponse(w, r, "rest rule updated", map[string]any{
		"collection":   collection,
		"minRestHours": req.MinRestHours,
	})
}
