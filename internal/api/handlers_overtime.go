// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rollcall-hq/rollcall/internal/logging"
	"github.com/rollcall-hq/rollcall/internal/models"
)

// createOvertimeRequest is the POST /overtime body.
type createOvertimeRequest struct {
	EmployeeID string    `json:"employee_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Reason     string    `json:"reason"`
}

// CreateOvertime records one overtime requisition. Overtime changes ride the
// attendance feed with a type discriminator, so dashboards watching the
// attendance stream see them without a third long-poll connection.
func (h *Handler) CreateOvertime(w http.ResponseWriter, r *http.Request) {
	var req createOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		respondError(w, r, http.StatusBadRequest, "employee_id is required", nil)
		return
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() || !req.EndsAt.After(req.StartsAt) {
		respondError(w, r, http.StatusBadRequest, "starts_at must precede ends_at", nil)
		return
	}

	companyID := logging.TenantFromContext(r.Context())
	rec := &models.OvertimeRecord{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Status:     models.OvertimeStatusPending,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		Reason:     req.Reason,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.overtimeStore.Put(rec); err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to store overtime requisition", err)
		return
	}

	h.attendance.Publish(companyID, models.AttendanceEvent{
		Type:       models.EventTypeOvertime,
		OvertimeID: rec.ID,
		EmployeeID: rec.EmployeeID,
		Status:     rec.Status,
		Timestamp:  rec.StartsAt.UTC().Format(time.RFC3339),
	})

	respondOK(w, http.StatusCreated, rec)
}

// ListOvertime returns the company's most recent overtime requisitions.
func (h *Handler) ListOvertime(w http.ResponseWriter, r *http.Request) {
	companyID := logging.TenantFromContext(r.Context())
	limit := queryInt(r, h.defaultLimit, "limit")

	records, err := h.overtimeStore.List(companyID, limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to list overtime requisitions", err)
		return
	}
	respondOK(w, http.StatusOK, records)
}
