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

// createAttendanceRequest is the POST /attendance body.
type createAttendanceRequest struct {
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	CameraID   string    `json:"camera_id"`
	Confidence float64   `json:"confidence"`
	SeenAt     time.Time `json:"seen_at"`
}

// CreateAttendance records one attendance mark and notifies subscribers.
// The write commits first; the publish is best-effort and never fails the
// request.
func (h *Handler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var req createAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		respondError(w, r, http.StatusBadRequest, "employee_id is required", nil)
		return
	}
	if req.SeenAt.IsZero() {
		req.SeenAt = time.Now().UTC()
	}
	if req.Status == "" {
		req.Status = models.AttendanceStatusIn
	}

	companyID := logging.TenantFromContext(r.Context())
	rec := &models.AttendanceRecord{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
		CameraID:   req.CameraID,
		Confidence: req.Confidence,
		SeenAt:     req.SeenAt,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.attendanceStore.Put(rec); err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to store attendance record", err)
		return
	}

	// Committed; notify the feed. Non-transactional: a failed publish never
	// rolls back the write.
	h.attendance.Publish(companyID, models.AttendanceEvent{
		Type:         models.EventTypeAttendance,
		AttendanceID: rec.ID,
		EmployeeID:   rec.EmployeeID,
		Status:       rec.Status,
		Timestamp:    rec.SeenAt.UTC().Format(time.RFC3339),
		CameraID:     rec.CameraID,
	})

	respondOK(w, http.StatusCreated, rec)
}

// ListAttendance returns the company's most recent attendance marks.
func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	companyID := logging.TenantFromContext(r.Context())
	limit := queryInt(r, h.defaultLimit, "limit")

	records, err := h.attendanceStore.List(companyID, limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to list attendance records", err)
		return
	}
	respondOK(w, http.StatusOK, records)
}
