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

// createHeadcountRequest is the POST /headcount body.
type createHeadcountRequest struct {
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	CameraID   string    `json:"camera_id"`
	SeenAt     time.Time `json:"seen_at"`
}

// CreateHeadcount records one headcount scan and notifies subscribers on
// the headcount topic.
func (h *Handler) CreateHeadcount(w http.ResponseWriter, r *http.Request) {
	var req createHeadcountRequest
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

	companyID := logging.TenantFromContext(r.Context())
	rec := &models.HeadcountRecord{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
		CameraID:   req.CameraID,
		SeenAt:     req.SeenAt,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.headcountStore.Put(rec); err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to store headcount record", err)
		return
	}

	h.headcount.Publish(companyID, models.HeadcountEvent{
		HeadcountID: rec.ID,
		EmployeeID:  rec.EmployeeID,
		Status:      rec.Status,
		Timestamp:   rec.SeenAt.UTC().Format(time.RFC3339),
		CameraID:    rec.CameraID,
	})

	respondOK(w, http.StatusCreated, rec)
}

// ListHeadcount returns the company's most recent headcount scans.
func (h *Handler) ListHeadcount(w http.ResponseWriter, r *http.Request) {
	companyID := logging.TenantFromContext(r.Context())
	limit := queryInt(r, h.defaultLimit, "limit")

	records, err := h.headcountStore.List(companyID, limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to list headcount records", err)
		return
	}
	respondOK(w, http.StatusOK, records)
}
