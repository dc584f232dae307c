// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rollcall-hq/rollcall/internal/logging"
	"github.com/rollcall-hq/rollcall/internal/models"
	"github.com/rollcall-hq/rollcall/internal/recognizer"
	"github.com/rollcall-hq/rollcall/internal/store"
)

// createEmployeeRequest is the POST /employees body.
type createEmployeeRequest struct {
	Name     string `json:"name"`
	Badge    string `json:"badge"`
	PhotoRef string `json:"photo_ref"`
}

// CreateEmployee adds one roster entry. When the recognizer integration is
// enabled and a photo reference is supplied, the face is enrolled with the
// recognition service; enrollment failure leaves the employee on the roster
// un-enrolled rather than failing the request.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Name == "" {
		respondError(w, r, http.StatusBadRequest, "name is required", nil)
		return
	}

	ctx := r.Context()
	companyID := logging.TenantFromContext(ctx)
	emp := &models.Employee{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      req.Name,
		Badge:     req.Badge,
		PhotoRef:  req.PhotoRef,
		CreatedAt: time.Now().UTC(),
	}

	if h.recognizer.Enabled() && emp.PhotoRef != "" {
		result, err := h.recognizer.Enroll(ctx, &recognizer.EnrollRequest{
			CompanyID:  companyID,
			EmployeeID: emp.ID,
			PhotoRef:   emp.PhotoRef,
		})
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("employee_id", emp.ID).Msg("face enrollment failed")
		} else {
			emp.Enrolled = result.Enrolled
		}
	}

	if err := h.employeeStore.Put(emp); err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to store employee", err)
		return
	}
	respondOK(w, http.StatusCreated, emp)
}

// GetEmployee returns one roster entry by ID.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	companyID := logging.TenantFromContext(r.Context())
	id := chi.URLParam(r, "id")

	emp, err := h.employeeStore.Get(companyID, id)
	if err != nil {
		if store.IsNotFound(err) {
			respondError(w, r, http.StatusNotFound, "employee not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "failed to load employee", err)
		return
	}
	respondOK(w, http.StatusOK, emp)
}

// ListEmployees returns the company roster.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	companyID := logging.TenantFromContext(r.Context())
	limit := queryInt(r, 0, "limit")

	employees, err := h.employeeStore.List(companyID, limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to list employees", err)
		return
	}
	respondOK(w, http.StatusOK, employees)
}

// DeleteEmployee removes one roster entry and, best-effort, drops the face
// from the recognition service.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	companyID := logging.TenantFromContext(ctx)
	id := chi.URLParam(r, "id")

	emp, err := h.employeeStore.Get(companyID, id)
	if err != nil {
		if store.IsNotFound(err) {
			respondError(w, r, http.StatusNotFound, "employee not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "failed to load employee", err)
		return
	}

	if err := h.employeeStore.Delete(companyID, id); err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to delete employee", err)
		return
	}

	if h.recognizer.Enabled() && emp.Enrolled {
		if err := h.recognizer.Unenroll(ctx, companyID, id); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("employee_id", id).Msg("face unenrollment failed")
		}
	}

	respondOK(w, http.StatusOK, nil)
}
