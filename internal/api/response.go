// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/rollcall-hq/rollcall/internal/logging"
)

// errorResponse is the error envelope for every endpoint:
// {"ok":false,"error":"...","detail":"..."}.
type errorResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// okResponse wraps successful write/read responses that are not event polls:
// {"ok":true,"data":...}.
type okResponse struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data,omitempty"`
}

// respondJSON writes v as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write response")
	}
}

// respondOK writes {"ok":true,"data":...}.
func respondOK(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, &okResponse{OK: true, Data: data})
}

// respondError writes {"ok":false,"error":...,"detail":...} and logs the
// underlying cause when one exists.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	detail := message
	if err != nil {
		detail = err.Error()
		logging.Ctx(r.Context()).Error().Err(err).Int("status", status).Str("path", r.URL.Path).Msg(message)
	}
	respondJSON(w, status, &errorResponse{OK: false, Error: message, Detail: detail})
}
