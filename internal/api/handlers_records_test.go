// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/rollcall-hq/rollcall/internal/models"
)

func doJSON(t *testing.T, env *testEnv, method, target, company, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if company != "" {
		req.Header.Set(companyIDHeader, company)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateAttendance_CommitsThenPublishes(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/attendance", "acme",
		`{"employee_id":"E1","status":"in","camera_id":"cam-3"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		OK   bool                    `json:"ok"`
		Data models.AttendanceRecord `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.Data.ID == "" || resp.Data.CompanyID != "acme" {
		t.Errorf("unexpected create response: %s", rec.Body.String())
	}

	// The commit published a feed event.
	pollRec, body := doPoll(t, env, "/api/v1/attendance/events", "acme")
	if pollRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", pollRec.Code)
	}
	if body.LatestSeq != 1 || len(body.Events) != 1 {
		t.Fatalf("expected one published event, got %s", pollRec.Body.String())
	}
	ev := body.Events[0]
	if ev["attendanceId"] != resp.Data.ID {
		t.Errorf("expected attendanceId %s, got %v", resp.Data.ID, ev["attendanceId"])
	}
	if ev["employeeId"] != "E1" || ev["cameraId"] != "cam-3" {
		t.Errorf("unexpected event payload: %v", ev)
	}

	// And the record is listable.
	listRec := doJSON(t, env, http.MethodGet, "/api/v1/attendance", "acme", "")
	if listRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", listRec.Code)
	}
	var list struct {
		Data []models.AttendanceRecord `json:"data"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].EmployeeID != "E1" {
		t.Errorf("unexpected list: %s", listRec.Body.String())
	}
}

func TestCreateAttendance_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/attendance", "acme", `{"status":"in"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing employee_id, got %d", rec.Code)
	}

	rec = doJSON(t, env, http.MethodPost, "/api/v1/attendance", "acme", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestCreateOvertime_RidesAttendanceFeed(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/overtime", "acme",
		`{"employee_id":"E7","starts_at":"2026-03-02T18:00:00Z","ends_at":"2026-03-02T20:00:00Z","reason":"inventory"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	_, body := doPoll(t, env, "/api/v1/attendance/events", "acme")
	if len(body.Events) != 1 {
		t.Fatalf("expected overtime event on attendance feed, got %d events", len(body.Events))
	}
	ev := body.Events[0]
	if ev["type"] != models.EventTypeOvertime {
		t.Errorf("expected type %q, got %v", models.EventTypeOvertime, ev["type"])
	}
	if ev["overtimeId"] == "" || ev["employeeId"] != "E7" {
		t.Errorf("unexpected event payload: %v", ev)
	}
}

func TestCreateOvertime_RejectsInvertedWindow(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/overtime", "acme",
		`{"employee_id":"E7","starts_at":"2026-03-02T20:00:00Z","ends_at":"2026-03-02T18:00:00Z"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateHeadcount_PublishesOwnTopic(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/headcount", "acme",
		`{"employee_id":"E2","status":"present","camera_id":"cam-1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	_, hc := doPoll(t, env, "/api/v1/headcount/events", "acme")
	if len(hc.Events) != 1 || hc.Events[0]["employeeId"] != "E2" {
		t.Errorf("expected headcount event, got %+v", hc.Events)
	}

	// Attendance stream unaffected.
	_, att := doPoll(t, env, "/api/v1/attendance/events", "acme")
	if len(att.Events) != 0 {
		t.Errorf("headcount publish must not reach attendance feed")
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/employees", "acme",
		`{"name":"Ada","badge":"B-12"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data models.Employee `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	getRec := doJSON(t, env, http.MethodGet, "/api/v1/employees/"+created.Data.ID, "acme", "")
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getRec.Code)
	}

	// Other tenants cannot see it.
	otherRec := doJSON(t, env, http.MethodGet, "/api/v1/employees/"+created.Data.ID, "globex", "")
	if otherRec.Code != http.StatusNotFound {
		t.Errorf("expected 404 cross-tenant, got %d", otherRec.Code)
	}

	delRec := doJSON(t, env, http.MethodDelete, "/api/v1/employees/"+created.Data.ID, "acme", "")
	if delRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", delRec.Code)
	}
	goneRec := doJSON(t, env, http.MethodGet, "/api/v1/employees/"+created.Data.ID, "acme", "")
	if goneRec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", goneRec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/api/v1/health/live", "/api/v1/health/ready", "/api/v1/health"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200 without tenant, got %d", target, rec.Code)
		}
	}
}
