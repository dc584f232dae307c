// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/rollcall-hq/rollcall/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open("") // in-memory
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close failed: %v", err)
		}
	})
	return db
}

func TestAttendanceStore_PutAndList(t *testing.T) {
	db := openTestDB(t)
	s := NewAttendanceStore(db)

	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := &models.AttendanceRecord{
			ID:         fmt.Sprintf("a%d", i),
			CompanyID:  "acme",
			EmployeeID: fmt.Sprintf("E%d", i),
			Status:     models.AttendanceStatusIn,
			SeenAt:     base.Add(time.Duration(i) * time.Minute),
			CreatedAt:  base,
		}
		if err := s.Put(rec); err != nil {
			t.Fatalf("put %d failed: %v", i, err)
		}
	}

	got, err := s.List("acme", 3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	// Newest first.
	if got[0].ID != "a4" || got[1].ID != "a3" || got[2].ID != "a2" {
		t.Errorf("expected newest-first order [a4 a3 a2], got [%s %s %s]", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestAttendanceStore_TenantScoping(t *testing.T) {
	db := openTestDB(t)
	s := NewAttendanceStore(db)

	now := time.Now().UTC()
	if err := s.Put(&models.AttendanceRecord{ID: "a1", CompanyID: "acme", EmployeeID: "E1", SeenAt: now}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := s.List("globex", 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records for other tenant, got %d", len(got))
	}
}

func TestEmployeeStore_GetPutList(t *testing.T) {
	db := openTestDB(t)
	s := NewEmployeeStore(db)

	emp := &models.Employee{ID: "e1", CompanyID: "acme", Name: "Ada", CreatedAt: time.Now().UTC()}
	if err := s.Put(emp); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := s.Get("acme", "e1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Ada" {
		t.Errorf("expected name Ada, got %s", got.Name)
	}

	if _, err := s.Get("acme", "missing"); !IsNotFound(err) {
		t.Errorf("expected not-found sentinel, got %v", err)
	}
	if _, err := s.Get("globex", "e1"); !IsNotFound(err) {
		t.Errorf("expected tenant-scoped not-found, got %v", err)
	}

	// Overwrite updates in place.
	emp.Enrolled = true
	if err := s.Put(emp); err != nil {
		t.Fatalf("second put failed: %v", err)
	}
	got, err = s.Get("acme", "e1")
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if !got.Enrolled {
		t.Error("expected enrolled flag after update")
	}

	list, err := s.List("acme", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 employee, got %d", len(list))
	}
}

func TestOvertimeStore_PutAndList(t *testing.T) {
	db := openTestDB(t)
	s := NewOvertimeStore(db)

	start := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	rec := &models.OvertimeRecord{
		ID:         "ot1",
		CompanyID:  "acme",
		EmployeeID: "E1",
		Status:     models.OvertimeStatusPending,
		StartsAt:   start,
		EndsAt:     start.Add(2 * time.Hour),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Put(rec); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := s.List("acme", 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].Status != models.OvertimeStatusPending {
		t.Errorf("unexpected overtime list: %+v", got)
	}
}
