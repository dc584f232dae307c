// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

// Package models holds the wire and storage types shared across Rollcall:
// event payloads for the real-time feeds and the records persisted by the
// write-path controllers.
package models

import "time"

// Attendance statuses recorded from camera sightings.
const (
	AttendanceStatusIn  = "in"
	AttendanceStatusOut = "out"
)

// Overtime requisition statuses.
const (
	OvertimeStatusPending  = "pending"
	OvertimeStatusApproved = "approved"
	OvertimeStatusRejected = "rejected"
)

// AttendanceRecord is one attendance mark for an employee, created when the
// recognition service reports a sighting or an operator enters one manually.
type AttendanceRecord struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status,omitempty"`
	CameraID   string    `json:"camera_id,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	SeenAt     time.Time `json:"seen_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// HeadcountRecord is one headcount scan result for an employee.
type HeadcountRecord struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status,omitempty"`
	CameraID   string    `json:"camera_id,omitempty"`
	SeenAt     time.Time `json:"seen_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// OvertimeRecord is one overtime requisition.
type OvertimeRecord struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Employee is one roster entry. PhotoRef points at the enrollment photo the
// recognition service was trained with; the photo itself never passes
// through Rollcall.
type Employee struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Badge     string    `json:"badge,omitempty"`
	PhotoRef  string    `json:"photo_ref,omitempty"`
	Enrolled  bool      `json:"enrolled"`
	CreatedAt time.Time `json:"created_at"`
}
