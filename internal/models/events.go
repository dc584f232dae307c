// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package models

// Event type discriminators on the attendance topic. Attendance marks and
// overtime requisitions share one stream; headcount scans have their own.
const (
	EventTypeAttendance = "attendance"
	EventTypeOvertime   = "overtime"
)

// AttendanceEvent is the payload published on the attendance topic after an
// attendance mark or overtime requisition is committed. The event log treats
// it as opaque; field names match the dashboard contract.
type AttendanceEvent struct {
	Type         string `json:"type,omitempty"`
	AttendanceID string `json:"attendanceId,omitempty"`
	OvertimeID   string `json:"overtimeId,omitempty"`
	EmployeeID   string `json:"employeeId"`
	Status       string `json:"status,omitempty"`
	Timestamp    string `json:"timestamp"`
	CameraID     string `json:"cameraId,omitempty"`
}

// HeadcountEvent is the payload published on the headcount topic after a
// headcount scan is committed.
type HeadcountEvent struct {
	HeadcountID string `json:"headcountId"`
	EmployeeID  string `json:"employeeId"`
	Status      string `json:"status,omitempty"`
	Timestamp   string `json:"timestamp"`
	CameraID    string `json:"cameraId,omitempty"`
}
