// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

package store

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/rollcall-hq/rollcall/internal/metrics"
	"github.com/rollcall-hq/rollcall/internal/models"
)

// Key kinds. Also used as the metrics "kind" label.
const (
	kindAttendance = "attendance"
	kindHeadcount  = "headcount"
	kindOvertime   = "overtime"
	kindEmployee   = "employee"
)

// timeKey builds a tenant-scoped key whose sort position follows the record
// timestamp: <kind>/<company>/<unixnano-padded>-<id>.
func timeKey(kind, companyID string, at time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%s/%s/%020d-%s", kind, companyID, at.UnixNano(), id))
}

// idKey builds a tenant-scoped key for identity-addressed kinds.
func idKey(kind, companyID, id string) []byte {
	return []byte(fmt.Sprintf("%s/%s/%s", kind, companyID, id))
}

func tenantPrefix(kind, companyID string) []byte {
	return []byte(fmt.Sprintf("%s/%s/", kind, companyID))
}

// listRecords decodes up to limit records of type T under the tenant prefix,
// newest-first.
func listRecords[T any](db *DB, kind, companyID string, limit int) ([]T, error) {
	if limit <= 0 {
		limit = 50
	}
	records := make([]T, 0, limit)
	err := db.listPrefix(tenantPrefix(kind, companyID), true, func(raw []byte) (bool, error) {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return false, err
		}
		records = append(records, rec)
		return len(records) < limit, nil
	})
	metrics.RecordStoreOperation(kind, "list", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	return records, nil
}

// AttendanceStore persists attendance marks.
type AttendanceStore struct {
	db *DB
}

// NewAttendanceStore creates an attendance record store on db.
func NewAttendanceStore(db *DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

// Put writes one attendance record.
func (s *AttendanceStore) Put(rec *models.AttendanceRecord) error {
	err := s.db.put(timeKey(kindAttendance, rec.CompanyID, rec.SeenAt, rec.ID), rec)
	metrics.RecordStoreOperation(kindAttendance, "put", err)
	return err
}

// List returns up to limit attendance records for the company, newest-first.
func (s *AttendanceStore) List(companyID string, limit int) ([]models.AttendanceRecord, error) {
	return listRecords[models.AttendanceRecord](s.db, kindAttendance, companyID, limit)
}

// HeadcountStore persists headcount scans.
type HeadcountStore struct {
	db *DB
}

// NewHeadcountStore creates a headcount record store on db.
func NewHeadcountStore(db *DB) *HeadcountStore {
	return &HeadcountStore{db: db}
}

// Put writes one headcount record.
func (s *HeadcountStore) Put(rec *models.HeadcountRecord) error {
	err := s.db.put(timeKey(kindHeadcount, rec.CompanyID, rec.SeenAt, rec.ID), rec)
	metrics.RecordStoreOperation(kindHeadcount, "put", err)
	return err
}

// List returns up to limit headcount records for the company, newest-first.
func (s *HeadcountStore) List(companyID string, limit int) ([]models.HeadcountRecord, error) {
	return listRecords[models.HeadcountRecord](s.db, kindHeadcount, companyID, limit)
}

// OvertimeStore persists overtime requisitions.
type OvertimeStore struct {
	db *DB
}

// NewOvertimeStore creates an overtime record store on db.
func NewOvertimeStore(db *DB) *OvertimeStore {
	return &OvertimeStore{db: db}
}

// Put writes one overtime requisition.
func (s *OvertimeStore) Put(rec *models.OvertimeRecord) error {
	err := s.db.put(timeKey(kindOvertime, rec.CompanyID, rec.StartsAt, rec.ID), rec)
	metrics.RecordStoreOperation(kindOvertime, "put", err)
	return err
}

// List returns up to limit overtime requisitions for the company, newest-first.
func (s *OvertimeStore) List(companyID string, limit int) ([]models.OvertimeRecord, error) {
	return listRecords[models.OvertimeRecord](s.db, kindOvertime, companyID, limit)
}

// EmployeeStore persists the employee roster, keyed by employee ID.
type EmployeeStore struct {
	db *DB
}

// NewEmployeeStore creates an employee roster store on db.
func NewEmployeeStore(db *DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

// Put writes one employee record, overwriting any previous version.
func (s *EmployeeStore) Put(emp *models.Employee) error {
	err := s.db.put(idKey(kindEmployee, emp.CompanyID, emp.ID), emp)
	metrics.RecordStoreOperation(kindEmployee, "put", err)
	return err
}

// Get reads one employee by ID. Returns a not-found error (IsNotFound) when
// the employee does not exist.
func (s *EmployeeStore) Get(companyID, id string) (*models.Employee, error) {
	var emp models.Employee
	err := s.db.get(idKey(kindEmployee, companyID, id), &emp)
	metrics.RecordStoreOperation(kindEmployee, "get", err)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// Delete removes one employee from the roster.
func (s *EmployeeStore) Delete(companyID, id string) error {
	err := s.db.delete(idKey(kindEmployee, companyID, id))
	metrics.RecordStoreOperation(kindEmployee, "delete", err)
	return err
}

// List returns up to limit employees for the company in ID order.
func (s *EmployeeStore) List(companyID string, limit int) ([]models.Employee, error) {
	if limit <= 0 {
		limit = 200
	}
	employees := make([]models.Employee, 0, limit)
	err := s.db.listPrefix(tenantPrefix(kindEmployee, companyID), false, func(raw []byte) (bool, error) {
		var emp models.Employee
		if err := json.Unmarshal(raw, &emp); err != nil {
			return false, err
		}
		employees = append(employees, emp)
		return len(employees) < limit, nil
	})
	metrics.RecordStoreOperation(kindEmployee, "list", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
