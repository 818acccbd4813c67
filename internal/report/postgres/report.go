package postgres

import (
	"time"

	timerecordDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/timerecord"
	"github.com/frahmantamala/time-tracking/internal/report"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.RepositoryAPI {
	return &ReportRepository{db: db}
}

const joinedColumns = "time_records.id AS record_id, time_records.employee_id, " +
	"employees.first_name, employees.last_name, " +
	"employees.department_id, departments.name AS department_name, " +
	"time_records.check_in, time_records.check_out, time_records.description, " +
	"time_records.created_at, time_records.updated_at"

func (r *ReportRepository) joined() *gorm.DB {
	return r.db.Model(&timerecordDatamodel.TimeRecord{}).
		Select(joinedColumns).
		Joins("JOIN employees ON employees.id = time_records.employee_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id")
}

func (r *ReportRepository) ClosedRecords(start, end time.Time, departmentID *int64) ([]report.RecordRow, error) {
	query := r.joined().
		Where("time_records.check_in BETWEEN ? AND ?", start, end).
		Where("time_records.check_out IS NOT NULL")

	if departmentID != nil {
		query = query.Where("employees.department_id = ?", *departmentID)
	}

	var rows []report.RecordRow
	err := query.Order("time_records.check_in ASC").Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) RecordsInWindow(start, end time.Time, employeeID, departmentID *int64) ([]report.RecordRow, error) {
	query := r.joined().
		Where("time_records.check_in BETWEEN ? AND ?", start, end)

	if employeeID != nil {
		query = query.Where("time_records.employee_id = ?", *employeeID)
	}
	if departmentID != nil {
		query = query.Where("employees.department_id = ?", *departmentID)
	}

	var rows []report.RecordRow
	err := query.Order("time_records.check_in ASC").Scan(&rows).Error
	return rows, err
}
