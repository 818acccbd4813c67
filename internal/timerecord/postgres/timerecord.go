package postgres

import (
	timerecordDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/timerecord"
	"github.com/frahmantamala/time-tracking/internal/timerecord"
	"gorm.io/gorm"
)

type TimeRecordRepository struct {
	db *gorm.DB
}

func NewTimeRecordRepository(db *gorm.DB) timerecord.RepositoryAPI {
	return &TimeRecordRepository{db: db}
}

func (r *TimeRecordRepository) List(filter timerecord.ListFilter) ([]*timerecordDatamodel.TimeRecord, int64, error) {
	query := r.db.Model(&timerecordDatamodel.TimeRecord{})

	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.StartDate != nil {
		query = query.Where("check_in >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("check_in <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*timerecordDatamodel.TimeRecord
	err := query.
		Order("check_in DESC").
		Limit(filter.Page.PerPage).
		Offset(filter.Page.Offset()).
		Find(&records).Error
	return records, total, err
}

func (r *TimeRecordRepository) GetByID(id int64) (*timerecordDatamodel.TimeRecord, error) {
	var record timerecordDatamodel.TimeRecord
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetOpenByEmployee finds the employee's record with no check-out. The
// application keeps at most one of these per employee.
func (r *TimeRecordRepository) GetOpenByEmployee(employeeID int64) (*timerecordDatamodel.TimeRecord, error) {
	var record timerecordDatamodel.TimeRecord
	err := r.db.
		Where("employee_id = ? AND check_out IS NULL", employeeID).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *TimeRecordRepository) Create(record *timerecordDatamodel.TimeRecord) error {
	return r.db.Create(record).Error
}

func (r *TimeRecordRepository) Update(record *timerecordDatamodel.TimeRecord) error {
	return r.db.Save(record).Error
}
