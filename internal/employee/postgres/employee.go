package postgres

import (
	"strings"

	employeeDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/employee"
	timerecordDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/timerecord"
	"github.com/frahmantamala/time-tracking/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(filter employee.ListFilter) ([]*employeeDatamodel.Employee, int64, error) {
	query := r.db.Model(&employeeDatamodel.Employee{})

	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(position) LIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*employeeDatamodel.Employee
	err := query.
		Order("last_name ASC, first_name ASC").
		Limit(filter.Page.PerPage).
		Offset(filter.Page.Offset()).
		Find(&employees).Error
	return employees, total, err
}

func (r *EmployeeRepository) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByIDs(ids []int64) ([]*employeeDatamodel.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var employees []*employeeDatamodel.Employee
	err := r.db.Where("id IN ?", ids).Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByEmail(email string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("email = ?", email).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) Create(emp *employeeDatamodel.Employee) error {
	return r.db.Create(emp).Error
}

func (r *EmployeeRepository) Update(emp *employeeDatamodel.Employee) error {
	return r.db.Save(emp).Error
}

func (r *EmployeeRepository) Deactivate(id int64) error {
	return r.db.Model(&employeeDatamodel.Employee{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *EmployeeRepository) WithOpenRecords() ([]*employeeDatamodel.Employee, error) {
	openEmployees := r.db.Model(&timerecordDatamodel.TimeRecord{}).
		Select("DISTINCT employee_id").
		Where("check_out IS NULL")

	var employees []*employeeDatamodel.Employee
	err := r.db.
		Where("id IN (?)", openEmployees).
		Order("last_name ASC, first_name ASC").
		Find(&employees).Error
	return employees, err
}
