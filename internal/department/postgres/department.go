package postgres

import (
	departmentDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/department"
	"github.com/frahmantamala/time-tracking/internal/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.db.Order("id ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByID(id int64) (*departmentDatamodel.Department, error) {
	var dept departmentDatamodel.Department
	err := r.db.Where("id = ?", id).First(&dept).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) Create(dept *departmentDatamodel.Department) error {
	return r.db.Create(dept).Error
}

func (r *DepartmentRepository) Update(dept *departmentDatamodel.Department) error {
	return r.db.Save(dept).Error
}

// Delete removes the row outright. Employees keep their department_id as a
// weak reference; nothing cascades.
func (r *DepartmentRepository) Delete(id int64) error {
	return r.db.Delete(&departmentDatamodel.Department{}, id).Error
}
