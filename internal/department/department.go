package department

import (
	"time"

	departmentDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/department"
)

type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDepartment(name string) *Department {
	now := time.Now()
	return &Department{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *Department) Rename(name string) {
	d.Name = name
	d.UpdatedAt = time.Now()
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDataModelSlice(departments []*departmentDatamodel.Department) []*Department {
	result := make([]*Department, len(departments))
	for i, d := range departments {
		result[i] = FromDataModel(d)
	}
	return result
}
