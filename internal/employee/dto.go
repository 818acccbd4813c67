package employee

import (
	"encoding/json"
	"fmt"

	errors "github.com/frahmantamala/time-tracking/internal"
	"github.com/frahmantamala/time-tracking/internal/core/common/pagination"
)

type CreateEmployeeDTO struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Position     string `json:"position"`
	DepartmentID *int64 `json:"department_id"`
	IsActive     *bool  `json:"is_active"`
}

func (dto CreateEmployeeDTO) Validate() *errors.AppError {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", dto.FirstName},
		{"last_name", dto.LastName},
		{"email", dto.Email},
		{"position", dto.Position},
	}
	for _, field := range required {
		if field.value == "" {
			return errors.NewValidationError(
				fmt.Sprintf("Field %s is required", field.name),
				errors.ErrCodeMissingField,
			)
		}
	}
	return nil
}

// NullableID tells an absent field apart from an explicit null. An update
// with "department_id": null detaches the employee from its department,
// while leaving the field out keeps the current assignment.
type NullableID struct {
	Set   bool
	Value *int64
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

type UpdateEmployeeDTO struct {
	FirstName    *string    `json:"first_name"`
	LastName     *string    `json:"last_name"`
	Email        *string    `json:"email"`
	Position     *string    `json:"position"`
	DepartmentID NullableID `json:"department_id"`
	IsActive     *bool      `json:"is_active"`
}

func (dto UpdateEmployeeDTO) Validate() *errors.AppError {
	optional := map[string]*string{
		"first_name": dto.FirstName,
		"last_name":  dto.LastName,
		"email":      dto.Email,
		"position":   dto.Position,
	}
	for name, value := range optional {
		if value != nil && *value == "" {
			return errors.NewValidationError(
				fmt.Sprintf("Field %s cannot be empty", name),
				errors.ErrCodeValidationFailed,
			)
		}
	}
	return nil
}

// ListFilter narrows the employee listing.
type ListFilter struct {
	DepartmentID *int64
	IsActive     *bool
	Search       string
	Page         pagination.Params
}

type EmployeeListResponse struct {
	Items []*Employee `json:"items"`
	Total int         `json:"total"`
}

type EmployeeTimeRecordsResponse struct {
	Employee    *Employee           `json:"employee"`
	TimeRecords pagination.Envelope `json:"time_records"`
}

type DeactivateResponse struct {
	Message string `json:"message"`
}
