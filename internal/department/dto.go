package department

import (
	errors "github.com/frahmantamala/time-tracking/internal"
)

type CreateDepartmentDTO struct {
	Name string `json:"name"`
}

func (dto CreateDepartmentDTO) Validate() *errors.AppError {
	if dto.Name == "" {
		return errors.NewValidationError("name is required", errors.ErrCodeMissingField)
	}
	if len(dto.Name) > 100 {
		return errors.NewValidationError("name must not exceed 100 characters", errors.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateDepartmentDTO struct {
	Name *string `json:"name"`
}

func (dto UpdateDepartmentDTO) Validate() *errors.AppError {
	if dto.Name != nil && *dto.Name == "" {
		return errors.NewValidationError("name cannot be empty", errors.ErrCodeValidationFailed)
	}
	if dto.Name != nil && len(*dto.Name) > 100 {
		return errors.NewValidationError("name must not exceed 100 characters", errors.ErrCodeValidationFailed)
	}
	return nil
}

type DepartmentListResponse struct {
	Items []*Department `json:"items"`
	Total int           `json:"total"`
}
