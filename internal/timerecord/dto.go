package timerecord

import (
	"time"

	errors "github.com/frahmantamala/time-tracking/internal"
	"github.com/frahmantamala/time-tracking/internal/core/common/pagination"
)

// CheckOutNow is the literal callers send to close a record at the current
// office time instead of an explicit timestamp.
const CheckOutNow = "now"

type CreateTimeRecordDTO struct {
	EmployeeID  int64  `json:"employee_id"`
	CheckIn     string `json:"check_in"`
	Description string `json:"description"`
}

func (dto CreateTimeRecordDTO) Validate() *errors.AppError {
	if dto.EmployeeID == 0 {
		return errors.NewValidationError("Employee ID is required", errors.ErrCodeMissingField)
	}
	return nil
}

type UpdateTimeRecordDTO struct {
	CheckOut    *string `json:"check_out"`
	Description *string `json:"description"`
}

type CheckInDTO struct {
	EmployeeID  int64  `json:"employee_id"`
	Description string `json:"description"`
}

func (dto CheckInDTO) Validate() *errors.AppError {
	if dto.EmployeeID == 0 {
		return errors.NewValidationError("Employee ID is required", errors.ErrCodeMissingField)
	}
	return nil
}

type CheckOutDTO struct {
	EmployeeID  int64   `json:"employee_id"`
	CheckOut    *string `json:"check_out"`
	Description *string `json:"description"`
}

func (dto CheckOutDTO) Validate() *errors.AppError {
	if dto.EmployeeID == 0 {
		return errors.NewValidationError("Employee ID is required", errors.ErrCodeMissingField)
	}
	return nil
}

// ListFilter narrows the record listing; date bounds are inclusive and
// apply to check_in.
type ListFilter struct {
	EmployeeID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	Page       pagination.Params
}
