package timerecord

import (
	"math"
	"time"

	timerecordDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/timerecord"
)

type TimeRecord struct {
	ID            int64      `json:"id"`
	EmployeeID    int64      `json:"employee_id"`
	EmployeeName  string     `json:"employee_name"`
	CheckIn       time.Time  `json:"check_in"`
	CheckOut      *time.Time `json:"check_out"`
	DurationHours float64    `json:"duration_hours"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsOpen reports whether the employee is still checked in.
func (t *TimeRecord) IsOpen() bool {
	return t.CheckOut == nil
}

// RoundHours rounds to 2 decimals, half to even.
func RoundHours(hours float64) float64 {
	return math.RoundToEven(hours*100) / 100
}

// DurationHours is the elapsed time in hours for a closed interval,
// 0 while the record is open.
func DurationHours(checkIn time.Time, checkOut *time.Time) float64 {
	if checkOut == nil {
		return 0
	}
	return RoundHours(checkOut.Sub(checkIn).Seconds() / 3600)
}

func FromDataModel(r *timerecordDatamodel.TimeRecord, employeeName string) *TimeRecord {
	return &TimeRecord{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  employeeName,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		DurationHours: DurationHours(r.CheckIn, r.CheckOut),
		Description:   r.Description,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
