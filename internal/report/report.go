package report

import "time"

// Grouping modes for the summary report.
const (
	GroupByEmployee   = "employee"
	GroupByDepartment = "department"
	GroupByDate       = "date"
)

// Report types for CSV export.
const (
	TypeSummary  = "summary"
	TypeDetailed = "detailed"
)

// DepartmentPlaceholder renders in exports for employees without a department.
const DepartmentPlaceholder = "Not specified"

// RecordRow is one time record joined with its employee and (optional)
// department, the unit the aggregation works over.
type RecordRow struct {
	RecordID       int64      `gorm:"column:record_id"`
	EmployeeID     int64      `gorm:"column:employee_id"`
	FirstName      string     `gorm:"column:first_name"`
	LastName       string     `gorm:"column:last_name"`
	DepartmentID   *int64     `gorm:"column:department_id"`
	DepartmentName *string    `gorm:"column:department_name"`
	CheckIn        time.Time  `gorm:"column:check_in"`
	CheckOut       *time.Time `gorm:"column:check_out"`
	Description    string     `gorm:"column:description"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (r RecordRow) EmployeeName() string {
	return r.FirstName + " " + r.LastName
}

// Hours is the raw (unrounded) duration of a closed row in hours, 0 when open.
func (r RecordRow) Hours() float64 {
	if r.CheckOut == nil {
		return 0
	}
	return r.CheckOut.Sub(r.CheckIn).Seconds() / 3600
}

// SummaryRow is one aggregated bucket. Employee fields are set for the
// employee and date groupings; Date only for the date grouping.
type SummaryRow struct {
	EmployeeID     *int64  `json:"employee_id,omitempty"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	DepartmentID   *int64  `json:"department_id"`
	DepartmentName *string `json:"department_name"`
	Date           *string `json:"date,omitempty"`
	TotalHours     float64 `json:"total_hours"`
	RecordCount    int     `json:"record_count"`
}
