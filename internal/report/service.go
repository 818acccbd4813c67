package report

import (
	"log/slog"
	"sort"
	"time"

	errors "github.com/frahmantamala/time-tracking/internal"
	"github.com/frahmantamala/time-tracking/internal/timerecord"
	"github.com/frahmantamala/time-tracking/pkg/clock"
)

type RepositoryAPI interface {
	// ClosedRecords returns completed records whose check-in falls in
	// [start, end], joined with employee and department.
	ClosedRecords(start, end time.Time, departmentID *int64) ([]RecordRow, error)
	// RecordsInWindow returns all records in the window, open ones included.
	RecordsInWindow(start, end time.Time, employeeID, departmentID *int64) ([]RecordRow, error)
}

type Service struct {
	repo   RepositoryAPI
	clock  clock.Clock
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

const isoLayout = "2006-01-02T15:04:05"

// Summary aggregates closed records over the period, grouped by employee,
// department or calendar date. Open records never count toward totals.
func (s *Service) Summary(start, end time.Time, departmentID *int64, groupBy string) (*SummaryResponse, error) {
	if groupBy == "" {
		groupBy = GroupByEmployee
	}
	switch groupBy {
	case GroupByEmployee, GroupByDepartment, GroupByDate:
	default:
		return nil, errors.NewValidationError(
			"group_by must be one of: employee, department, date",
			errors.ErrCodeInvalidGroupBy)
	}
	if end.Before(start) {
		return nil, errors.NewValidationError(
			"end_date must not be before start_date",
			errors.ErrCodeInvalidDateRange)
	}

	rows, err := s.repo.ClosedRecords(start, end, departmentID)
	if err != nil {
		s.logger.Error("failed to load records for summary", "error", err)
		return nil, err
	}

	var data []SummaryRow
	switch groupBy {
	case GroupByEmployee:
		data = aggregateByEmployee(rows)
	case GroupByDepartment:
		data = aggregateByDepartment(rows)
	case GroupByDate:
		data = aggregateByDate(rows)
	}

	return &SummaryResponse{
		Period: Period{
			StartDate: start.Format(isoLayout),
			EndDate:   end.Format(isoLayout),
		},
		GroupBy: groupBy,
		Data:    data,
	}, nil
}

// Daily lists every record of one calendar day, open records included,
// ordered by check-in. An empty date means today in office time.
func (s *Service) Daily(date string, employeeID, departmentID *int64) (*DailyResponse, error) {
	day := s.clock.Now()
	if date != "" {
		parsed, err := errors.ParseDate(date)
		if err != nil {
			return nil, errors.NewValidationError("Invalid date format. Use YYYY-MM-DD", errors.ErrCodeInvalidDate)
		}
		day = parsed
	}

	start, end := errors.DayBounds(day)
	rows, err := s.repo.RecordsInWindow(start, end, employeeID, departmentID)
	if err != nil {
		s.logger.Error("failed to load daily records", "error", err)
		return nil, err
	}

	records := make([]*timerecord.TimeRecord, len(rows))
	for i, row := range rows {
		records[i] = &timerecord.TimeRecord{
			ID:            row.RecordID,
			EmployeeID:    row.EmployeeID,
			EmployeeName:  row.EmployeeName(),
			CheckIn:       row.CheckIn,
			CheckOut:      row.CheckOut,
			DurationHours: timerecord.DurationHours(row.CheckIn, row.CheckOut),
			Description:   row.Description,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		}
	}

	return &DailyResponse{
		Date:    errors.FormatDate(day),
		Records: records,
	}, nil
}

func aggregateByEmployee(rows []RecordRow) []SummaryRow {
	buckets := make(map[int64]*SummaryRow)
	hours := make(map[int64]float64)
	for _, row := range rows {
		row := row
		b, ok := buckets[row.EmployeeID]
		if !ok {
			name := row.EmployeeName()
			b = &SummaryRow{
				EmployeeID:     &row.EmployeeID,
				EmployeeName:   &name,
				DepartmentID:   row.DepartmentID,
				DepartmentName: row.DepartmentName,
			}
			buckets[row.EmployeeID] = b
		}
		hours[row.EmployeeID] += row.Hours()
		b.RecordCount++
	}

	data := make([]SummaryRow, 0, len(buckets))
	for id, b := range buckets {
		b.TotalHours = timerecord.RoundHours(hours[id])
		data = append(data, *b)
	}
	sort.Slice(data, func(i, j int) bool {
		return *data[i].EmployeeID < *data[j].EmployeeID
	})
	return data
}

func aggregateByDepartment(rows []RecordRow) []SummaryRow {
	type deptKey struct {
		known bool
		id    int64
	}
	keyOf := func(id *int64) deptKey {
		if id == nil {
			return deptKey{}
		}
		return deptKey{known: true, id: *id}
	}

	buckets := make(map[deptKey]*SummaryRow)
	hours := make(map[deptKey]float64)
	for _, row := range rows {
		key := keyOf(row.DepartmentID)
		b, ok := buckets[key]
		if !ok {
			b = &SummaryRow{
				DepartmentID:   row.DepartmentID,
				DepartmentName: row.DepartmentName,
			}
			buckets[key] = b
		}
		hours[key] += row.Hours()
		b.RecordCount++
	}

	data := make([]SummaryRow, 0, len(buckets))
	for key, b := range buckets {
		b.TotalHours = timerecord.RoundHours(hours[key])
		data = append(data, *b)
	}
	// known departments by id, the no-department bucket last
	sort.Slice(data, func(i, j int) bool {
		di, dj := data[i].DepartmentID, data[j].DepartmentID
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di < *dj
		}
	})
	return data
}

func aggregateByDate(rows []RecordRow) []SummaryRow {
	type dateKey struct {
		date       string
		employeeID int64
	}

	buckets := make(map[dateKey]*SummaryRow)
	hours := make(map[dateKey]float64)
	for _, row := range rows {
		row := row
		key := dateKey{date: errors.FormatDate(row.CheckIn), employeeID: row.EmployeeID}
		b, ok := buckets[key]
		if !ok {
			name := row.EmployeeName()
			date := key.date
			b = &SummaryRow{
				EmployeeID:     &row.EmployeeID,
				EmployeeName:   &name,
				DepartmentID:   row.DepartmentID,
				DepartmentName: row.DepartmentName,
				Date:           &date,
			}
			buckets[key] = b
		}
		hours[key] += row.Hours()
		b.RecordCount++
	}

	data := make([]SummaryRow, 0, len(buckets))
	for key, b := range buckets {
		b.TotalHours = timerecord.RoundHours(hours[key])
		data = append(data, *b)
	}
	sort.Slice(data, func(i, j int) bool {
		if *data[i].Date != *data[j].Date {
			return *data[i].Date < *data[j].Date
		}
		return *data[i].EmployeeID < *data[j].EmployeeID
	})
	return data
}
