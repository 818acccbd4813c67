package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	errors "github.com/frahmantamala/time-tracking/internal"
	"github.com/frahmantamala/time-tracking/internal/timerecord"
)

// ExportCSV renders the period's closed records as a CSV blob. The summary
// type aggregates per employee, detailed lists each record in check-in order.
func (s *Service) ExportCSV(reportType string, start, end time.Time, departmentID *int64) (*CSVResponse, error) {
	if reportType == "" {
		reportType = TypeSummary
	}
	switch reportType {
	case TypeSummary, TypeDetailed:
	default:
		return nil, errors.NewValidationError(
			"report type must be one of: summary, detailed",
			errors.ErrCodeInvalidReportType)
	}
	if end.Before(start) {
		return nil, errors.NewValidationError(
			"end_date must not be before start_date",
			errors.ErrCodeInvalidDateRange)
	}

	rows, err := s.repo.ClosedRecords(start, end, departmentID)
	if err != nil {
		s.logger.Error("failed to load records for export", "error", err)
		return nil, err
	}

	var data string
	if reportType == TypeSummary {
		data, err = summaryCSV(rows)
	} else {
		data, err = detailedCSV(rows)
	}
	if err != nil {
		s.logger.Error("failed to render csv", "error", err)
		return nil, errors.NewInternalError("failed to render csv", err)
	}

	filename := fmt.Sprintf("time_tracking_%s_%s-%s.csv",
		reportType, start.Format("20060102"), end.Format("20060102"))

	return &CSVResponse{CSVData: data, Filename: filename}, nil
}

func summaryCSV(rows []RecordRow) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Employee ID", "First Name", "Last Name", "Department", "Total Hours", "Record Count"}); err != nil {
		return "", err
	}

	type nameParts struct {
		first, last string
	}
	names := make(map[int64]nameParts, len(rows))
	for _, row := range rows {
		names[row.EmployeeID] = nameParts{first: row.FirstName, last: row.LastName}
	}

	for _, row := range aggregateByEmployee(rows) {
		dept := DepartmentPlaceholder
		if row.DepartmentName != nil {
			dept = *row.DepartmentName
		}
		name := names[*row.EmployeeID]
		record := []string{
			strconv.FormatInt(*row.EmployeeID, 10),
			name.first,
			name.last,
			dept,
			formatHours(row.TotalHours),
			strconv.Itoa(row.RecordCount),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

func detailedCSV(rows []RecordRow) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Record ID", "Employee", "Department", "Check In", "Check Out", "Hours", "Description"}); err != nil {
		return "", err
	}

	for _, row := range rows {
		dept := DepartmentPlaceholder
		if row.DepartmentName != nil {
			dept = *row.DepartmentName
		}
		checkOut := ""
		if row.CheckOut != nil {
			checkOut = errors.FormatTimestamp(*row.CheckOut)
		}
		record := []string{
			strconv.FormatInt(row.RecordID, 10),
			row.EmployeeName(),
			dept,
			errors.FormatTimestamp(row.CheckIn),
			checkOut,
			formatHours(timerecord.RoundHours(row.Hours())),
			row.Description,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
