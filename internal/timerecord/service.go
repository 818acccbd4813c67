package timerecord

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/time-tracking/internal"
	"github.com/frahmantamala/time-tracking/internal/core/common/pagination"
	employeeDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/employee"
	timerecordDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/timerecord"
	"github.com/frahmantamala/time-tracking/pkg/clock"
)

type RepositoryAPI interface {
	List(filter ListFilter) ([]*timerecordDatamodel.TimeRecord, int64, error)
	GetByID(id int64) (*timerecordDatamodel.TimeRecord, error)
	GetOpenByEmployee(employeeID int64) (*timerecordDatamodel.TimeRecord, error)
	Create(record *timerecordDatamodel.TimeRecord) error
	Update(record *timerecordDatamodel.TimeRecord) error
}

// EmployeeLookupAPI resolves employees for existence checks and display names.
type EmployeeLookupAPI interface {
	GetByID(id int64) (*employeeDatamodel.Employee, error)
	GetByIDs(ids []int64) ([]*employeeDatamodel.Employee, error)
}

type Service struct {
	repo      RepositoryAPI
	employees EmployeeLookupAPI
	clock     clock.Clock
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeLookupAPI, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		clock:     clk,
		logger:    logger,
	}
}

func employeeName(e *employeeDatamodel.Employee) string {
	if e == nil {
		return ""
	}
	return e.FirstName + " " + e.LastName
}

// toResponses resolves employee names in one lookup for a page of records.
func (s *Service) toResponses(records []*timerecordDatamodel.TimeRecord) ([]*TimeRecord, error) {
	idSet := make(map[int64]struct{}, len(records))
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		if _, ok := idSet[r.EmployeeID]; !ok {
			idSet[r.EmployeeID] = struct{}{}
			ids = append(ids, r.EmployeeID)
		}
	}

	names := make(map[int64]string, len(ids))
	if len(ids) > 0 {
		employees, err := s.employees.GetByIDs(ids)
		if err != nil {
			return nil, err
		}
		for _, e := range employees {
			names[e.ID] = employeeName(e)
		}
	}

	result := make([]*TimeRecord, len(records))
	for i, r := range records {
		result[i] = FromDataModel(r, names[r.EmployeeID])
	}
	return result, nil
}

func (s *Service) toResponse(record *timerecordDatamodel.TimeRecord) (*TimeRecord, error) {
	emp, err := s.employees.GetByID(record.EmployeeID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(record, employeeName(emp)), nil
}

func (s *Service) ListRecords(filter ListFilter) ([]*TimeRecord, int64, error) {
	records, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list time records", "error", err)
		return nil, 0, err
	}

	responses, err := s.toResponses(records)
	if err != nil {
		s.logger.Error("failed to resolve employee names", "error", err)
		return nil, 0, err
	}

	return responses, total, nil
}

// ListForEmployee backs GET /employees/{id}/time-records. Date bounds come
// in raw so malformed input surfaces as a validation error here.
func (s *Service) ListForEmployee(employeeID int64, startDate, endDate string, page pagination.Params) (pagination.Envelope, error) {
	filter := ListFilter{EmployeeID: &employeeID, Page: page}

	if startDate != "" {
		start, err := errors.ParseTimestamp(startDate)
		if err != nil {
			return pagination.Envelope{}, errors.NewValidationError("Invalid start_date format", errors.ErrCodeInvalidDate)
		}
		filter.StartDate = &start
	}
	if endDate != "" {
		end, err := errors.ParseEndTimestamp(endDate)
		if err != nil {
			return pagination.Envelope{}, errors.NewValidationError("Invalid end_date format", errors.ErrCodeInvalidDate)
		}
		filter.EndDate = &end
	}

	records, total, err := s.ListRecords(filter)
	if err != nil {
		return pagination.Envelope{}, err
	}
	if records == nil {
		records = []*TimeRecord{}
	}

	return pagination.NewEnvelope(records, total, page), nil
}

func (s *Service) GetRecordByID(id int64) (*TimeRecord, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get time record", "error", err, "record_id", id)
		return nil, err
	}
	if record == nil {
		return nil, errors.ErrRecordNotFound
	}

	return s.toResponse(record)
}

// CreateRecord registers a check-in, either at an explicit time or office-now.
// The one-open-record invariant is enforced here: a second check-in before
// checking out conflicts, and the open record rides along in the error payload.
func (s *Service) CreateRecord(dto CreateTimeRecordDTO) (*TimeRecord, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("time record validation failed", "error", err)
		return nil, err
	}

	emp, err := s.employees.GetByID(dto.EmployeeID)
	if err != nil {
		s.logger.Error("failed to look up employee", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}
	if emp == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	if err := s.ensureNoOpenRecord(dto.EmployeeID); err != nil {
		return nil, err
	}

	checkIn := s.clock.Now()
	if dto.CheckIn != "" {
		parsed, err := errors.ParseTimestamp(dto.CheckIn)
		if err != nil {
			return nil, errors.NewValidationError("Invalid check_in format", errors.ErrCodeInvalidDate)
		}
		checkIn = parsed
	}

	record := &timerecordDatamodel.TimeRecord{
		EmployeeID:  dto.EmployeeID,
		CheckIn:     checkIn,
		Description: dto.Description,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create time record", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	s.logger.Info("time record created",
		"record_id", record.ID,
		"employee_id", record.EmployeeID,
		"check_in", record.CheckIn)

	return FromDataModel(record, employeeName(emp)), nil
}

func (s *Service) ensureNoOpenRecord(employeeID int64) error {
	open, err := s.repo.GetOpenByEmployee(employeeID)
	if err != nil {
		s.logger.Error("failed to check open record", "error", err, "employee_id", employeeID)
		return err
	}
	if open != nil {
		openResp, err := s.toResponse(open)
		if err != nil {
			return err
		}
		s.logger.Warn("employee already has an open time record",
			"employee_id", employeeID,
			"record_id", open.ID)
		return errors.NewConflictError("Employee already has an open time record", errors.ErrCodeAlreadyCheckedIn).
			WithDetails(map[string]interface{}{"record": openResp})
	}
	return nil
}

// UpdateRecord applies partial updates. Setting check_out closes the record;
// the ordering check runs before anything is written.
func (s *Service) UpdateRecord(id int64, dto UpdateTimeRecordDTO) (*TimeRecord, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get time record", "error", err, "record_id", id)
		return nil, err
	}
	if record == nil {
		return nil, errors.ErrRecordNotFound
	}

	if dto.CheckOut != nil && *dto.CheckOut != "" {
		checkOut, err := s.resolveCheckOut(*dto.CheckOut)
		if err != nil {
			return nil, err
		}
		if checkOut.Before(record.CheckIn) {
			return nil, errors.ErrCheckOutBeforeIn
		}
		record.CheckOut = &checkOut
	}

	if dto.Description != nil {
		record.Description = *dto.Description
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update time record", "error", err, "record_id", id)
		return nil, err
	}

	return s.toResponse(record)
}

func (s *Service) resolveCheckOut(raw string) (time.Time, *errors.AppError) {
	if raw == CheckOutNow {
		return s.clock.Now(), nil
	}
	parsed, err := errors.ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, errors.NewValidationError("Invalid check_out format", errors.ErrCodeInvalidDate)
	}
	return parsed, nil
}

// CheckIn registers arrival at the current office time.
func (s *Service) CheckIn(dto CheckInDTO) (*TimeRecord, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	return s.CreateRecord(CreateTimeRecordDTO{
		EmployeeID:  dto.EmployeeID,
		Description: dto.Description,
	})
}

// CheckOut closes the employee's open record. Explicit timestamps and the
// "now" literal are both accepted; check_out may never precede check_in.
func (s *Service) CheckOut(dto CheckOutDTO) (*TimeRecord, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetOpenByEmployee(dto.EmployeeID)
	if err != nil {
		s.logger.Error("failed to find open record", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}
	if record == nil {
		return nil, errors.ErrNoOpenRecord
	}

	checkOut := s.clock.Now()
	if dto.CheckOut != nil && *dto.CheckOut != "" {
		resolved, appErr := s.resolveCheckOut(*dto.CheckOut)
		if appErr != nil {
			return nil, appErr
		}
		checkOut = resolved
	}

	if checkOut.Before(record.CheckIn) {
		return nil, errors.ErrCheckOutBeforeIn
	}

	record.CheckOut = &checkOut
	if dto.Description != nil {
		record.Description = *dto.Description
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to close time record", "error", err, "record_id", record.ID)
		return nil, err
	}

	s.logger.Info("time record closed",
		"record_id", record.ID,
		"employee_id", record.EmployeeID,
		"check_out", checkOut)

	return s.toResponse(record)
}
