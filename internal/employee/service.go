package employee

import (
	"log/slog"

	errors "github.com/frahmantamala/time-tracking/internal"
	departmentDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	List(filter ListFilter) ([]*employeeDatamodel.Employee, int64, error)
	GetByID(id int64) (*employeeDatamodel.Employee, error)
	GetByIDs(ids []int64) ([]*employeeDatamodel.Employee, error)
	GetByEmail(email string) (*employeeDatamodel.Employee, error)
	Create(employee *employeeDatamodel.Employee) error
	Update(employee *employeeDatamodel.Employee) error
	Deactivate(id int64) error
	WithOpenRecords() ([]*employeeDatamodel.Employee, error)
}

// DepartmentLookupAPI resolves department references without pulling in the
// department service.
type DepartmentLookupAPI interface {
	GetAll() ([]*departmentDatamodel.Department, error)
	GetByID(id int64) (*departmentDatamodel.Department, error)
}

type Service struct {
	repo        RepositoryAPI
	departments DepartmentLookupAPI
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, departments DepartmentLookupAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		logger:      logger,
	}
}

// departmentNames loads the id -> name map once per request; listings would
// otherwise resolve names row by row.
func (s *Service) departmentNames() (map[int64]string, error) {
	departments, err := s.departments.GetAll()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	return names, nil
}

func (s *Service) resolveDepartment(e *Employee, names map[int64]string) {
	if e.DepartmentID == nil {
		return
	}
	if name, ok := names[*e.DepartmentID]; ok {
		e.DepartmentName = &name
	}
}

func (s *Service) ListEmployees(filter ListFilter) ([]*Employee, int64, error) {
	dataEmployees, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, 0, err
	}

	names, err := s.departmentNames()
	if err != nil {
		s.logger.Error("failed to load departments", "error", err)
		return nil, 0, err
	}

	employees := FromDataModelSlice(dataEmployees)
	for _, e := range employees {
		s.resolveDepartment(e, names)
	}

	return employees, total, nil
}

func (s *Service) GetEmployeeByID(id int64) (*Employee, error) {
	dataEmployee, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, err
	}
	if dataEmployee == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	e := FromDataModel(dataEmployee)
	if e.DepartmentID != nil {
		dept, err := s.departments.GetByID(*e.DepartmentID)
		if err != nil {
			s.logger.Error("failed to resolve department", "error", err, "employee_id", id)
			return nil, err
		}
		if dept != nil {
			e.DepartmentName = &dept.Name
		}
	}

	return e, nil
}

func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err)
		return nil, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", "error", err, "email", dto.Email)
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailExists
	}

	if dto.DepartmentID != nil {
		dept, err := s.departments.GetByID(*dto.DepartmentID)
		if err != nil {
			s.logger.Error("failed to check department", "error", err, "department_id", *dto.DepartmentID)
			return nil, err
		}
		if dept == nil {
			return nil, errors.NewValidationError("Department not found", errors.ErrCodeDepartmentNotFound)
		}
	}

	isActive := true
	if dto.IsActive != nil {
		isActive = *dto.IsActive
	}

	dataEmployee := &employeeDatamodel.Employee{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		Position:     dto.Position,
		DepartmentID: dto.DepartmentID,
		IsActive:     isActive,
	}

	if err := s.repo.Create(dataEmployee); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", dataEmployee.ID, "email", dataEmployee.Email)
	return s.GetEmployeeByID(dataEmployee.ID)
}

func (s *Service) UpdateEmployee(id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	dataEmployee, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, err
	}
	if dataEmployee == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	if dto.Email != nil && *dto.Email != dataEmployee.Email {
		existing, err := s.repo.GetByEmail(*dto.Email)
		if err != nil {
			s.logger.Error("failed to check email uniqueness", "error", err, "email", *dto.Email)
			return nil, err
		}
		if existing != nil {
			return nil, errors.ErrEmailExists
		}
		dataEmployee.Email = *dto.Email
	}

	if dto.DepartmentID.Set {
		if dto.DepartmentID.Value == nil {
			dataEmployee.DepartmentID = nil
		} else {
			dept, err := s.departments.GetByID(*dto.DepartmentID.Value)
			if err != nil {
				s.logger.Error("failed to check department", "error", err, "department_id", *dto.DepartmentID.Value)
				return nil, err
			}
			if dept == nil {
				return nil, errors.NewValidationError("Department not found", errors.ErrCodeDepartmentNotFound)
			}
			dataEmployee.DepartmentID = dto.DepartmentID.Value
		}
	}

	if dto.FirstName != nil {
		dataEmployee.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		dataEmployee.LastName = *dto.LastName
	}
	if dto.Position != nil {
		dataEmployee.Position = *dto.Position
	}
	if dto.IsActive != nil {
		dataEmployee.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(dataEmployee); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}

	s.logger.Info("employee updated", "employee_id", id)
	return s.GetEmployeeByID(id)
}

// DeactivateEmployee soft-deletes: the row stays, is_active flips to false,
// and every historical time record remains reachable.
func (s *Service) DeactivateEmployee(id int64) error {
	dataEmployee, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return err
	}
	if dataEmployee == nil {
		return errors.ErrEmployeeNotFound
	}

	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate employee", "error", err, "employee_id", id)
		return err
	}

	s.logger.Info("employee deactivated", "employee_id", id)
	return nil
}

func (s *Service) GetEmployeesWithOpenRecords() ([]*Employee, error) {
	dataEmployees, err := s.repo.WithOpenRecords()
	if err != nil {
		s.logger.Error("failed to list employees with open records", "error", err)
		return nil, err
	}

	names, err := s.departmentNames()
	if err != nil {
		s.logger.Error("failed to load departments", "error", err)
		return nil, err
	}

	employees := FromDataModelSlice(dataEmployees)
	for _, e := range employees {
		s.resolveDepartment(e, names)
	}

	return employees, nil
}
