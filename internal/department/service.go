package department

import (
	"log/slog"

	errors "github.com/frahmantamala/time-tracking/internal"
	departmentDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll() ([]*departmentDatamodel.Department, error)
	GetByID(id int64) (*departmentDatamodel.Department, error)
	Create(department *departmentDatamodel.Department) error
	Update(department *departmentDatamodel.Department) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllDepartments() ([]*Department, error) {
	dataDepartments, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments from repository", "error", err)
		return nil, err
	}

	return FromDataModelSlice(dataDepartments), nil
}

func (s *Service) GetDepartmentByID(id int64) (*Department, error) {
	dataDepartment, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get department", "error", err, "department_id", id)
		return nil, err
	}
	if dataDepartment == nil {
		return nil, errors.ErrDepartmentNotFound
	}

	return FromDataModel(dataDepartment), nil
}

func (s *Service) CreateDepartment(dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("department validation failed", "error", err)
		return nil, err
	}

	dept := NewDepartment(dto.Name)
	dataDept := ToDataModel(dept)
	if err := s.repo.Create(dataDept); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("department created", "department_id", dataDept.ID, "name", dataDept.Name)
	return FromDataModel(dataDept), nil
}

func (s *Service) UpdateDepartment(id int64, dto UpdateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("department validation failed", "error", err, "department_id", id)
		return nil, err
	}

	dataDept, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get department", "error", err, "department_id", id)
		return nil, err
	}
	if dataDept == nil {
		return nil, errors.ErrDepartmentNotFound
	}

	dept := FromDataModel(dataDept)
	if dto.Name != nil {
		dept.Rename(*dto.Name)
	}

	if err := s.repo.Update(ToDataModel(dept)); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, err
	}

	return dept, nil
}

// DeduplicateByName removes departments whose name repeats an earlier row,
// keeping the first occurrence. Mirrors the operational cleanup for the
// missing uniqueness constraint; returns the number of rows deleted.
func (s *Service) DeduplicateByName() (int, error) {
	dataDepartments, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list departments for dedup", "error", err)
		return 0, err
	}

	seen := make(map[string]int64, len(dataDepartments))
	deleted := 0
	for _, dept := range dataDepartments {
		if keeperID, ok := seen[dept.Name]; ok {
			s.logger.Info("deleting duplicate department",
				"department_id", dept.ID,
				"name", dept.Name,
				"kept_id", keeperID)
			if err := s.repo.Delete(dept.ID); err != nil {
				s.logger.Error("failed to delete duplicate department", "error", err, "department_id", dept.ID)
				return deleted, err
			}
			deleted++
			continue
		}
		seen[dept.Name] = dept.ID
	}

	s.logger.Info("department dedup finished", "unique", len(seen), "deleted", deleted)
	return deleted, nil
}
