package employee_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	apperrors "github.com/frahmantamala/time-tracking/internal"
	departmentDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/employee"
	"github.com/frahmantamala/time-tracking/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

// MockRepository implements employee.RepositoryAPI for testing
type MockRepository struct {
	employees  []*employeeDatamodel.Employee
	openIDs    map[int64]bool
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{nextID: 1, openIDs: make(map[int64]bool)}
}

func (m *MockRepository) List(filter employee.ListFilter) ([]*employeeDatamodel.Employee, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var result []*employeeDatamodel.Employee
	for _, e := range m.employees {
		if filter.DepartmentID != nil && (e.DepartmentID == nil || *e.DepartmentID != *filter.DepartmentID) {
			continue
		}
		if filter.IsActive != nil && e.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" {
			term := strings.ToLower(filter.Search)
			haystack := strings.ToLower(e.FirstName + " " + e.LastName + " " + e.Email + " " + e.Position)
			if !strings.Contains(haystack, term) {
				continue
			}
		}
		result = append(result, e)
	}
	return result, int64(len(result)), nil
}

func (m *MockRepository) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, e := range m.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByIDs(ids []int64) ([]*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*employeeDatamodel.Employee
	for _, id := range ids {
		if e, _ := m.GetByID(id); e != nil {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByEmail(email string) (*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(e *employeeDatamodel.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	e.ID = m.nextID
	m.nextID++
	m.employees = append(m.employees, e)
	return nil
}

func (m *MockRepository) Update(e *employeeDatamodel.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	for i, existing := range m.employees {
		if existing.ID == e.ID {
			m.employees[i] = e
			return nil
		}
	}
	return nil
}

func (m *MockRepository) Deactivate(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	for _, e := range m.employees {
		if e.ID == id {
			e.IsActive = false
			return nil
		}
	}
	return nil
}

func (m *MockRepository) WithOpenRecords() ([]*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*employeeDatamodel.Employee
	for _, e := range m.employees {
		if m.openIDs[e.ID] {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

// MockDepartmentLookup implements employee.DepartmentLookupAPI for testing
type MockDepartmentLookup struct {
	departments []*departmentDatamodel.Department
}

func (m *MockDepartmentLookup) GetAll() ([]*departmentDatamodel.Department, error) {
	return m.departments, nil
}

func (m *MockDepartmentLookup) GetByID(id int64) (*departmentDatamodel.Department, error) {
	for _, d := range m.departments {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

var _ = Describe("Employee Service", func() {
	var (
		mockRepo  *MockRepository
		mockDepts *MockDepartmentLookup
		service   *employee.Service
		logger    *slog.Logger
	)

	engineeringID := int64(1)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockDepts = &MockDepartmentLookup{
			departments: []*departmentDatamodel.Department{
				{ID: engineeringID, Name: "Engineering"},
			},
		}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(mockRepo, mockDepts, logger)
	})

	Describe("CreateEmployee", func() {
		validDTO := employee.CreateEmployeeDTO{
			FirstName: "Ivan",
			LastName:  "Ivanov",
			Email:     "ivan@example.com",
			Position:  "Developer",
		}

		It("should create an employee and resolve the department name", func() {
			dto := validDTO
			dto.DepartmentID = &engineeringID

			result, err := service.CreateEmployee(dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.IsActive).To(BeTrue())
			Expect(result.DepartmentName).NotTo(BeNil())
			Expect(*result.DepartmentName).To(Equal("Engineering"))
		})

		Context("when a required field is missing", func() {
			It("should return validation error", func() {
				dto := validDTO
				dto.Email = ""

				result, err := service.CreateEmployee(dto)
				Expect(result).To(BeNil())

				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(apperrors.ErrCodeMissingField))
			})
		})

		Context("when the email is taken", func() {
			BeforeEach(func() {
				_, err := service.CreateEmployee(validDTO)
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return conflict error", func() {
				result, err := service.CreateEmployee(validDTO)
				Expect(result).To(BeNil())
				Expect(err).To(Equal(apperrors.ErrEmailExists))
			})
		})

		Context("when the department does not exist", func() {
			It("should return validation error", func() {
				ghost := int64(99)
				dto := validDTO
				dto.DepartmentID = &ghost

				result, err := service.CreateEmployee(dto)
				Expect(result).To(BeNil())

				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
				Expect(appErr.Code).To(Equal(apperrors.ErrCodeDepartmentNotFound))
			})
		})
	})

	Describe("UpdateEmployee", func() {
		var seeded *employee.Employee

		BeforeEach(func() {
			var err error
			seeded, err = service.CreateEmployee(employee.CreateEmployeeDTO{
				FirstName: "Ivan",
				LastName:  "Ivanov",
				Email:     "ivan@example.com",
				Position:  "Developer",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should apply partial updates and keep other fields", func() {
			position := "Senior Developer"
			result, err := service.UpdateEmployee(seeded.ID, employee.UpdateEmployeeDTO{Position: &position})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Position).To(Equal("Senior Developer"))
			Expect(result.Email).To(Equal("ivan@example.com"))
			Expect(result.FirstName).To(Equal("Ivan"))
		})

		It("should reject a change to an email that is taken", func() {
			_, err := service.CreateEmployee(employee.CreateEmployeeDTO{
				FirstName: "Petr",
				LastName:  "Petrov",
				Email:     "petr@example.com",
				Position:  "Developer",
			})
			Expect(err).NotTo(HaveOccurred())

			taken := "petr@example.com"
			result, err := service.UpdateEmployee(seeded.ID, employee.UpdateEmployeeDTO{Email: &taken})
			Expect(result).To(BeNil())
			Expect(err).To(Equal(apperrors.ErrEmailExists))
		})

		It("should assign a department by id", func() {
			result, err := service.UpdateEmployee(seeded.ID, employee.UpdateEmployeeDTO{
				DepartmentID: employee.NullableID{Set: true, Value: &engineeringID},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.DepartmentID).NotTo(BeNil())
			Expect(*result.DepartmentName).To(Equal("Engineering"))
		})

		It("should detach the department on an explicit null", func() {
			_, err := service.UpdateEmployee(seeded.ID, employee.UpdateEmployeeDTO{
				DepartmentID: employee.NullableID{Set: true, Value: &engineeringID},
			})
			Expect(err).NotTo(HaveOccurred())

			var dto employee.UpdateEmployeeDTO
			Expect(json.Unmarshal([]byte(`{"department_id": null}`), &dto)).To(Succeed())

			result, err := service.UpdateEmployee(seeded.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.DepartmentID).To(BeNil())
			Expect(result.DepartmentName).To(BeNil())
		})

		It("should keep the department when the field is absent", func() {
			_, err := service.UpdateEmployee(seeded.ID, employee.UpdateEmployeeDTO{
				DepartmentID: employee.NullableID{Set: true, Value: &engineeringID},
			})
			Expect(err).NotTo(HaveOccurred())

			var dto employee.UpdateEmployeeDTO
			Expect(json.Unmarshal([]byte(`{"position": "Lead"}`), &dto)).To(Succeed())

			result, err := service.UpdateEmployee(seeded.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Position).To(Equal("Lead"))
			Expect(result.DepartmentID).NotTo(BeNil())
			Expect(*result.DepartmentID).To(Equal(engineeringID))
		})

		It("should reject an unknown department", func() {
			ghost := int64(99)
			result, err := service.UpdateEmployee(seeded.ID, employee.UpdateEmployeeDTO{
				DepartmentID: employee.NullableID{Set: true, Value: &ghost},
			})
			Expect(result).To(BeNil())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDepartmentNotFound))
		})

		It("should allow re-submitting the employee's own email", func() {
			same := "ivan@example.com"
			result, err := service.UpdateEmployee(seeded.ID, employee.UpdateEmployeeDTO{Email: &same})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Email).To(Equal("ivan@example.com"))
		})

		Context("when employee does not exist", func() {
			It("should return not found error", func() {
				position := "Ghost"
				result, err := service.UpdateEmployee(999, employee.UpdateEmployeeDTO{Position: &position})
				Expect(result).To(BeNil())
				Expect(err).To(Equal(apperrors.ErrEmployeeNotFound))
			})
		})
	})

	Describe("DeactivateEmployee", func() {
		var seeded *employee.Employee

		BeforeEach(func() {
			var err error
			seeded, err = service.CreateEmployee(employee.CreateEmployeeDTO{
				FirstName: "Ivan",
				LastName:  "Ivanov",
				Email:     "ivan@example.com",
				Position:  "Developer",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should keep the row and flip is_active", func() {
			err := service.DeactivateEmployee(seeded.ID)
			Expect(err).NotTo(HaveOccurred())

			result, err := service.GetEmployeeByID(seeded.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsActive).To(BeFalse())
		})

		Context("when employee does not exist", func() {
			It("should return not found error", func() {
				err := service.DeactivateEmployee(999)
				Expect(err).To(Equal(apperrors.ErrEmployeeNotFound))
			})
		})
	})

	Describe("ListEmployees", func() {
		BeforeEach(func() {
			for _, dto := range []employee.CreateEmployeeDTO{
				{FirstName: "Ivan", LastName: "Ivanov", Email: "ivan@example.com", Position: "Developer", DepartmentID: &engineeringID},
				{FirstName: "Maria", LastName: "Sidorova", Email: "maria@example.com", Position: "Marketing Specialist"},
			} {
				_, err := service.CreateEmployee(dto)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should resolve department names only where set", func() {
			employees, total, err := service.ListEmployees(employee.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))

			byEmail := make(map[string]*employee.Employee)
			for _, e := range employees {
				byEmail[e.Email] = e
			}
			Expect(byEmail["ivan@example.com"].DepartmentName).NotTo(BeNil())
			Expect(byEmail["maria@example.com"].DepartmentName).To(BeNil())
		})

		It("should filter by department", func() {
			employees, total, err := service.ListEmployees(employee.ListFilter{DepartmentID: &engineeringID})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(employees[0].Email).To(Equal("ivan@example.com"))
		})

		It("should filter by search term", func() {
			employees, total, err := service.ListEmployees(employee.ListFilter{Search: "marketing"})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(employees[0].Email).To(Equal("maria@example.com"))
		})
	})

	Describe("GetEmployeesWithOpenRecords", func() {
		BeforeEach(func() {
			first, err := service.CreateEmployee(employee.CreateEmployeeDTO{
				FirstName: "Ivan", LastName: "Ivanov", Email: "ivan@example.com", Position: "Developer",
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateEmployee(employee.CreateEmployeeDTO{
				FirstName: "Petr", LastName: "Petrov", Email: "petr@example.com", Position: "Developer",
			})
			Expect(err).NotTo(HaveOccurred())

			mockRepo.openIDs[first.ID] = true
		})

		It("should return only employees with an open record", func() {
			employees, err := service.GetEmployeesWithOpenRecords()
			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(1))
			Expect(employees[0].Email).To(Equal("ivan@example.com"))
		})
	})

	Context("when repository fails", func() {
		BeforeEach(func() {
			mockRepo.SetShouldFail(true, errors.New("database error"))
		})

		It("should surface the error from ListEmployees", func() {
			_, _, err := service.ListEmployees(employee.ListFilter{})
			Expect(err).To(HaveOccurred())
		})
	})
})
