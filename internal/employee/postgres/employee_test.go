package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/time-tracking/internal/core/common/pagination"
	employeeDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/employee"
	timerecordDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/timerecord"
	"github.com/frahmantamala/time-tracking/internal/employee"
	employeePostgres "github.com/frahmantamala/time-tracking/internal/employee/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestEmployeePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Postgres Suite")
}

var _ = Describe("Employee PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo employee.RepositoryAPI
	)

	seed := func(first, last, email, position string) *employeeDatamodel.Employee {
		e := &employeeDatamodel.Employee{
			FirstName: first,
			LastName:  last,
			Email:     email,
			Position:  position,
			IsActive:  true,
		}
		Expect(repo.Create(e)).To(Succeed())
		return e
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employeeDatamodel.Employee{}, &timerecordDatamodel.TimeRecord{})
		Expect(err).NotTo(HaveOccurred())

		repo = employeePostgres.NewEmployeeRepository(db)
	})

	Describe("Create", func() {
		It("should create an employee", func() {
			e := seed("Ivan", "Ivanov", "ivan@example.com", "Developer")
			Expect(e.ID).To(BeNumerically(">", 0))
			Expect(e.CreatedAt).NotTo(BeZero())
		})

		It("should enforce the unique email constraint", func() {
			seed("Ivan", "Ivanov", "ivan@example.com", "Developer")

			dup := &employeeDatamodel.Employee{
				FirstName: "Other",
				LastName:  "Ivan",
				Email:     "ivan@example.com",
				Position:  "Developer",
				IsActive:  true,
			}
			Expect(repo.Create(dup)).NotTo(Succeed())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			seed("Maria", "Sidorova", "maria@example.com", "Marketing Specialist")
			seed("Ivan", "Ivanov", "ivan@example.com", "Developer")
			seed("Anna", "Kuznetsova", "anna@example.com", "Sales Manager")
		})

		It("should order by last then first name", func() {
			employees, total, err := repo.List(employee.ListFilter{Page: pagination.Normalize(1, 20)})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(employees[0].LastName).To(Equal("Ivanov"))
			Expect(employees[1].LastName).To(Equal("Kuznetsova"))
			Expect(employees[2].LastName).To(Equal("Sidorova"))
		})

		It("should search case-insensitively across name, email and position", func() {
			employees, total, err := repo.List(employee.ListFilter{
				Search: "SALES",
				Page:   pagination.Normalize(1, 20),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(employees[0].Email).To(Equal("anna@example.com"))
		})

		It("should filter by is_active", func() {
			Expect(repo.Deactivate(1)).To(Succeed())

			active := true
			_, total, err := repo.List(employee.ListFilter{
				IsActive: &active,
				Page:     pagination.Normalize(1, 20),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
		})

		It("should paginate", func() {
			employees, total, err := repo.List(employee.ListFilter{Page: pagination.Normalize(2, 2)})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(employees).To(HaveLen(1))
		})
	})

	Describe("GetByEmail", func() {
		BeforeEach(func() {
			seed("Ivan", "Ivanov", "ivan@example.com", "Developer")
		})

		It("should find an existing email", func() {
			result, err := repo.GetByEmail("ivan@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
		})

		It("should return nil for an unknown email", func() {
			result, err := repo.GetByEmail("ghost@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("GetByIDs", func() {
		It("should return only matching rows and tolerate an empty input", func() {
			first := seed("Ivan", "Ivanov", "ivan@example.com", "Developer")
			seed("Maria", "Sidorova", "maria@example.com", "Marketing Specialist")

			result, err := repo.GetByIDs([]int64{first.ID, 999})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))

			result, err = repo.GetByIDs(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeEmpty())
		})
	})

	Describe("Deactivate", func() {
		It("should flip is_active and keep the row", func() {
			e := seed("Ivan", "Ivanov", "ivan@example.com", "Developer")

			Expect(repo.Deactivate(e.ID)).To(Succeed())

			result, err := repo.GetByID(e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.IsActive).To(BeFalse())
		})
	})

	Describe("WithOpenRecords", func() {
		It("should return only employees with a record missing check_out", func() {
			checkedIn := seed("Ivan", "Ivanov", "ivan@example.com", "Developer")
			checkedOut := seed("Maria", "Sidorova", "maria@example.com", "Marketing Specialist")
			seed("Anna", "Kuznetsova", "anna@example.com", "Sales Manager")

			now := time.Now().UTC()
			Expect(db.Create(&timerecordDatamodel.TimeRecord{
				EmployeeID: checkedIn.ID,
				CheckIn:    now,
			}).Error).NotTo(HaveOccurred())

			out := now.Add(8 * time.Hour)
			Expect(db.Create(&timerecordDatamodel.TimeRecord{
				EmployeeID: checkedOut.ID,
				CheckIn:    now,
				CheckOut:   &out,
			}).Error).NotTo(HaveOccurred())

			result, err := repo.WithOpenRecords()
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Email).To(Equal("ivan@example.com"))
		})
	})
})
