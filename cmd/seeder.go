package cmd

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	departmentDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/employee"
	timerecordDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/timerecord"
	"github.com/frahmantamala/time-tracking/pkg/clock"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"time_records", "employees", "departments"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		departments := []*departmentDatamodel.Department{
			{Name: "Engineering"},
			{Name: "Marketing"},
			{Name: "Sales"},
			{Name: "Administration"},
		}
		for _, dept := range departments {
			if err := gormDB.Create(dept).Error; err != nil {
				log.Fatalf("failed to seed department %s: %v", dept.Name, err)
			}
		}

		employees := []*employeeDatamodel.Employee{
			{FirstName: "Ivan", LastName: "Ivanov", Email: "ivan@example.com", Position: "Developer", DepartmentID: &departments[0].ID, IsActive: true},
			{FirstName: "Petr", LastName: "Petrov", Email: "petr@example.com", Position: "Developer", DepartmentID: &departments[0].ID, IsActive: true},
			{FirstName: "Maria", LastName: "Sidorova", Email: "maria@example.com", Position: "Marketing Specialist", DepartmentID: &departments[1].ID, IsActive: true},
			{FirstName: "Anna", LastName: "Kuznetsova", Email: "anna@example.com", Position: "Sales Manager", DepartmentID: &departments[2].ID, IsActive: true},
			{FirstName: "Alexey", LastName: "Smirnov", Email: "alexey@example.com", Position: "Director", DepartmentID: &departments[3].ID, IsActive: true},
		}
		for _, emp := range employees {
			if err := gormDB.Create(emp).Error; err != nil {
				log.Fatalf("failed to seed employee %s: %v", emp.Email, err)
			}
		}

		// A week of closed weekday records, roughly 9:00 to 18:00 office time.
		officeClock := clock.NewOfficeClock(cfg.Office.UTCOffsetHours)
		startDate := officeClock.Now().AddDate(0, 0, -7)

		seeded := 0
		for day := 0; day < 7; day++ {
			currentDate := startDate.AddDate(0, 0, day)
			if currentDate.Weekday() == time.Saturday || currentDate.Weekday() == time.Sunday {
				continue
			}

			dayStart := time.Date(currentDate.Year(), currentDate.Month(), currentDate.Day(), 9, 0, 0, 0, time.UTC)
			for _, emp := range employees {
				checkIn := dayStart.Add(time.Duration(rand.Intn(31)) * time.Minute)
				workHours := 8 + rand.Intn(2)
				// one extra hour covers the lunch break
				checkOut := checkIn.
					Add(time.Duration(workHours+1) * time.Hour).
					Add(time.Duration(rand.Intn(31)) * time.Minute)

				record := &timerecordDatamodel.TimeRecord{
					EmployeeID:  emp.ID,
					CheckIn:     checkIn,
					CheckOut:    &checkOut,
					Description: fmt.Sprintf("Working day %s", currentDate.Format("2006-01-02")),
				}
				if err := gormDB.Create(record).Error; err != nil {
					log.Fatalf("failed to seed time record: %v", err)
				}
				seeded++
			}
		}

		fmt.Printf("Seeded %d departments, %d employees and %d time records\n",
			len(departments), len(employees), seeded)
	},
}
