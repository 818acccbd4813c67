package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/time-tracking/internal/department"
	"github.com/frahmantamala/time-tracking/internal/employee"
	"github.com/frahmantamala/time-tracking/internal/report"
	"github.com/frahmantamala/time-tracking/internal/timerecord"
	"github.com/frahmantamala/time-tracking/internal/transport/middleware"
	"github.com/frahmantamala/time-tracking/internal/transport/swagger"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, departmentHandler *department.Handler, employeeHandler *employee.Handler, timeRecordHandler *timerecord.Handler, reportHandler *report.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/status", healthHandler.statusHandler)

		r.Route("/departments", func(dr chi.Router) {
			dr.Get("/", departmentHandler.GetDepartments)
			dr.Post("/", departmentHandler.CreateDepartment)
			dr.Get("/{id}", departmentHandler.GetDepartment)
			dr.Put("/{id}", departmentHandler.UpdateDepartment)
		})

		r.Route("/employees", func(er chi.Router) {
			er.Get("/", employeeHandler.ListEmployees)
			er.Post("/", employeeHandler.CreateEmployee)
			er.Get("/with-open-records", employeeHandler.GetEmployeesWithOpenRecords)
			er.Get("/{id}", employeeHandler.GetEmployee)
			er.Put("/{id}", employeeHandler.UpdateEmployee)
			er.Delete("/{id}", employeeHandler.DeactivateEmployee)
			er.Get("/{id}/time-records", employeeHandler.GetEmployeeTimeRecords)
		})

		r.Route("/time-records", func(tr chi.Router) {
			tr.Get("/", timeRecordHandler.ListRecords)
			tr.Post("/", timeRecordHandler.CreateRecord)
			tr.Post("/check-in", timeRecordHandler.CheckIn)
			tr.Post("/check-out", timeRecordHandler.CheckOut)
			tr.Get("/{id}", timeRecordHandler.GetRecord)
			tr.Put("/{id}", timeRecordHandler.UpdateRecord)
		})

		r.Route("/reports", func(rr chi.Router) {
			rr.Get("/summary", reportHandler.Summary)
			rr.Get("/daily", reportHandler.Daily)
			rr.Get("/export/csv", reportHandler.ExportCSV)
		})
	})
}
