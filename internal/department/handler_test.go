package department_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	departmentDatamodel "github.com/frahmantamala/time-tracking/internal/core/datamodel/department"
	"github.com/frahmantamala/time-tracking/internal/department"
	departmentPostgres "github.com/frahmantamala/time-tracking/internal/department/postgres"
	"github.com/frahmantamala/time-tracking/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Department Handler", func() {
	var (
		db      *gorm.DB
		router  *chi.Mux
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&departmentDatamodel.Department{})
		Expect(err).NotTo(HaveOccurred())

		repo := departmentPostgres.NewDepartmentRepository(db)
		service := department.NewService(repo, slogger)
		handler := department.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/departments", handler.GetDepartments)
		router.Post("/departments", handler.CreateDepartment)
		router.Get("/departments/{id}", handler.GetDepartment)
		router.Put("/departments/{id}", handler.UpdateDepartment)
	})

	Describe("POST /departments", func() {
		It("should create a department and return 201", func() {
			body := bytes.NewBufferString(`{"name": "Engineering"}`)
			req := httptest.NewRequest(http.MethodPost, "/departments", body)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var created department.Department
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Name).To(Equal("Engineering"))
		})

		It("should return 400 when the name is missing", func() {
			body := bytes.NewBufferString(`{}`)
			req := httptest.NewRequest(http.MethodPost, "/departments", body)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Error.Code).To(Equal("MISSING_FIELD"))
		})

		It("should return 400 on a malformed body", func() {
			body := bytes.NewBufferString(`{"name": `)
			req := httptest.NewRequest(http.MethodPost, "/departments", body)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /departments", func() {
		It("should return an empty list as items with total", func() {
			req := httptest.NewRequest(http.MethodGet, "/departments", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp department.DepartmentListResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Items).To(BeEmpty())
			Expect(resp.Total).To(Equal(0))
		})
	})

	Describe("GET /departments/{id}", func() {
		It("should return 404 for a missing department", func() {
			req := httptest.NewRequest(http.MethodGet, "/departments/42", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a non-numeric id", func() {
			req := httptest.NewRequest(http.MethodGet, "/departments/abc", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /departments/{id}", func() {
		It("should rename an existing department", func() {
			body := bytes.NewBufferString(`{"name": "Engineering"}`)
			req := httptest.NewRequest(http.MethodPost, "/departments", body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var created department.Department
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())

			update := bytes.NewBufferString(`{"name": "Platform"}`)
			req = httptest.NewRequest(http.MethodPut, "/departments/1", update)
			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var updated department.Department
			Expect(json.Unmarshal(rec.Body.Bytes(), &updated)).To(Succeed())
			Expect(updated.Name).To(Equal("Platform"))
		})
	})
})
