package report_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/time-tracking/internal/report"
	"github.com/frahmantamala/time-tracking/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Report Handler", func() {
	var (
		mockRepo *MockRepository
		router   *chi.Mux
	)

	officeNow := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	engineering := i64Ptr(1)

	BeforeEach(func() {
		mockRepo = &MockRepository{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := report.NewService(mockRepo, fixedClock{now: officeNow}, slogger)
		handler := report.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/reports/summary", handler.Summary)
		router.Get("/reports/export/csv", handler.ExportCSV)
	})

	Describe("GET /reports/summary", func() {
		BeforeEach(func() {
			mockRepo.rows = []report.RecordRow{
				closedRow(1, 1, "Ivan", "Ivanov", engineering, strPtr("Engineering"), "2024-01-01T09:00:00", 8.5),
			}
		})

		It("should include the whole end day when dates come without a time component", func() {
			req := httptest.NewRequest(http.MethodGet, "/reports/summary?start_date=2024-01-01&end_date=2024-01-01", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp report.SummaryResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Data).To(HaveLen(1))
			Expect(resp.Data[0].TotalHours).To(Equal(8.5))
			Expect(resp.Data[0].RecordCount).To(Equal(1))

			dayEnd := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)
			Expect(mockRepo.lastEnd).To(BeTemporally("~", dayEnd, time.Second))
		})

		It("should echo the effective period bounds", func() {
			req := httptest.NewRequest(http.MethodGet, "/reports/summary?start_date=2024-01-01&end_date=2024-01-01", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			var resp report.SummaryResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Period.StartDate).To(Equal("2024-01-01T00:00:00"))
			Expect(resp.Period.EndDate).To(Equal("2024-01-01T23:59:59"))
		})

		It("should keep an explicit end timestamp as given", func() {
			req := httptest.NewRequest(http.MethodGet, "/reports/summary?start_date=2024-01-01&end_date=2024-01-01T12:00:00", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp report.SummaryResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Period.EndDate).To(Equal("2024-01-01T12:00:00"))
			Expect(mockRepo.lastEnd).To(BeTemporally("==", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
		})

		It("should require both bounds", func() {
			req := httptest.NewRequest(http.MethodGet, "/reports/summary?start_date=2024-01-01", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /reports/export/csv", func() {
		BeforeEach(func() {
			mockRepo.rows = []report.RecordRow{
				closedRow(1, 1, "Ivan", "Ivanov", engineering, strPtr("Engineering"), "2024-01-01T09:00:00", 8.5),
			}
		})

		It("should export a single-day range", func() {
			req := httptest.NewRequest(http.MethodGet, "/reports/export/csv?start_date=2024-01-01&end_date=2024-01-01", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp report.CSVResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Filename).To(Equal("time_tracking_summary_20240101-20240101.csv"))
			Expect(resp.CSVData).To(ContainSubstring("1,Ivan,Ivanov,Engineering,8.5,1"))
		})
	})
})
