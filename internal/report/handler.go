package report

import (
	"net/http"
	"strconv"
	"time"

	errors "github.com/frahmantamala/time-tracking/internal"
	"github.com/frahmantamala/time-tracking/internal/transport"
)

type ServiceAPI interface {
	Summary(start, end time.Time, departmentID *int64, groupBy string) (*SummaryResponse, error)
	Daily(date string, employeeID, departmentID *int64) (*DailyResponse, error)
	ExportCSV(reportType string, start, end time.Time, departmentID *int64) (*CSVResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// parsePeriod reads the mandatory start_date/end_date query params. The
// range is inclusive: a bare end date extends to the end of its day.
func (h *Handler) parsePeriod(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")
	if startStr == "" || endStr == "" {
		h.WriteError(w, http.StatusBadRequest, "start_date and end_date are required")
		return time.Time{}, time.Time{}, false
	}

	start, err := errors.ParseTimestamp(startStr)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid date format. Use ISO format (YYYY-MM-DDTHH:MM:SS)")
		return time.Time{}, time.Time{}, false
	}
	end, err := errors.ParseEndTimestamp(endStr)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid date format. Use ISO format (YYYY-MM-DDTHH:MM:SS)")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid "+name)
		return nil, false
	}
	return &id, true
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}
	departmentID, ok := h.parseIDParam(w, r, "department_id")
	if !ok {
		return
	}

	summary, err := h.Service.Summary(start, end, departmentID, r.URL.Query().Get("group_by"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.parseIDParam(w, r, "employee_id")
	if !ok {
		return
	}
	departmentID, ok := h.parseIDParam(w, r, "department_id")
	if !ok {
		return
	}

	daily, err := h.Service.Daily(r.URL.Query().Get("date"), employeeID, departmentID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, daily)
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}
	departmentID, ok := h.parseIDParam(w, r, "department_id")
	if !ok {
		return
	}

	export, err := h.Service.ExportCSV(r.URL.Query().Get("type"), start, end, departmentID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("csv export generated", "filename", export.Filename)
	h.WriteJSON(w, http.StatusOK, export)
}
