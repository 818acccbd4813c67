package employee

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/frahmantamala/time-tracking/internal/core/common/pagination"
	"github.com/frahmantamala/time-tracking/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListEmployees(filter ListFilter) ([]*Employee, int64, error)
	GetEmployeeByID(id int64) (*Employee, error)
	CreateEmployee(dto CreateEmployeeDTO) (*Employee, error)
	UpdateEmployee(id int64, dto UpdateEmployeeDTO) (*Employee, error)
	DeactivateEmployee(id int64) error
	GetEmployeesWithOpenRecords() ([]*Employee, error)
}

// TimeRecordListerAPI is implemented by the time record service; it backs
// the per-employee records endpoint without a package cycle.
type TimeRecordListerAPI interface {
	ListForEmployee(employeeID int64, startDate, endDate string, page pagination.Params) (pagination.Envelope, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Records TimeRecordListerAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, records TimeRecordListerAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Records:     records,
	}
}

func parsePagination(r *http.Request) pagination.Params {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	return pagination.Normalize(page, perPage)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Search: r.URL.Query().Get("search"),
		Page:   parsePagination(r),
	}

	if deptStr := r.URL.Query().Get("department_id"); deptStr != "" {
		deptID, err := strconv.ParseInt(deptStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid department_id")
			return
		}
		filter.DepartmentID = &deptID
	}

	if activeStr := r.URL.Query().Get("is_active"); activeStr != "" {
		isActive := strings.EqualFold(activeStr, "true")
		filter.IsActive = &isActive
	}

	employees, total, err := h.Service.ListEmployees(filter)
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	if employees == nil {
		employees = []*Employee{}
	}

	h.WriteJSON(w, http.StatusOK, pagination.NewEnvelope(employees, total, filter.Page))
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	emp, err := h.Service.GetEmployeeByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.CreateEmployee(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEmployee: employee created", "employee_id", emp.ID, "email", emp.Email)
	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.UpdateEmployee(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) DeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	if err := h.Service.DeactivateEmployee(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, DeactivateResponse{Message: "Employee deactivated successfully"})
}

func (h *Handler) GetEmployeeTimeRecords(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	emp, err := h.Service.GetEmployeeByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	records, err := h.Records.ListForEmployee(
		id,
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
		parsePagination(r),
	)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, EmployeeTimeRecordsResponse{
		Employee:    emp,
		TimeRecords: records,
	})
}

func (h *Handler) GetEmployeesWithOpenRecords(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.GetEmployeesWithOpenRecords()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if employees == nil {
		employees = []*Employee{}
	}

	h.WriteJSON(w, http.StatusOK, EmployeeListResponse{
		Items: employees,
		Total: len(employees),
	})
}
