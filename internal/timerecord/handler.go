package timerecord

import (
	"encoding/json"
	"net/http"
	"strconv"

	errors "github.com/frahmantamala/time-tracking/internal"
	"github.com/frahmantamala/time-tracking/internal/core/common/pagination"
	"github.com/frahmantamala/time-tracking/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListRecords(filter ListFilter) ([]*TimeRecord, int64, error)
	GetRecordByID(id int64) (*TimeRecord, error)
	CreateRecord(dto CreateTimeRecordDTO) (*TimeRecord, error)
	UpdateRecord(id int64, dto UpdateTimeRecordDTO) (*TimeRecord, error)
	CheckIn(dto CheckInDTO) (*TimeRecord, error)
	CheckOut(dto CheckOutDTO) (*TimeRecord, error)
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

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	filter := ListFilter{Page: pagination.Normalize(page, perPage)}

	if empStr := r.URL.Query().Get("employee_id"); empStr != "" {
		empID, err := strconv.ParseInt(empStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid employee_id")
			return
		}
		filter.EmployeeID = &empID
	}

	if startStr := r.URL.Query().Get("start_date"); startStr != "" {
		start, err := errors.ParseTimestamp(startStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid start_date format")
			return
		}
		filter.StartDate = &start
	}

	if endStr := r.URL.Query().Get("end_date"); endStr != "" {
		end, err := errors.ParseEndTimestamp(endStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid end_date format")
			return
		}
		filter.EndDate = &end
	}

	records, total, err := h.Service.ListRecords(filter)
	if err != nil {
		h.Logger.Error("ListRecords: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	if records == nil {
		records = []*TimeRecord{}
	}

	h.WriteJSON(w, http.StatusOK, pagination.NewEnvelope(records, total, filter.Page))
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}

	record, err := h.Service.GetRecordByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var dto CreateTimeRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateRecord: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.CreateRecord(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateRecord: record created",
		"record_id", record.ID,
		"employee_id", record.EmployeeID)
	h.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}

	var dto UpdateTimeRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateRecord: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.UpdateRecord(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var dto CheckInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CheckIn: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.CheckIn(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CheckIn: employee checked in",
		"record_id", record.ID,
		"employee_id", record.EmployeeID)
	h.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var dto CheckOutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CheckOut: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.CheckOut(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CheckOut: employee checked out",
		"record_id", record.ID,
		"employee_id", record.EmployeeID)
	h.WriteJSON(w, http.StatusOK, record)
}
