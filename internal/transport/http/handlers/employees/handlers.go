package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"payday/internal/domain/employee"
	"payday/internal/transport/http/api"
	"payday/internal/transport/http/middleware"
)

type Handler struct {
	Employees *employee.Service
}

func NewHandler(svc *employee.Service) *Handler {
	return &Handler{Employees: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Delete("/{employeeID}", h.handleDeactivate)
		r.Post("/{employeeID}/reactivate", h.handleReactivate)
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	case errors.Is(err, employee.ErrNameRequired), errors.Is(err, employee.ErrNegativeRate):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", reqID)
	}
}

func pathEmployeeID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Employees.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathEmployeeID(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Employees.ByID(r.Context(), employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

type employeePayload struct {
	FullName     string  `json:"fullName"`
	EmployeeCode string  `json:"employeeCode"`
	IDNumber     string  `json:"idNumber"`
	Email        string  `json:"email"`
	HourlyRate   float64 `json:"hourlyRate"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", reqID)
		return
	}

	id, err := h.Employees.Create(r.Context(), employee.Employee{
		FullName:     payload.FullName,
		EmployeeCode: payload.EmployeeCode,
		IDNumber:     payload.IDNumber,
		Email:        payload.Email,
		HourlyRate:   payload.HourlyRate,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, map[string]int64{"id": id}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	employeeID, err := pathEmployeeID(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a number", reqID)
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", reqID)
		return
	}

	err = h.Employees.Update(r.Context(), employee.Employee{
		ID:           employeeID,
		FullName:     payload.FullName,
		EmployeeCode: payload.EmployeeCode,
		IDNumber:     payload.IDNumber,
		Email:        payload.Email,
		HourlyRate:   payload.HourlyRate,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"updated": true}, reqID)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathEmployeeID(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Employees.Deactivate(r.Context(), employeeID); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"active": false}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReactivate(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathEmployeeID(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Employees.Reactivate(r.Context(), employeeID); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"active": true}, middleware.GetRequestID(r.Context()))
}
