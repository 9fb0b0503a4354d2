package employee

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	FindByEmployeeID(employeeID string) (*Employee, error)
	CreateEmployee(dto CreateEmployeeDTO) (*Employee, error)
	GetEmployee(id int64) (*Employee, error)
	ListEmployees(filters ListFilters, page int) ([]*Employee, internal.Pagination, error)
	DeleteEmployee(id int64) error
	Departments() ([]string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

// GetByEmployeeID is the public lookup backing the submission form's
// employee-id autofill.
func (h *Handler) GetByEmployeeID(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		h.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Employee ID is required"})
		return
	}

	emp, err := h.Service.FindByEmployeeID(employeeID)
	if err != nil {
		if errors.Is(err, internal.ErrEmployeeNotFound) {
			h.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Employee not found"})
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"id":          emp.ID,
		"employee_id": emp.EmployeeID,
		"name":        emp.Name,
		"department":  emp.Department,
		"grade":       emp.Grade,
		"email":       emp.Email,
	})
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

	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	emp, err := h.Service.GetEmployee(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	employees, pagination, err := h.Service.ListEmployees(filters, page)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	departments, err := h.Service.Departments()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employees":   employees,
		"departments": departments,
		"filters":     filters,
		"pagination":  pagination,
	})
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	if err := h.Service.DeleteEmployee(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
