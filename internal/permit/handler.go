package permit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/auth"
	"github.com/frahmantamala/permit-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreatePermitRequest(dto CreatePermitRequestDTO) (*PermitRequest, error)
	GetPermitRequest(id int64) (*PermitRequest, error)
	ListPermitRequests(filters ListFilters, page int) ([]*PermitRequest, internal.Pagination, error)
	Review(id int64, dto UpdateStatusDTO, reviewerID int64) (*PermitRequest, error)
	DeletePermitRequest(id int64) error
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

// CreatePermitRequest is the public submission endpoint.
func (h *Handler) CreatePermitRequest(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreatePermitRequest: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.CreatePermitRequest(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreatePermitRequest: request submitted",
		"permit_request_id", req.ID,
		"status", req.Status)

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"request": req,
		"message": "Vehicle usage permit request submitted successfully.",
	})
}

func (h *Handler) GetPermitRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permit request ID")
		return
	}

	req, err := h.Service.GetPermitRequest(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) ListPermitRequests(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
		Status:     r.URL.Query().Get("status"),
	}
	if from := parseDateParam(r.URL.Query().Get("date_from")); from != nil {
		filters.DateFrom = from
	}
	if to := parseDateParam(r.URL.Query().Get("date_to")); to != nil {
		filters.DateTo = to
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	requests, pagination, err := h.Service.ListPermitRequests(filters, page)
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
		"requests":    requests,
		"departments": departments,
		"filters":     filters,
		"pagination":  pagination,
	})
}

// Review handles the approve/reject decision. The reviewer identity comes
// from the authenticated request, never from the payload.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("Review: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permit request ID")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Review: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Review(id, dto, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"request": req,
		"message": "Permit request " + req.Status + " successfully.",
	})
}

func (h *Handler) DeletePermitRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permit request ID")
		return
	}

	if err := h.Service.DeletePermitRequest(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Permit request deleted successfully.",
	})
}

func parseDateParam(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t
		}
	}
	return nil
}
