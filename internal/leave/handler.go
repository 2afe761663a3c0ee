package leave

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/hr-leave-management/internal/auth"
	"github.com/frahmantamala/hr-leave-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ComputeBalance(employeeID, leaveTypeID int64) (*BalanceReport, error)
	CheckEligibility(employeeID, leaveTypeID int64, duration int) error
	RequestLeave(dto ApplyLeaveDTO, actor *auth.User) (*LeaveRequest, error)
	Withdraw(leaveRequestID int64, actor *auth.User) error
	Action(leaveRequestID int64, dto ActionLeaveDTO, actor *auth.User) error
	GetForEmployee(employeeID int64, status Status, actor *auth.User) ([]*LeaveRequest, error)
	GetManagerLeaveRequests(actor *auth.User, status Status) ([]*LeaveRequest, error)
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

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto ApplyLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.RequestLeave(dto, actor)
	if err != nil {
		h.Logger.Error("Apply: service error", "employee_id", dto.EmployeeID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid leave request ID")
		return
	}

	if err := h.Service.Withdraw(id, actor); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": string(StatusWithdrawn)})
}

func (h *Handler) Action(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid leave request ID")
		return
	}

	var dto ActionLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Action(id, dto, actor); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": dto.Decision})
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	leaveTypeID, err := strconv.ParseInt(r.URL.Query().Get("leave_type_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "leave_type_id query parameter is required")
		return
	}

	report, err := h.Service.ComputeBalance(employeeID, leaveTypeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

// Eligibility runs the eligibility rules for a proposed duration without
// creating a request, so clients can validate before submitting.
func (h *Handler) Eligibility(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	leaveTypeID, err := strconv.ParseInt(r.URL.Query().Get("leave_type_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "leave_type_id query parameter is required")
		return
	}

	duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
	if err != nil || duration <= 0 {
		h.WriteError(w, http.StatusBadRequest, "duration query parameter is required")
		return
	}

	if err := h.Service.CheckEligibility(employeeID, leaveTypeID, duration); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"eligible": true})
}

func (h *Handler) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	requests, err := h.Service.GetForEmployee(employeeID, Status(r.URL.Query().Get("status")), actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"leave_requests": requests})
}

func (h *Handler) ManagerRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	requests, err := h.Service.GetManagerLeaveRequests(actor, Status(r.URL.Query().Get("status")))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"leave_requests": requests})
}
