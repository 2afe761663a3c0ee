package employee

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/hr-leave-management/internal/auth"
	"github.com/frahmantamala/hr-leave-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetAll(activeOnly bool) ([]*Employee, error)
	GetByID(id int64) (*Employee, error)
	Create(dto CreateEmployeeDTO, byUserID int64) (*Employee, error)
	Update(id int64, dto UpdateEmployeeDTO, byUserID int64) (*Employee, error)
	Terminate(id int64, dto TerminateEmployeeDTO, byUserID int64) error
	MoveDepartment(id int64, dto MoveDepartmentDTO, byUserID int64) error
	IncrementSalary(id int64, dto IncrementSalaryDTO, byUserID int64) error
	ChangeJobTitle(id int64, dto ChangeJobTitleDTO, byUserID int64) error
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("include_terminated") != "true"

	emps, err := h.Service.GetAll(activeOnly)
	if err != nil {
		h.Logger.Error("List: failed to get employees", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": emps})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	emp, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Create(dto, actor.ID)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := h.idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Update(id, dto, actor.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) Terminate(w http.ResponseWriter, r *http.Request) {
	var dto TerminateEmployeeDTO
	h.mutate(w, r, &dto, func(id, byUserID int64) error {
		return h.Service.Terminate(id, dto, byUserID)
	})
}

func (h *Handler) MoveDepartment(w http.ResponseWriter, r *http.Request) {
	var dto MoveDepartmentDTO
	h.mutate(w, r, &dto, func(id, byUserID int64) error {
		return h.Service.MoveDepartment(id, dto, byUserID)
	})
}

func (h *Handler) IncrementSalary(w http.ResponseWriter, r *http.Request) {
	var dto IncrementSalaryDTO
	h.mutate(w, r, &dto, func(id, byUserID int64) error {
		return h.Service.IncrementSalary(id, dto, byUserID)
	})
}

func (h *Handler) ChangeJobTitle(w http.ResponseWriter, r *http.Request) {
	var dto ChangeJobTitleDTO
	h.mutate(w, r, &dto, func(id, byUserID int64) error {
		return h.Service.ChangeJobTitle(id, dto, byUserID)
	})
}

// mutate shares the decode/authorize/dispatch shape of the single-field
// employee mutations.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, dto interface{}, op func(id, byUserID int64) error) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := h.idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := op(id, actor.ID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
