package responsible

import (
	"context"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Responsible, error)
	Create(ctx context.Context, input ResponsibleInput) (*Responsible, error)
	Update(ctx context.Context, id string, input ResponsibleInput) (*Responsible, error)
	Delete(ctx context.Context, id string) error
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

func (h *Handler) ListResponsibles(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	transport.WriteData(h.BaseHandler, w, http.StatusOK, items)
}

func (h *Handler) CreateResponsible(w http.ResponseWriter, r *http.Request) {
	payload, appErr := validation.DecodePayload(r.Body)
	if appErr != nil {
		h.HandleServiceError(w, r, appErr)
		return
	}
	input, appErr := ParseResponsibleInput(payload)
	if appErr != nil {
		h.HandleServiceError(w, r, appErr)
		return
	}

	item, err := h.Service.Create(r.Context(), *input)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	transport.WriteData(h.BaseHandler, w, http.StatusCreated, item)
}

func (h *Handler) UpdateResponsible(w http.ResponseWriter, r *http.Request) {
	id, appErr := validation.ValidateID(chi.URLParam(r, "id"))
	if appErr != nil {
		h.HandleServiceError(w, r, appErr)
		return
	}
	payload, appErr := validation.DecodePayload(r.Body)
	if appErr != nil {
		h.HandleServiceError(w, r, appErr)
		return
	}
	input, appErr := ParseResponsibleInput(payload)
	if appErr != nil {
		h.HandleServiceError(w, r, appErr)
		return
	}

	item, err := h.Service.Update(r.Context(), id, *input)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	transport.WriteData(h.BaseHandler, w, http.StatusOK, item)
}

func (h *Handler) DeleteResponsible(w http.ResponseWriter, r *http.Request) {
	id, appErr := validation.ValidateID(chi.URLParam(r, "id"))
	if appErr != nil {
		h.HandleServiceError(w, r, appErr)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteNoContent(w)
}
