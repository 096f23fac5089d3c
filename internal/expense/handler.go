package expense

import (
	"context"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal/core/common/query"
	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Expense, error)
	Create(ctx context.Context, input ExpenseInput) (*Expense, error)
	Update(ctx context.Context, id string, input ExpenseInput) (*Expense, error)
	SetStatus(ctx context.Context, id string, input StatusInput) (*Expense, error)
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

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	filter := ListFilter{ResponsibleID: values.Get("responsibleId")}
	if from, ok := query.ParseDateParam(values, "from"); ok {
		filter.From = from
	}
	if to, ok := query.ParseDateParam(values, "to"); ok {
		filter.To = to
	}

	items, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	transport.WriteData(h.BaseHandler, w, http.StatusOK, items)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	payload, appErr := validation.DecodePayload(r.Body)
	if appErr != nil {
		h.HandleServiceError(w, r, appErr)
		return
	}
	input, appErr := ParseExpenseInput(payload)
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

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
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
	input, appErr := ParseExpenseInput(payload)
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

func (h *Handler) UpdateExpenseStatus(w http.ResponseWriter, r *http.Request) {
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
	input, appErr := ParseStatusInput(payload)
	if appErr != nil {
		h.HandleServiceError(w, r, appErr)
		return
	}

	item, err := h.Service.SetStatus(r.Context(), id, *input)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	transport.WriteData(h.BaseHandler, w, http.StatusOK, item)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
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
