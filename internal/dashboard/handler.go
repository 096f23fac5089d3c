package dashboard

import (
	"context"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal/core/common/query"
	"github.com/frahmantamala/expense-tracker/internal/transport"
)

type ServiceAPI interface {
	Summary(ctx context.Context, from, to string) (*Summary, error)
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

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	from := query.DateParamOr(values, "from", "")
	to := query.DateParamOr(values, "to", "")

	summary, err := h.Service.Summary(r.Context(), from, to)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	transport.WriteData(h.BaseHandler, w, http.StatusOK, summary)
}
