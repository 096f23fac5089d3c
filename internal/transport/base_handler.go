package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// DataResponse wraps every successful payload.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteData writes {"data": data}
func WriteData[T any](h *BaseHandler, w http.ResponseWriter, status int, data T) {
	h.WriteJSON(w, status, DataResponse[T]{Data: data})
}

// WriteNoContent writes an empty 204 response
func (h *BaseHandler) WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// HandleServiceError maps err onto the error taxonomy and writes it. Server
// side failures are logged at error level, client mistakes at warn.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := internal.ToHTTPResponse(err)
	lg, ok := logger.Lookup(r.Context())
	if !ok {
		lg = h.Logger
	}
	if status >= http.StatusInternalServerError {
		lg.Error("request failed", "status", status, "error", err, "path", r.URL.Path)
	} else {
		lg.Warn("request rejected", "status", status, "error", body.Error, "path", r.URL.Path)
	}
	h.WriteJSON(w, status, body)
}
