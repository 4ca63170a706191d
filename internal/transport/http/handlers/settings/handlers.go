package settingshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"payday/internal/domain/settings"
	"payday/internal/transport/http/api"
	"payday/internal/transport/http/middleware"
)

type Handler struct {
	Settings *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{Settings: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.handleAll)
		r.Put("/{key}", h.handleSet)
	})
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.Settings.All(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, all, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	key := strings.TrimSpace(chi.URLParam(r, "key"))
	if key == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "setting key is required", reqID)
		return
	}

	var payload struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", reqID)
		return
	}

	linesReset, err := h.Settings.Set(r.Context(), key, payload.Value)
	if errors.Is(err, settings.ErrInvalidValue) {
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", reqID)
		return
	}
	api.Success(w, map[string]any{"key": key, "value": payload.Value, "linesReset": linesReset}, reqID)
}
