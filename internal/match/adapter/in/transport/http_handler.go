package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vismithaN/advertisement/internal/match/application/ports/out"
	"github.com/vismithaN/advertisement/internal/match/domain"
	"github.com/vismithaN/advertisement/internal/shared/logger"
	"github.com/vismithaN/advertisement/internal/shared/ws"
)

// HTTPHandler обрабатывает HTTP запросы ops API
type HTTPHandler struct {
	profiles out.ProfileStore
	catalog  out.CatalogStore
	hub      *ws.Hub
	log      *logger.Logger
}

// NewHTTPHandler создает новый HTTP handler
func NewHTTPHandler(
	profiles out.ProfileStore,
	catalog out.CatalogStore,
	hub *ws.Hub,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		profiles: profiles,
		catalog:  catalog,
		hub:      hub,
		log:      log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, opsAuthMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	// liveness probe (без аутентификации)
	mux.HandleFunc("GET /health", h.handleHealth)

	// ops endpoints (требуют OPS/ADMIN роль)
	mux.HandleFunc("GET /api/v1/riders/{id}", opsAuthMiddleware(h.handleGetRider))
	mux.HandleFunc("GET /api/v1/businesses/{id}", opsAuthMiddleware(h.handleGetBusiness))

	// WebSocket фид матчей; auth происходит внутри протокола hub-а
	mux.HandleFunc("GET /ws/matches", h.hub.ServeWS)
}

// handleHealth обрабатывает health check.
// ws_clients — число подключенных к фиду матчей ops-клиентов.
func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"service":    "match",
		"ws_clients": h.hub.ClientCount(),
	})
}

// handleGetRider обрабатывает GET /api/v1/riders/{id}
func (h *HTTPHandler) handleGetRider(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "rider id must be an integer")
		return
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrRiderNotFound) {
			h.respondError(w, http.StatusNotFound, "rider not found")
			return
		}
		h.log.Error(logger.Entry{
			Action:  "ops_get_rider_failed",
			Message: err.Error(),
			UserID:  userID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.respondJSON(w, http.StatusOK, profile)
}

// handleGetBusiness обрабатывает GET /api/v1/businesses/{id}
func (h *HTTPHandler) handleGetBusiness(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("id")
	if storeID == "" {
		h.respondError(w, http.StatusBadRequest, "business id required")
		return
	}

	business, err := h.catalog.Get(r.Context(), storeID)
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			h.respondError(w, http.StatusNotFound, "business not found")
			return
		}
		h.log.Error(logger.Entry{
			Action:  "ops_get_business_failed",
			Message: err.Error(),
			StoreID: storeID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.respondJSON(w, http.StatusOK, business)
}

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error(logger.Entry{
			Action:  "ops_encode_response_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
