package transit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"

	"github.com/cesargomez89/mekkompis/internal/constants"
	httpapp "github.com/cesargomez89/mekkompis/internal/http"
	"github.com/cesargomez89/mekkompis/internal/logger"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type Handler struct {
	Client *Client
	Logger *logger.Logger
	Clock  clockwork.Clock
}

func NewHandler(client *Client, log *logger.Logger) *Handler {
	return &Handler{Client: client, Logger: log, Clock: clockwork.NewRealClock()}
}

// NewRouter builds the departure board server.
func NewRouter(h *Handler, frontendURL string, metrics *httpapp.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpapp.RequestLogger(h.Logger))
	r.Use(httpapp.Recoverer(h.Logger))
	if metrics != nil {
		r.Use(metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{frontendURL},
		AllowedMethods: []string{"GET"},
	}))

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Get("/health", h.Health)
	r.Get("/api/stops/search", h.SearchStops)
	r.Get("/api/departures/{gid}", h.Departures)
	return r
}

func (h *Handler) SearchStops(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter required")
		return
	}

	body, err := h.Client.SearchStops(r.Context(), query)
	if err != nil {
		h.Logger.Error("Failed to search stops", "query", query, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to search stops")
		return
	}
	writeRaw(w, body)
}

func (h *Handler) Departures(w http.ResponseWriter, r *http.Request) {
	gid := chi.URLParam(r, "gid")

	limit, err := intParam(r, "limit", constants.DefaultDepartureLimit, constants.MaxDepartureLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	timeSpan, err := intParam(r, "timeSpan", constants.DefaultDepartureWindow, constants.MaxDepartureWindow)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := h.Client.Departures(r.Context(), gid, limit, timeSpan)
	if err != nil {
		h.Logger.Error("Failed to fetch departures", "gid", gid, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch departures")
		return
	}
	writeRaw(w, body)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": h.Clock.Now().UTC().Format(isoMillis),
	})
}

// intParam reads an optional query integer in [1, upper].
func intParam(r *http.Request, name string, def, upper int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > upper {
		return 0, fmt.Errorf("%s must be an integer between 1 and %d", name, upper)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
