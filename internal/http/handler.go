package httpapp

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cesargomez89/mekkompis/internal/app"
	"github.com/cesargomez89/mekkompis/internal/auth"
	"github.com/cesargomez89/mekkompis/internal/logger"
)

type Handler struct {
	Motorcycles  *app.MotorcycleService
	Jobs         *app.JobService
	Images       *app.ImageService
	Notes        *app.NoteService
	Shopping     *app.ShoppingService
	Features     *app.FeatureService
	Gate         *auth.Gate
	LoginLimiter *RateLimiter
	Logger       *logger.Logger
}

// RouterConfig carries what the router needs beyond the handlers.
type RouterConfig struct {
	AllowedOrigins []string
	UploadDir      string
	Metrics        *Metrics
}

// NewRouter builds the complete HTTP surface: /api, /uploads, /health and /metrics.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.Logger))
	r.Use(Recoverer(h.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(h.Gate.Inject)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "Metoden stöds inte")
	})

	r.Get("/health", h.Health)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}
	if cfg.UploadDir != "" {
		files := http.FileServer(filesOnly{http.Dir(cfg.UploadDir)})
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", files))
	}

	r.Route("/api", h.RegisterRoutes)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		if h.LoginLimiter != nil {
			r.With(h.LoginLimiter.Middleware).Post("/login", h.Login)
		} else {
			r.Post("/login", h.Login)
		}
		r.Get("/verify", h.VerifyToken)
		r.Get("/status", h.AuthStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.Gate.Require)

		r.Get("/motorcycles", h.ListMotorcycles)
		r.Post("/motorcycles", h.CreateMotorcycle)
		r.Get("/motorcycles/{id}", h.GetMotorcycle)
		r.Put("/motorcycles/{id}", h.UpdateMotorcycle)
		r.Delete("/motorcycles/{id}", h.DeleteMotorcycle)

		r.Get("/jobs", h.ListJobs)
		r.Post("/jobs", h.CreateJob)
		r.Get("/jobs/{id}", h.GetJob)
		r.Put("/jobs/{id}", h.UpdateJob)
		r.Delete("/jobs/{id}", h.DeleteJob)
		r.Patch("/jobs/{id}/complete", h.ToggleJobCompleted)

		r.Post("/jobs/{id}/images", h.UploadImage)
		r.Delete("/images/{id}", h.DeleteImage)

		r.Post("/jobs/{id}/notes", h.CreateNote)
		r.Put("/notes/{id}", h.UpdateNote)
		r.Delete("/notes/{id}", h.DeleteNote)

		r.Post("/jobs/{id}/shopping", h.CreateShoppingItem)
		r.Put("/shopping/{id}", h.UpdateShoppingItem)
		r.Patch("/shopping/{id}", h.ToggleShoppingItem)
		r.Delete("/shopping/{id}", h.DeleteShoppingItem)

		r.Get("/features", h.ListFeatures)
		r.Post("/features", h.CreateFeature)
		r.Get("/features/{id}", h.GetFeature)
		r.Put("/features/{id}", h.UpdateFeature)
		r.Patch("/features/{id}/status", h.UpdateFeatureStatus)
		r.Delete("/features/{id}", h.DeleteFeature)
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Mekkompis API körs!",
	})
}

// filesOnly hides directories so the upload dir cannot be listed.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
