package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Credentials protect the /admin routes.
type Credentials struct {
	User string
	Pass string
}

func NewRouter(h *Handler, admin Credentials, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(log))
	r.Use(Metrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(Compress)

		r.Get("/health", h.Health)

		r.Route("/api", func(r chi.Router) {
			r.Get("/courses", h.Courses)
			r.Get("/courses/{code}/{period}", h.Course)
			r.Get("/departments", h.CourseDepartments)
			r.Get("/summary", h.Summary)
			r.Get("/data-status", h.DataStatus)
			r.Get("/departamentos", h.Departments)
			r.Get("/departamentos/{name}", h.Department)
		})

		r.Route("/designaciones", func(r chi.Router) {
			r.Get("/", h.Profiles)
			r.Get("/flat", h.DesignationsFlat)
			r.Get("/by-desig/{desig}", h.DesignationByDesig)
			r.Get("/{name}", h.Profile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(BasicAuth("crub-admin", admin.User, admin.Pass))
			r.Post("/cache/clear", h.ClearCache)
			r.Get("/stats", h.AdminStats)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	return r
}
