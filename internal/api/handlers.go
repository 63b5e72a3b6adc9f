// Package api exposes the aggregated views over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"crub-courses/internal/cache"
	"crub-courses/internal/domain"
	"crub-courses/internal/service"
)

// Backend is the read surface the handlers need; *service.Service satisfies it.
type Backend interface {
	Health(ctx context.Context) ([]string, error)
	Courses(ctx context.Context, f service.CourseFilter) ([]domain.Course, error)
	Course(ctx context.Context, code string, period domain.Period) (domain.Course, error)
	CourseDepartments(ctx context.Context) ([]string, error)
	Summary(ctx context.Context) (domain.Summary, error)
	Status(ctx context.Context) (domain.SourceStatus, error)
	Designations(ctx context.Context) (domain.DesignationSet, error)
	Designation(ctx context.Context, desig string) (domain.Designation, error)
	Profiles(ctx context.Context) (domain.ProfileSet, error)
	Profile(ctx context.Context, name string) (domain.PersonProfile, error)
	Departments(ctx context.Context) ([]domain.DepartmentStats, error)
	Department(ctx context.Context, name string) (service.Department, error)
	InvalidateDetails()
	CacheStatus() cache.Status
	AdminStats(ctx context.Context) (service.AdminStats, error)
}

type Handler struct {
	svc Backend
	log *zap.Logger
	now func() time.Time
}

func NewHandler(svc Backend, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log.With(zap.String("component", "api")), now: time.Now}
}

// fail writes the mapped error response. Only 5xx are logged here; the request
// logger already records the status of every call.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= 500 {
		h.log.Error("request failed",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeError(w, status, code, err.Error())
}

func respond[T any](h *Handler, w http.ResponseWriter, r *http.Request, v T, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Sheets    []string  `json:"sheets,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Health(r.Context())
	if err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Error: err.Error(), Timestamp: h.now()})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Sheets: names, Timestamp: h.now()})
}

func (h *Handler) Courses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	courses, err := h.svc.Courses(r.Context(), service.CourseFilter{
		Department: q.Get("department"),
		Area:       q.Get("area"),
		Career:     q.Get("career"),
	})
	respond(h, w, r, courses, err)
}

func (h *Handler) Course(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Course(r.Context(), chi.URLParam(r, "code"), domain.Period(chi.URLParam(r, "period")))
	respond(h, w, r, c, err)
}

func (h *Handler) CourseDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.svc.CourseDepartments(r.Context())
	respond(h, w, r, depts, err)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	respond(h, w, r, s, err)
}

func (h *Handler) DataStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status(r.Context())
	respond(h, w, r, st, err)
}

func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	set, err := h.svc.Profiles(r.Context())
	respond(h, w, r, set, err)
}

func (h *Handler) DesignationsFlat(w http.ResponseWriter, r *http.Request) {
	set, err := h.svc.Designations(r.Context())
	respond(h, w, r, set, err)
}

func (h *Handler) DesignationByDesig(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Designation(r.Context(), chi.URLParam(r, "desig"))
	respond(h, w, r, d, err)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profile(r.Context(), chi.URLParam(r, "name"))
	respond(h, w, r, p, err)
}

type departmentsResponse struct {
	TotalDepartments int                      `json:"total_departamentos"`
	Departments      []domain.DepartmentStats `json:"departamentos"`
}

func (h *Handler) Departments(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Departments(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, departmentsResponse{TotalDepartments: len(stats), Departments: stats})
}

func (h *Handler) Department(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Department(r.Context(), chi.URLParam(r, "name"))
	respond(h, w, r, d, err)
}

type clearResponse struct {
	Message string       `json:"message"`
	Cache   cache.Status `json:"cache"`
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.svc.InvalidateDetails()
	h.log.Info("cache cleared by admin", zap.String("request_id", RequestIDFrom(r.Context())))
	writeJSON(w, http.StatusOK, clearResponse{Message: "cache cleared", Cache: h.svc.CacheStatus()})
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.AdminStats(r.Context())
	respond(h, w, r, st, err)
}
