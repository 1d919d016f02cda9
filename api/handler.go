// Package api provides the HTTP API for the Syllabus catalog.
//
// Routes are registered without a prefix; the extension mounts them under a
// configurable base path (default: /api). Every response uses the
// {statusCode, message, data} envelope, and every failure the
// {statusCode, message, errors?, timestamp} envelope.
package api

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/ratelimit"
	"github.com/xraph/syllabus/report"
	"github.com/xraph/syllabus/subcategory"
)

// Handler is the root HTTP handler for the Syllabus API.
type Handler struct {
	categories    *category.Service
	subCategories *subcategory.Service
	courses       *course.Service
	reports       *report.Engine
	logger        *slog.Logger
	limiter       *ratelimit.Limiter
	mux           *http.ServeMux
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithRateLimit throttles each client address to perSecond requests.
// Zero leaves the API unthrottled.
func WithRateLimit(perSecond int) HandlerOption {
	return func(h *Handler) {
		h.limiter = ratelimit.New(perSecond)
	}
}

// NewHandler creates a new API handler.
func NewHandler(
	cats *category.Service,
	subs *subcategory.Service,
	courses *course.Service,
	reports *report.Engine,
	logger *slog.Logger,
	opts ...HandlerOption,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		categories:    cats,
		subCategories: subs,
		courses:       courses,
		reports:       reports,
		logger:        logger,
		mux:           http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	// Categories
	h.mux.HandleFunc("POST /categories", h.createCategory)
	h.mux.HandleFunc("GET /categories", h.listCategories)
	h.mux.HandleFunc("GET /categories/with-subcategory-count", h.categoriesWithSubCategoryCount)
	h.mux.HandleFunc("GET /categories/{id}", h.getCategory)
	h.mux.HandleFunc("PUT /categories/{id}", h.updateCategory)
	h.mux.HandleFunc("DELETE /categories/{id}", h.removeCategory)

	// Subcategories
	h.mux.HandleFunc("POST /subcategories", h.createSubCategory)
	h.mux.HandleFunc("GET /subcategories", h.listSubCategories)
	h.mux.HandleFunc("GET /subcategories/by-category/{categoryId}", h.subCategoriesByCategory)
	h.mux.HandleFunc("GET /subcategories/{id}", h.getSubCategory)
	h.mux.HandleFunc("PUT /subcategories/{id}", h.updateSubCategory)
	h.mux.HandleFunc("DELETE /subcategories/{id}", h.removeSubCategory)

	// Courses
	h.mux.HandleFunc("POST /courses", h.createCourse)
	h.mux.HandleFunc("GET /courses", h.listCourses)
	h.mux.HandleFunc("GET /courses/by-category/{categoryId}", h.coursesByCategory)
	h.mux.HandleFunc("GET /courses/by-subcategory/{subCategoryId}", h.coursesBySubCategory)
	h.mux.HandleFunc("GET /courses/{id}", h.getCourse)
	h.mux.HandleFunc("PUT /courses/{id}", h.updateCourse)
	h.mux.HandleFunc("DELETE /courses/{id}", h.removeCourse)

	// Reports
	h.mux.HandleFunc("GET /reports/subcategories-by-category", h.reportSubCategoriesByCategory)
	h.mux.HandleFunc("GET /reports/courses-by-level", h.reportCoursesByLevel)
	h.mux.HandleFunc("GET /reports/statistics", h.reportStatistics)
	h.mux.HandleFunc("GET /reports/course-details", h.reportCourseDetails)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.withMiddleware(h.mux).ServeHTTP(w, r)
}

func (h *Handler) withMiddleware(next http.Handler) http.Handler {
	return h.panicRecovery(h.logging(h.rateLimit(next)))
}

func (h *Handler) rateLimit(next http.Handler) http.Handler {
	if !h.limiter.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.Allow(clientKey(r)) {
			retry := int(h.limiter.RetryAfter().Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			writeError(w, http.StatusTooManyRequests, "too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller by remote host.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		h.logger.Info("api request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (h *Handler) panicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic recovered",
					"error", rec,
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, "internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// JSON helpers.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best effort
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// decode reads the request body into v, writing a 400 when it is malformed.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(r, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}
