package httpapi

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

type Router struct {
	router *chi.Mux
}

func NewRouter(router *chi.Mux) *Router {
	return &Router{router: router}
}

// Init mounts the middleware chain and every route of h.
func (r *Router) Init(h *SearchHandler) {
	r.router.Use(requestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(middleware.Recoverer)
	r.router.Use(logRequests(h.logger))

	r.router.Get("/health", health)
	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerSearchRoutes(v1, h)
	})
}

func registerSearchRoutes(router chi.Router, h *SearchHandler) {
	router.Get("/search", h.search)
	router.Get("/suggest", h.suggest)
	router.Get("/facets", h.facets)
	router.Get("/categories", h.categories)
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/featured", h.featured)
		pr.Get("/new", h.newArrivalsList)
	})
}

// Handler builds a ready-to-serve handler around h.
func Handler(h *SearchHandler) http.Handler {
	mux := chi.NewRouter()
	NewRouter(mux).Init(h)
	return mux
}

// requestID keeps a client supplied id or assigns a uuid, echoing it back.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func logRequests(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Debug("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"took", time.Since(start),
				"id", r.Header.Get(RequestIDHeader),
			)
		})
	}
}
