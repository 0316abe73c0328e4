package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/go-qbe/pkg/api"
	"github.com/adfharrison1/go-qbe/pkg/storage"
)

// Server holds references to storage, router, etc.
type Server struct {
	router   *mux.Router
	dbEngine *storage.StorageEngine
	handler  *api.Handler
}

// NewServer creates a new instance of Server.
func NewServer(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	dbEngine := storage.NewStorageEngine(cfg.storageOptions...)
	s := &Server{
		router:   mux.NewRouter(),
		dbEngine: dbEngine,
		handler:  api.NewHandler(dbEngine),
	}
	// Define HTTP routes
	s.handler.RegisterRoutes(s.router)

	// Middleware runs in registration order
	s.router.Use(requestIDMiddleware)
	s.router.Use(requestLoggerMiddleware)
	if cfg.rateLimit > 0 {
		s.router.Use(rateLimitMiddleware(cfg.rateLimit, cfg.rateBurst))
		log.Printf("INFO: Rate limit set to %.1f req/s (burst %d)", cfg.rateLimit, cfg.rateBurst)
	}
	if cfg.compression {
		s.router.Use(compressionMiddleware)
	}

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: No route found for %s %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusNotFound, "no route for "+r.Method+" "+r.URL.Path)
	})

	return s
}

// requestLoggerMiddleware logs the method, URL path, status, and duration for each request.
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		elapsed := time.Since(start)
		log.Printf("INFO: Request %s %s [%s] -> %d took %s",
			r.Method, r.URL.Path, RequestID(r.Context()), sw.status, elapsed)
	})
}

// statusWriter records the status code written by a handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Flush() {
	if f, ok := sw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}

// Storage exposes the storage engine backing the server.
func (s *Server) Storage() *storage.StorageEngine {
	return s.dbEngine
}
