package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"readboard/internal/dashboard"
	"readboard/internal/roster"
	"readboard/web"
)

// Version is reported by /v1/version.
const Version = "0.3.0"

// Server holds the dashboard's HTTP surface: the aggregated JSON API, the
// single-user view-state session and the embedded web UI.
type Server struct {
	loader    *roster.Loader
	teacherID string
	logger    *zap.Logger

	// Single-user session state. Guarded because view endpoints and view
	// reads may race; the state value itself is immutable.
	mu    sync.Mutex
	state dashboard.State
}

// New creates the server and its router
func New(loader *roster.Loader, teacherID string, logger *zap.Logger) http.Handler {
	s := &Server{
		loader:    loader,
		teacherID: teacherID,
		logger:    logger,
		state:     dashboard.NewState(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(v chi.Router) {
		v.Get("/health", s.health)
		v.Get("/version", s.version)

		v.Get("/teacher", s.getTeacher)
		v.Get("/students", s.listStudents)
		v.Get("/students/{id}", s.getStudent)
		v.Get("/students/{id}/books/{bookID}", s.getStudentBook)
		v.Get("/overview", s.getOverview)

		v.Get("/view", s.getView)
		v.Post("/view/students/{id}", s.viewSelectStudent)
		v.Post("/view/books/{id}", s.viewSelectBook)
		v.Post("/view/back", s.viewBack)
		v.Put("/view/mode", s.viewSetMode)
		v.Put("/view/search", s.viewSetSearch)
	})

	r.Get("/", s.handleIndex)

	return r
}

// requestLogger logs one line per request with the chi request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("Request handled",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleIndex serves the dashboard page from the embedded filesystem
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	content, err := web.Content.ReadFile("index.html")
	if err != nil {
		s.logger.Error("Failed to read embedded index.html", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "dashboard page unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(content)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": Version})
}
