// Package api exposes the tutoring pipeline and study sessions over
// HTTP. All request and response bodies are JSON except the multipart
// file-upload endpoint.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aturs3001/ai-math-tutor/internal/extract"
	"github.com/aturs3001/ai-math-tutor/internal/study"
	"github.com/aturs3001/ai-math-tutor/internal/tutor"
)

// Server holds the handler dependencies.
type Server struct {
	tutor     *tutor.Service
	machine   *study.Machine
	extractor *extract.Extractor
	logger    *slog.Logger

	maxUploadBytes int64
	model          string
}

// Options configures the HTTP server surface.
type Options struct {
	// MaxUploadBytes caps multipart uploads; zero means the extract
	// package default.
	MaxUploadBytes int64

	// Model is the configured model id, reported by the health endpoint.
	Model string
}

// NewServer wires the HTTP surface over the tutoring service, the study
// session machine, and the file extractor.
func NewServer(t *tutor.Service, m *study.Machine, e *extract.Extractor, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	max := opts.MaxUploadBytes
	if max <= 0 {
		max = extract.MaxUploadBytes
	}
	return &Server{
		tutor:          t,
		machine:        m,
		extractor:      e,
		logger:         logger,
		maxUploadBytes: max,
		model:          opts.Model,
	}
}

// Router builds the chi router with the full route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/solve", s.handleSolve)
		r.Post("/solve/file", s.handleSolveFile)

		r.Post("/quiz/generate", s.handleQuizGenerate)
		r.Post("/quiz/evaluate", s.handleQuizEvaluate)

		r.Route("/study", func(r chi.Router) {
			r.Post("/start", s.handleStudyStart)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleStudyGet)
				r.Delete("/", s.handleStudyEnd)
				r.Post("/hint", s.handleStudyHint)
				r.Post("/check", s.handleStudyCheck)
				r.Post("/reveal", s.handleStudyReveal)
			})
		})
	})

	return r
}

// requestLogger emits one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
