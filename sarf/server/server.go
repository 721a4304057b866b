// Package server exposes the lexicon over HTTP. It owns all transport
// concerns — routing, JSON encoding, request validation and status
// mapping; the lexicon below it knows nothing about HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/sarfdb/sarf/sarf/lexicon"
)

// Server wraps a Lexicon with a chi router.
type Server struct {
	lex *lexicon.Lexicon
	log zerolog.Logger
}

// New creates a Server over lex.
func New(lex *lexicon.Lexicon, log zerolog.Logger) *Server {
	return &Server{lex: lex, log: log}
}

// Router builds the HTTP API. Routes mirror the operation contract:
// root index, pattern index, generator, validator, plus stats/health.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Get("/health", s.handleHealth)

		r.Route("/roots", func(r chi.Router) {
			r.Post("/add", s.handleAddRoot)
			r.Post("/upload", s.handleUploadRoots)
			r.Get("/all", s.handleListRoots)
			r.Get("/tree", s.handleRootTree)
			r.Put("/update", s.handleUpdateRoot)
			r.Get("/search/{root}", s.handleSearchRoot)
			r.Get("/{root}/words", s.handleRootWords)
			r.Delete("/{root}", s.handleDeleteRoot)
		})

		r.Route("/patterns", func(r chi.Router) {
			r.Post("/add", s.handleAddPattern)
			r.Get("/all", s.handleListPatterns)
			r.Get("/table", s.handlePatternTable)
			r.Put("/update", s.handleUpdatePattern)
			r.Get("/{template}", s.handleGetPattern)
			r.Delete("/{template}", s.handleDeletePattern)
		})

		r.Route("/generator", func(r chi.Router) {
			r.Post("/generate", s.handleGenerate)
			r.Post("/generate-multiple", s.handleGenerateMultiple)
			r.Post("/derivatives", s.handleDerivatives)
		})

		r.Post("/validator/validate", s.handleValidate)
	})

	return r
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("HTTP API listening")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
