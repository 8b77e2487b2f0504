// Package server exposes the parse pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/parse?format=json|text|dot|svg|png|jpg[&detailed=true][&rankdir=LR]
//	GET  /healthz
//	GET  /version
//
// The request body of /v1/parse is a GML document. The response body is the
// rendered artifact with a matching Content-Type; graph sizes are reported in
// the X-Gml-Nodes, X-Gml-Anon and X-Gml-Edges headers.
//
// Parse failures return 422 with a JSON body:
//
//	{"code": "STRUCTURAL_ERROR", "message": "missing id", "pos": 4}
//
// Every response carries an X-Request-Id header, echoing the client's value
// when one was sent.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gml/pkg/pipeline"
)

// Defaults for [Options].
const (
	DefaultAddr    = ":8080"
	DefaultMaxBody = 10 << 20

	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address, DefaultAddr when empty.
	Addr string
	// MaxBody caps the request body size in bytes, DefaultMaxBody when <= 0.
	MaxBody int64
}

// Server serves the pipeline over HTTP.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	addr    string
	maxBody int64
	router  chi.Router
}

// New builds a server around runner. A nil logger uses the runner's.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		addr:    opts.Addr,
		maxBody: opts.MaxBody,
	}
	if s.addr == "" {
		s.addr = DefaultAddr
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBody
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
