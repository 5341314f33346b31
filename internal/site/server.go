package site

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"homepage/internal/logger"
)

// Server wraps the http.Server to provide graceful shutdown.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// NewServer creates and configures a new site server.
func NewServer(port string, h *Handlers) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           NewRouter(h),
			ReadHeaderTimeout: 10 * time.Second,
			// The status page holds the response until every probe settles.
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		log: logger.WithComponent("server"),
	}
}

// Start runs the HTTP server in a new goroutine. Listen failures are sent on
// the returned channel.
func (s *Server) Start() <-chan error {
	errc := make(chan error, 1)
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting HTTP server")
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	return errc
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
