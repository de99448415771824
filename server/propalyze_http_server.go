package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"propalyze/logger"
)

type PropalyzeHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	addr            string
	shutdownTimeout time.Duration
	allowedOrigins  []string
	logger          *slog.Logger
}

func NewPropalyzeHttpServer(router *Router, muxRouter *mux.Router, addr string, shutdownTimeout time.Duration, allowedOrigins []string, l *slog.Logger) *PropalyzeHttpServer {
	return &PropalyzeHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		allowedOrigins:  allowedOrigins,
		logger:          logger.Component(l, "PropalyzeHttpServer"),
	}
}

// Handler registers the routes and wraps them in the CORS and request logging middleware.
func (s *PropalyzeHttpServer) Handler() http.Handler {
	s.router.RegisterRoutes()
	return CORS(s.allowedOrigins)(RequestLogger(s.logger)(s.muxRouter))
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *PropalyzeHttpServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("ListenAndServe(): %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down the server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("Server exiting")
	return nil
}
