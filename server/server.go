package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/transit-fares/internal"
	"github.com/theoremus-urban-solutions/transit-fares/planner"
)

// Server serves quotes from one Planner.
type Server struct {
	planner *planner.Planner
	addr    string
	now     func() time.Time
}

// New creates a server for p listening on addr.
func New(p *planner.Planner, addr string) *Server {
	return &Server{planner: p, addr: addr, now: time.Now}
}

// Handler returns the routed handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		logRequests,
	)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/stations", s.handleStations)
		r.Get("/route", s.handleRoute)
		r.Post("/quote", s.handleQuote)
	})
	return r
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	eg.Go(func() error {
		internal.Infof("server listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		internal.Infof("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		internal.Infof("server shut down successfully")
		return nil
	})

	return eg.Wait()
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		internal.Debugf("%s %s -> %d (%s)", r.Method, r.URL.RequestURI(), ww.Status(), time.Since(start).Round(time.Microsecond))
	})
}
