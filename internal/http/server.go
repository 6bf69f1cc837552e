package http

import (
	"context"
	"net/http"
	"net/http/pprof"
	"time"

	"screen_navigator/internal/pkg/errors"
	"screen_navigator/internal/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Server is one listener of the process: the api, metrics or pprof server.
type Server struct {
	name    string
	timeout time.Duration
	server  *http.Server
	log     *log.Logger
}

func NewHttpServer(ctx context.Context, config *HTTPServerConfig, router *chi.Mux, log *log.Logger) *Server {
	return &Server{
		name:    `api`,
		timeout: config.Timeouts.ShutdownWait,
		server: &http.Server{
			Addr:              config.Host,
			Handler:           router,
			ReadTimeout:       config.Timeouts.Read,
			ReadHeaderTimeout: config.Timeouts.ReadHeader,
			WriteTimeout:      config.Timeouts.Write,
			IdleTimeout:       config.Timeouts.Idle,
		},
		log: log,
	}
}

func NewMetricsServer(host string, timeout time.Duration, log *log.Logger) *Server {
	reg := metrics.MetricsRegister()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &Server{
		name:    `metrics`,
		timeout: timeout,
		server:  &http.Server{Addr: host, Handler: mux},
		log:     log,
	}
}

func NewPprofServer(host string, timeout time.Duration, log *log.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &Server{
		name:    `pprof`,
		timeout: timeout,
		server:  &http.Server{Addr: host, Handler: mux},
		log:     log,
	}
}

// Start blocks until the server is shut down. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.WithField(`server`, s.name).Info("server starting on ", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, s.name+` server failed`)
	}
	return nil
}

func (s *Server) Stop() error {
	if s.server == nil {
		return errors.New("server is not initialized")
	}
	entry := s.log.WithField(`server`, s.name)
	entry.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, `failed to shutdown `+s.name+` server`)
	}

	entry.Info("server exiting")
	return nil
}
