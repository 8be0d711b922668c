// Package service runs the auxiliary HTTP servers: health checks, execution
// status, and Prometheus metrics.
package service

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/metrics"
)

const (
	HealthzHost = "0.0.0.0"
	HealthzPort = "8080"

	MetricsHost = "0.0.0.0"
	MetricsPort = "7300"
)

// StatusSource provides the data served by the /status endpoint.
type StatusSource interface {
	StatusPayload() any
}

type Service struct {
	Healthz *HealthzServer
	Metrics *MetricsServer

	log zerolog.Logger
}

func New(log zerolog.Logger, status StatusSource) *Service {
	s := &Service{
		Healthz: NewHealthzServer(log, status),
		Metrics: &MetricsServer{},
		log:     log.With().Str("component", "service").Logger(),
	}
	return s
}

func (s *Service) Start(ctx context.Context) {
	s.log.Info().Msg("service starting")

	go func() {
		addr := net.JoinHostPort(HealthzHost, HealthzPort)
		s.log.Info().Str("addr", addr).Msg("starting healthz server")
		if err := s.Healthz.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("error starting healthz server")
			metrics.RecordErrorDetails("error starting healthz server", err)
		}
	}()

	go func() {
		addr := net.JoinHostPort(MetricsHost, MetricsPort)
		s.log.Info().Str("addr", addr).Msg("starting metrics server")
		if err := s.Metrics.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("error starting metrics server")
			metrics.RecordErrorDetails("error starting metrics server", err)
		}
	}()

	s.log.Info().Msg("service started")
}

func (s *Service) Shutdown() {
	s.log.Info().Msg("service shutting down")

	_ = s.Healthz.Shutdown()
	s.log.Info().Msg("healthz stopped")

	_ = s.Metrics.Shutdown()
	s.log.Info().Msg("metrics stopped")

	s.log.Info().Msg("service stopped")
}
