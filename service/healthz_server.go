package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// HealthzServer serves liveness checks and the execution status snapshot.
type HealthzServer struct {
	ctx    context.Context
	server *http.Server
	status StatusSource
	log    zerolog.Logger
}

func NewHealthzServer(log zerolog.Logger, status StatusSource) *HealthzServer {
	return &HealthzServer{
		status: status,
		log:    log.With().Str("server", "healthz").Logger(),
	}
}

func (h *HealthzServer) Start(ctx context.Context, addr string) error {
	hdlr := http.NewServeMux()
	hdlr.HandleFunc("/healthz", h.Handle)
	hdlr.HandleFunc("/status", h.HandleStatus)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	server := &http.Server{
		Handler: c.Handler(hdlr),
		Addr:    addr,
	}
	h.server = server
	h.ctx = ctx
	return h.server.ListenAndServe()
}

func (h *HealthzServer) Shutdown() error {
	return h.server.Shutdown(h.ctx)
}

func (h *HealthzServer) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Str("path", r.URL.Path).Msg("received health check request")
	w.Write([]byte("OK")) //nolint:errcheck
}

// HandleStatus serves the current execution statistics as JSON.
func (h *HealthzServer) HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.status == nil {
		w.Write([]byte("{}")) //nolint:errcheck
		return
	}
	if err := json.NewEncoder(w).Encode(h.status.StatusPayload()); err != nil {
		h.log.Error().Err(err).Msg("failed to encode status payload")
	}
}
