// Package api exposes the vault ledger over HTTP and WebSocket.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cosmossdk.io/log"

	"github.com/openalpha/piggy-vault/api/handlers"
	"github.com/openalpha/piggy-vault/api/types"
	"github.com/openalpha/piggy-vault/api/websocket"
	"github.com/openalpha/piggy-vault/metrics"
)

// Server represents the API server.
type Server struct {
	httpServer *http.Server
	hub        *websocket.Hub
	config     *Config

	vaultService types.VaultService
	vaultHandler *handlers.VaultHandler

	logger log.Logger
}

// Config contains server configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns default configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// NewServer creates an API server over a vault service.
func NewServer(config *Config, svc types.VaultService, logger log.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	s := &Server{
		config:       config,
		hub:          websocket.NewHub(websocket.DefaultHubConfig()),
		vaultService: svc,
		logger:       logger.With("module", "api"),
	}
	s.vaultHandler = handlers.NewVaultHandler(svc)
	return s
}

// Hub returns the WebSocket hub, to be wired as an event sink.
func (s *Server) Hub() *websocket.Hub {
	return s.hub
}

// Start starts the API server. Blocks until the listener fails or the
// server is stopped.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/health", s.handleHealth)

	// Pool listing
	mux.HandleFunc("/v1/vault/pools", s.vaultHandler.GetPools)

	// Staking operations
	mux.HandleFunc("/v1/vault/stake", s.vaultHandler.Stake)
	mux.HandleFunc("/v1/vault/unstake", s.vaultHandler.Unstake)
	mux.HandleFunc("/v1/vault/fund-rewards", s.vaultHandler.FundRewards)

	// Piggy operations
	mux.HandleFunc("/v1/vault/deposit", s.vaultHandler.Deposit)
	mux.HandleFunc("/v1/vault/claim", s.vaultHandler.Claim)

	// User-specific endpoints
	mux.HandleFunc("/v1/vault/user/", s.vaultHandler.HandleUserRoutes)

	// WebSocket
	mux.HandleFunc("/ws", s.hub.ServeWS)

	// Prometheus metrics
	mux.Handle("/metrics", metrics.Handler())

	handler := corsMiddleware(instrumentMiddleware(mux))

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	go s.hub.Run()
	go s.poolSnapshotLoop()

	s.logger.Info("API server starting", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// poolSnapshotLoop keeps the hub's pool snapshot fresh for the pools
// channel.
func (s *Server) poolSnapshotLoop() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		pools, err := s.vaultService.GetPools()
		if err != nil {
			continue
		}
		s.hub.UpdatePoolSnapshot(pools)
	}
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"clients":   s.hub.GetClientCount(),
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// instrumentMiddleware records request counts and latency.
func instrumentMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.NewTimer()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.GetCollector().RecordAPIRequest(
			r.Method, r.URL.Path, strconv.Itoa(sw.status), timer.ElapsedMs())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
