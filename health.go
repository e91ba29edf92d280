package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

const (
	serviceName    = "telegram-command-bot"
	serviceVersion = "1.0.0"
)

type healthStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Service       string  `json:"service"`
	Version       string  `json:"version"`
}

// healthServer answers liveness probes while the bot is polling.
type healthServer struct {
	clock   Clock
	started time.Time
	srv     *http.Server
}

func newHealthServer(addr string, clock Clock) *healthServer {
	h := &healthServer{
		clock:   clock,
		started: clock.Now(),
	}
	h.srv = &http.Server{
		Addr:              addr,
		Handler:           h.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return h
}

func (h *healthServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleRoot)
	return mux
}

func (h *healthServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	uptime := h.clock.Now().Sub(h.started).Seconds()
	writeJSON(w, healthStatus{
		Status:        "healthy",
		UptimeSeconds: math.Round(uptime*100) / 100,
		Service:       serviceName,
		Version:       serviceVersion,
	})
}

func (h *healthServer) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{
		"message": "Telegram Command Bot",
		"status":  "online",
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ErrorLogger.Printf("Error writing health response: %v", err)
	}
}

// Run serves until ctx is cancelled, then shuts the listener down.
func (h *healthServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- h.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("health server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return h.srv.Shutdown(shutdownCtx)
	}
}
