// Package server provides the HTTP REST API for the ATS optimizer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/ats-optimizer/internal/server/ratelimit"
	"github.com/jonathan/ats-optimizer/internal/store"
)

// Server represents the HTTP server. The store is optional; endpoints
// that need persistence return 503 when it is absent.
type Server struct {
	httpServer  *http.Server
	db          *store.DB
	log         *zap.Logger
	validate    *validator.Validate
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Addr string
}

// New creates a new server instance
func New(cfg Config, db *store.DB, log *zap.Logger) *Server {
	s := &Server{
		db:          db,
		log:         log,
		validate:    validator.New(),
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("PATCH /jobs/{id}", s.handleUpdateJob)
	mux.HandleFunc("GET /jobs/{id}/applications", s.handleJobApplications)
	mux.HandleFunc("GET /search-runs", s.handleListSearchRuns)
	mux.HandleFunc("POST /analyze/score", s.handleAnalyzeScore)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the configured HTTP handler, for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// withRateLimit rejects requests over the per-client budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := clientAddr(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddr extracts a client identifier from the request
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// requireDB guards endpoints that need persistence
func (s *Server) requireDB(w http.ResponseWriter) bool {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database not configured")
		return false
	}
	return true
}
