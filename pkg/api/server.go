package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host         string        // Host to bind to (default "localhost")
	Port         int           // Port to listen on (default 8080)
	ReadTimeout  time.Duration // Read timeout (default 30s)
	WriteTimeout time.Duration // Write timeout (default 30s; SSE streams need headroom)
	IdleTimeout  time.Duration // Idle timeout (default 60s)
	MaxSessions  int           // Max concurrent games (default 256)
	StepInterval time.Duration // Animation/AI tick cadence (default 120ms)
}

// DefaultConfig returns a ServerConfig with sensible defaults.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Host:         "localhost",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		MaxSessions:  256,
		StepInterval: 120 * time.Millisecond,
	}
}

// Server is the HTTP API server.
type Server struct {
	config   ServerConfig
	pool     *SessionPool
	handlers *Handlers
	server   *http.Server
	version  string
}

// NewServer creates a new API server with its own session pool.
func NewServer(config ServerConfig, version string) *Server {
	pool := NewSessionPool(PoolConfig{
		MaxSessions:  config.MaxSessions,
		StepInterval: config.StepInterval,
	})
	return &Server{
		config:   config,
		pool:     pool,
		handlers: NewHandlers(pool, version),
		version:  version,
	}
}

// Pool returns the session pool for monitoring.
func (s *Server) Pool() *SessionPool {
	return s.pool
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs all requests.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handlers.Health)
	mux.HandleFunc("POST /api/games", s.handlers.CreateGame)
	mux.HandleFunc("GET /api/games/{id}", s.handlers.GameState)
	mux.HandleFunc("POST /api/games/{id}/roll", s.handlers.Roll)
	mux.HandleFunc("POST /api/games/{id}/select", s.handlers.Select)
	mux.HandleFunc("POST /api/games/{id}/restart", s.handlers.Restart)
	mux.HandleFunc("DELETE /api/games/{id}", s.handlers.DeleteGame)
	mux.HandleFunc("GET /api/games/{id}/events", s.handlers.Events)
	mux.HandleFunc("POST /api/legal", s.handlers.Legal)
	mux.HandleFunc("/api/ws", s.handlers.WebSocket)

	// Apply middleware
	handler := corsMiddleware(loggingMiddleware(mux))

	return handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Printf("Starting Ludo API server v%s on %s", s.version, addr)
	log.Printf("Endpoints:")
	log.Printf("  GET    /api/health              - Health check")
	log.Printf("  POST   /api/games               - Create game")
	log.Printf("  GET    /api/games/{id}          - Game state")
	log.Printf("  POST   /api/games/{id}/roll     - Roll the die")
	log.Printf("  POST   /api/games/{id}/select   - Choose a token")
	log.Printf("  POST   /api/games/{id}/restart  - Restart game")
	log.Printf("  DELETE /api/games/{id}          - Remove game")
	log.Printf("  GET    /api/games/{id}/events   - SSE event stream")
	log.Printf("  POST   /api/legal               - Legal-move query")
	log.Printf("  WS     /api/ws                  - WebSocket for real-time play")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server and stops all sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.pool.Close()
	return s.server.Shutdown(ctx)
}

// ListenAndServeWithGracefulShutdown starts the server and handles shutdown signals.
func (s *Server) ListenAndServeWithGracefulShutdown() error {
	// Channel to listen for errors from server
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until signal or error
	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Printf("Received signal %v, shutting down...", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
