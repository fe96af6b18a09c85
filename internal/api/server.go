// Package api serves the tracker over a local REST API with a WebSocket
// event stream.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ramonehamilton/MD-Companion/internal/api/websocket"
	"github.com/ramonehamilton/MD-Companion/internal/charts"
	"github.com/ramonehamilton/MD-Companion/internal/events"
	"github.com/ramonehamilton/MD-Companion/internal/facade"
	"github.com/ramonehamilton/MD-Companion/internal/metrics"
)

// Server represents the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	config     *Config
	logger     *zap.Logger

	controller *facade.Controller
	wsHub      *websocket.Hub
	wsObserver *websocket.Observer
	dispatcher *events.EventDispatcher
	metrics    *metrics.APIMetrics
}

// Config holds configuration for the API server.
type Config struct {
	// Host defaults to 127.0.0.1; the API is meant for the local machine.
	Host string
	Port int

	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64
	RateBurst int

	AllowedOrigins []string
	RequestTimeout time.Duration
	Charts         charts.ChartConfig
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:           "127.0.0.1",
		Port:           8765,
		RateLimit:      20,
		RateBurst:      40,
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		RequestTimeout: 60 * time.Second,
		Charts:         charts.DefaultChartConfig(),
	}
}

// NewServer creates a server over controller. Events from dispatcher are
// forwarded to WebSocket clients once Start is called.
func NewServer(cfg *Config, controller *facade.Controller, dispatcher *events.EventDispatcher, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	hub := websocket.NewHub(logger)
	s := &Server{
		router:     chi.NewRouter(),
		config:     cfg,
		logger:     logger,
		controller: controller,
		wsHub:      hub,
		wsObserver: websocket.NewObserver(hub),
		dispatcher: dispatcher,
		metrics:    metrics.NewAPIMetrics(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.Middleware)

	if s.config.RateLimit > 0 {
		s.router.Use(rateLimitMiddleware(s.config.RateLimit, s.config.RateBurst))
	}

	if s.config.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.config.RequestTimeout))
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Content-Type enforcement for POST/PUT only
	s.router.Use(jsonContentTypeMiddleware)
}

// jsonContentTypeMiddleware enforces application/json content-type for requests with bodies.
func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if (r.Method == http.MethodPost || r.Method == http.MethodPut) && r.ContentLength != 0 {
			contentType := r.Header.Get("Content-Type")
			if contentType != "application/json" && !strings.HasPrefix(contentType, "application/json;") {
				http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the WebSocket hub and begins serving in a goroutine. It
// returns once the listener is bound.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	go s.wsHub.Run()
	if s.dispatcher != nil {
		s.dispatcher.Register(s.wsObserver)
		s.logger.Debug("forwarding events to WebSocket clients", zap.Int("observers", s.dispatcher.ObserverCount()))
	}

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", zap.Error(err))
		}
	}()

	return nil
}

// Shutdown stops forwarding events, closes WebSocket clients and gracefully
// shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.dispatcher != nil {
		s.dispatcher.Unregister(s.wsObserver)
	}
	s.wsHub.Stop()

	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// URL returns the base URL the server listens on.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port)))
}

// Metrics returns the request metrics collector.
func (s *Server) Metrics() *metrics.APIMetrics {
	return s.metrics
}

// WebSocketHub returns the WebSocket hub.
func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}
