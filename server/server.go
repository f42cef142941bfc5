package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/scribeproxy/logger"
	"github.com/kbukum/scribeproxy/server/endpoint"
	"github.com/kbukum/scribeproxy/server/middleware"
)

// System endpoint paths.
const (
	PathHealth  = "/health"
	PathInfo    = "/info"
	PathMetrics = "/metrics"
)

// Server is an HTTP server backed by gin, with extra http.Handler mounts on
// the same ServeMux and port.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	mux        *http.ServeMux
	handler    http.Handler
	config     Config
	log        *logger.Logger
}

// New creates a new Server. The gin engine is created but no middleware is
// applied yet.
func New(cfg Config, log *logger.Logger) *Server {
	// Set gin mode based on global zerolog level.
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	mux := http.NewServeMux()

	// gin is the fallback for everything not mounted explicitly.
	mux.Handle("/", engine)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s := &Server{
		engine:  engine,
		mux:     mux,
		handler: mux,
		config:  cfg,
		log:     log.WithComponent("server"),
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.h2cHandler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(cfg.IdleTimeout) * time.Second,
	}
	return s
}

// h2cHandler wraps the current handler chain for HTTP/2 cleartext.
func (s *Server) h2cHandler() http.Handler {
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          time.Duration(s.config.IdleTimeout) * time.Second,
	}
	return h2c.NewHandler(s.handler, h2s)
}

// GinEngine returns the underlying gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the full handler chain, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Handle mounts an http.Handler at the given pattern on the root ServeMux.
// Patterns may carry a method ("POST /{$}"); anything unmatched falls through
// to gin.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", map[string]interface{}{
		"pattern": pattern,
	})
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	return nil
}

// Stop gracefully shuts down the server, letting in-flight transcriptions
// finish within the shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(s.config.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ApplyMiddleware wraps the whole ServeMux, so the middleware covers gin
// routes and every other mounted handler. The first middleware is outermost.
func (s *Server) ApplyMiddleware(mws ...middleware.Middleware) {
	s.handler = middleware.Chain(mws...)(s.handler)
	s.httpServer.Handler = s.h2cHandler()
}

// RegisterDefaultEndpoints registers /health, /info and /metrics.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker endpoint.HealthChecker, gatherer prometheus.Gatherer) {
	s.engine.GET(PathHealth, endpoint.Health(serviceName, checker))
	s.engine.GET(PathInfo, endpoint.Info(serviceName))
	if gatherer != nil {
		s.engine.GET(PathMetrics, endpoint.Metrics(gatherer))
	}
}

// ApplyDefaults applies the standard middleware stack (recovery, request ID,
// request logging, request metrics, CORS, body-size limit) and registers the
// default endpoints. routes lists the paths given their own metrics label.
func (s *Server) ApplyDefaults(serviceName string, checker endpoint.HealthChecker, reg *prometheus.Registry, routes ...string) {
	mws := []middleware.Middleware{
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.RequestLogger(s.log),
	}
	if reg != nil {
		known := append([]string{PathHealth, PathInfo, PathMetrics}, routes...)
		mws = append(mws, middleware.NewHTTPMetrics(reg).Middleware(known...))
	}
	mws = append(mws,
		middleware.CORS(&s.config.CORS),
		middleware.BodySizeLimit(s.config.MaxBodySize),
	)
	s.ApplyMiddleware(mws...)

	var gatherer prometheus.Gatherer
	if reg != nil {
		gatherer = reg
	}
	s.RegisterDefaultEndpoints(serviceName, checker, gatherer)
}
