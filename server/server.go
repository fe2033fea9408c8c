package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apperrors "github.com/spiralnet/launchpad/errors"
	"github.com/spiralnet/launchpad/logger"
	"github.com/spiralnet/launchpad/observability"
	"github.com/spiralnet/launchpad/server/endpoint"
	"github.com/spiralnet/launchpad/server/middleware"
)

// Server owns the single HTTP listener of a launchpad process. The Gin
// engine carries the system endpoints; the application handler is mounted
// as the fallback for every path the engine does not claim.
type Server struct {
	config  Config
	log     *logger.Logger
	engine  *gin.Engine
	metrics *observability.ServerMetrics

	mu       sync.Mutex
	app      http.Handler
	httpSrv  *http.Server
	listener net.Listener
}

// New creates a Server from the given configuration. The listener is not
// bound until Start.
func New(cfg Config, log *logger.Logger) *Server {
	cfg.ApplyDefaults()
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.RedirectTrailingSlash = false

	return &Server{
		config: cfg,
		log:    log.WithComponent("server"),
		engine: engine,
	}
}

// Engine exposes the underlying Gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// WithMetrics enables per-request telemetry recording.
func (s *Server) WithMetrics(m *observability.ServerMetrics) *Server {
	s.metrics = m
	return s
}

// RegisterSystemEndpoints installs the operational surface: health probes,
// build information and runtime metrics.
func (s *Server) RegisterSystemEndpoints(serviceName string, checker endpoint.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(serviceName, checker))
	s.engine.GET("/livez", endpoint.Liveness(serviceName))
	s.engine.GET("/readyz", endpoint.Readiness(serviceName, checker))
	s.engine.GET("/info", endpoint.Info(serviceName))
	s.engine.GET("/version", endpoint.Version())
	s.engine.GET("/metrics", endpoint.Metrics())
}

// MountApplication installs the delegated application handler. Every request
// that does not match a system endpoint is dispatched to it unchanged. The
// second mount wins; the launcher mounts exactly once.
func (s *Server) MountApplication(h http.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app = h
	s.engine.NoRoute(gin.WrapH(h))
}

// Application returns the mounted application handler, nil before mounting.
func (s *Server) Application() http.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app
}

// Handler returns the fully assembled handler: middleware chain around the
// engine, wrapped for cleartext HTTP/2. Useful for in-process testing
// without a listener.
func (s *Server) Handler() http.Handler {
	mws := []middleware.Middleware{
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CORS(s.config.CORS),
		middleware.BodySizeLimit(s.config.MaxBodySize),
	}
	if s.config.RateLimit > 0 {
		mws = append(mws, middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerMinute: s.config.RateLimit,
		}))
	}
	if s.metrics != nil {
		mws = append(mws, middleware.Telemetry(s.metrics))
	}
	mws = append(mws, middleware.RequestLogger())

	chained := middleware.Chain(mws...)(s.engine)
	return h2c.NewHandler(chained, &http2.Server{})
}

// Start binds the listener and begins serving in the background. A failed
// bind returns a BIND_FAILED error and leaves the server stopped; Start
// never retries and never falls back to another port.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return fmt.Errorf("server already started on %s", s.listener.Addr())
	}
	if err := s.config.Validate(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return apperrors.BindFailed(addr, err)
	}
	s.listener = ln

	s.httpSrv = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.config.IdleTimeout) * time.Second,
	}

	s.log.Info("listener bound", map[string]interface{}{
		logger.FieldAddr: ln.Addr().String(),
	})

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("server stopped unexpectedly", map[string]interface{}{
				logger.FieldError: err.Error(),
			})
		}
	}()
	return nil
}

// Stop drains in-flight requests within the context deadline, then force
// closes whatever remains. The listener stops accepting immediately.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpSrv
	s.httpSrv = nil
	s.listener = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		srv.Close()
		return fmt.Errorf("graceful shutdown incomplete: %w", err)
	}
	return nil
}

// Addr returns the bound address after Start, or the configured address
// before it. With port 0 the bound address carries the ephemeral port.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Port returns the bound port after Start, or the configured port before it.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		if tcp, ok := s.listener.Addr().(*net.TCPAddr); ok {
			return tcp.Port
		}
	}
	return s.config.Port
}

func (s *Server) bound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener != nil
}

func handlerShortName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		return full[i+1:]
	}
	return full
}
