package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/logger"
)

// GracefulServer wraps Echo server with graceful shutdown capabilities
type GracefulServer struct {
	echo            *echo.Echo
	logger          *logger.ZapLogger
	addr            string
	shutdownTimeout time.Duration
	components      *ShutdownManager

	ready chan struct{}
	once  sync.Once
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, host string, port int, shutdownTimeout time.Duration) *GracefulServer {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	return &GracefulServer{
		echo:            e,
		logger:          zapLogger,
		addr:            net.JoinHostPort(host, fmt.Sprint(port)),
		shutdownTimeout: shutdownTimeout,
		components:      NewShutdownManager(zapLogger),
		ready:           make(chan struct{}),
	}
}

// OnShutdown registers a cleanup run after the HTTP server stops, in reverse
// registration order
func (s *GracefulServer) OnShutdown(name string, fn func(context.Context) error) {
	s.components.Register(name, fn)
}

// Start serves until SIGINT or SIGTERM
func (s *GracefulServer) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down the server and the
// registered components
func (s *GracefulServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.echo.Listener = ln

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logger.String("address", ln.Addr().String()))
		if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.once.Do(func() { close(s.ready) })

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped unexpectedly: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info("Received shutdown signal")
	}
	return s.Shutdown()
}

// Addr returns the bound address once Run has started listening
func (s *GracefulServer) Addr() string {
	<-s.ready
	return s.echo.Listener.Addr().String()
}

// Shutdown gracefully shuts down the server
func (s *GracefulServer) Shutdown() error {
	s.logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", logger.Err(err))
		errs = append(errs, err)
	}
	if err := s.components.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	s.logger.Info("Server shutdown completed")
	return errors.Join(errs...)
}

type component struct {
	name string
	fn   func(context.Context) error
}

// ShutdownManager runs cleanup functions when the process stops
type ShutdownManager struct {
	mu         sync.Mutex
	logger     *logger.ZapLogger
	components []component
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager(zapLogger *logger.ZapLogger) *ShutdownManager {
	if zapLogger == nil {
		zapLogger = logger.NewNopLogger()
	}
	return &ShutdownManager{logger: zapLogger}
}

// Register adds a cleanup function. Nil functions are ignored.
func (sm *ShutdownManager) Register(name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.components = append(sm.components, component{name: name, fn: fn})
}

// Shutdown runs the cleanups last registered first. Every cleanup runs even
// when an earlier one fails; the failures are joined.
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	components := sm.components
	sm.components = nil
	sm.mu.Unlock()

	sm.logger.Info("Starting graceful shutdown of components", logger.Int("components", len(components)))

	var errs []error
	for i := len(components) - 1; i >= 0; i-- {
		c := components[i]
		if err := c.fn(ctx); err != nil {
			sm.logger.Error("Error during component shutdown",
				logger.String("component", c.name),
				logger.Err(err))
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}

	sm.logger.Info("All components shutdown completed")
	return errors.Join(errs...)
}
