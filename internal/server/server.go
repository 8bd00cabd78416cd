// Package server exposes the comparison engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/parser"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	shutdownTimeout = 5 * time.Second
)

// UnitReader turns uploaded bytes into source units
type UnitReader interface {
	UnitFromBytes(name string, content []byte, language domain.Language) (domain.SourceUnit, error)
}

// Options holds the request defaults and limits of the API
type Options struct {
	Threshold     float64
	MaxInputBytes int64
	MaxUploadMB   int
}

// Server serves the comparison API
type Server struct {
	service   domain.CompareService
	reader    UnitReader
	formatter domain.CompareOutputFormatter
	registry  *parser.Registry
	options   Options
	logger    *slog.Logger
}

// New creates a server. Zero options fall back to the domain defaults.
func New(service domain.CompareService, reader UnitReader, formatter domain.CompareOutputFormatter, registry *parser.Registry, options Options) *Server {
	if options.MaxUploadMB <= 0 {
		options.MaxUploadMB = domain.DefaultMaxUploadMB
	}
	if options.Threshold == 0 {
		options.Threshold = domain.DefaultThreshold
	}
	return &Server{
		service:   service,
		reader:    reader,
		formatter: formatter,
		registry:  registry,
		options:   options,
		logger:    slog.Default().With("component", "server"),
	}
}

// SetupRouter builds the gin engine with every route
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET("/healthz", s.Health)

	api := r.Group("/api/v1")
	api.GET("/languages", s.Languages)
	api.POST("/compare", s.Compare)
	api.POST("/compare/upload", s.CompareUpload)

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// statusFor maps typed errors to HTTP status codes
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}

	switch domain.ErrorCode(err) {
	case domain.ErrCodeInputTooLarge:
		return http.StatusRequestEntityTooLarge
	case domain.ErrCodeInvalidInput, domain.ErrCodeUnsupportedLanguage, domain.ErrCodeDecodeError,
		domain.ErrCodeUnsupportedFormat, domain.ErrCodeFileNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", c.GetString(requestIDKey), "error", err)
	} else {
		s.logger.Debug("request rejected", "request_id", c.GetString(requestIDKey), "error", err)
	}

	body := gin.H{
		"error":      err.Error(),
		"request_id": c.GetString(requestIDKey),
	}
	if code := domain.ErrorCode(err); code != "" {
		body["code"] = code
	}
	c.AbortWithStatusJSON(status, body)
}
