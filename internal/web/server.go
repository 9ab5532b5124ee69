// Package web serves the classification form and a JSON API over HTTP.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/potax/internal/flow"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 10 * time.Second

// Submitter runs one classification request. *flow.Flow satisfies it.
type Submitter interface {
	Submit(ctx context.Context, req flow.Request) flow.Outcome
}

// Server is the web view. It keeps no session state: every request carries
// everything needed to render its response.
type Server struct {
	submitter Submitter
	logger    *slog.Logger
	engine    *gin.Engine
	tls       *tls.Config
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCertificate makes ListenAndServe serve HTTPS with cert.
func WithCertificate(cert tls.Certificate) Option {
	return func(s *Server) {
		s.tls = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}
}

// New creates a Server around submitter.
func New(submitter Submitter, opts ...Option) (*Server, error) {
	if submitter == nil {
		return nil, errors.New("web: submitter is required")
	}

	s := &Server{
		submitter: submitter,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.SetHTMLTemplate(tmpl)
	s.routes(engine)
	s.engine = engine

	return s, nil
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/", s.handleIndex)
	r.POST("/classify", s.handleClassifyForm)
	r.POST("/export", s.handleExport)
	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/classify", s.handleClassifyAPI)
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig:         s.tls,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if s.tls != nil {
			s.logger.Info("web server listening", "addr", addr, "scheme", "https")
			err = srv.ListenAndServeTLS("", "")
		} else {
			s.logger.Info("web server listening", "addr", addr, "scheme", "http")
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web server shutdown: %w", err)
		}
		s.logger.Info("web server stopped")
		return nil
	})

	return g.Wait()
}

// requestLogger logs each request through slog.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}
