// Package stubserver implements an in-process stand-in for the remote
// RekaTrack backend, so the client core can be exercised end-to-end
// without the production API. State is in-memory; the document status
// machine is enforced with the same domain rules the client uses.
package stubserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const defaultTokenTTL = 24 * time.Hour

// Config carries the stub's settings.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	// PhotoDir is where uploaded proof photos are written. Empty means
	// uploads are accepted and discarded.
	PhotoDir string
}

// Server is the assembled stub backend.
type Server struct {
	echo  *echo.Echo
	store *memStore
	cfg   Config
	log   zerolog.Logger
}

// New builds the stub with all routes registered.
func New(cfg Config, log zerolog.Logger) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "rekatrack-dev-secret"
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	s := &Server{echo: e, store: newMemStore(), cfg: cfg, log: log}

	e.POST("/login", s.handleLogin)
	e.GET("/health", s.handleHealth)

	authed := e.Group("", bearerAuth(cfg.JWTSecret))
	authed.GET("/user", s.handleProfile)
	authed.PUT("/user/update", s.handleProfileUpdate)
	authed.GET("/travel-documents", s.handleListDocuments)
	authed.GET("/travel-document/:id", s.handleDocumentDetail)
	authed.POST("/send-location", s.handleSendLocation)
	authed.POST("/complete-tracking", s.handleCompleteTracking)
	authed.POST("/upload-delivery-photo", s.handleUploadPhoto)
	authed.GET("/delivery-confirmation/:id", s.handleConfirmation)

	return s
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Store gives tests direct access to the backing state.
func (s *Server) Store() *memStore {
	return s.store
}

// Start serves on addr until Shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// errorEnvelope mirrors the production backend: every error body is
// {"message": "..."} so the client gateway can surface the server text.
type errorEnvelope struct {
	Message string `json:"message"`
}

// newHTTPErrorHandler renders the consistent message envelope and logs
// unexpected errors without leaking details.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if ok := errorsAs(err, &he); ok {
			_ = c.JSON(he.Code, errorEnvelope{Message: messageOf(he)})
			return
		}

		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")
		_ = c.JSON(http.StatusInternalServerError, errorEnvelope{Message: "internal server error"})
	}
}
