// Package server hosts the HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/repgenie/repgenie/internal/profile"
	"github.com/repgenie/repgenie/plugin/ai"
	apiv1 "github.com/repgenie/repgenie/server/router/api/v1"
	"github.com/repgenie/repgenie/store"
)

// Server wraps the echo instance and its wiring.
type Server struct {
	echoServer *echo.Echo
	profile    *profile.Profile
	store      *store.Store
}

// NewServer assembles the HTTP server and registers all routes.
func NewServer(prof *profile.Profile, st *store.Store, provider ai.Provider, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("32M"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"version": prof.Version,
		})
	})

	apiService := apiv1.NewAPIV1Service(prof, st, provider, logger)
	apiService.RegisterRoutes(e)

	return &Server{
		echoServer: e,
		profile:    prof,
		store:      st,
	}
}

// Start runs the listener until the context is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.profile.Addr, s.profile.Port)

	errCh := make(chan error, 1)
	go func() {
		if err := s.echoServer.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echoServer.Shutdown(shutdownCtx)
}
