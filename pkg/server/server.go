// Package server assembles the echo application: middleware, routes, health
// probes and the metrics endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/aster/pkg/health"
	"github.com/Ramsey-B/aster/pkg/middleware"
	"github.com/Ramsey-B/aster/pkg/routes/collections"
	"github.com/Ramsey-B/aster/pkg/routes/formulas"
	"github.com/Ramsey-B/aster/pkg/routes/records"
	"github.com/Ramsey-B/aster/pkg/routes/schemas"
	"github.com/Ramsey-B/aster/pkg/routes/tables"
)

type Config struct {
	ServiceName       string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	MaxHeaderBytes    int
	// FallbackToken is used for Attio calls when a request carries no bearer token
	FallbackToken string
}

// Dependencies are the services the routes call into.
type Dependencies struct {
	Records     records.Reconciler
	Entries     collections.EntryManager
	Collections collections.CollectionClient
	Syncer      tables.Syncer
	Health      *health.Checker
}

type Server struct {
	echo   *echo.Echo
	cfg    Config
	logger ectologger.Logger
	errCh  chan error
}

func New(cfg Config, deps Dependencies, logger ectologger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(logger)

	e.Use(otelecho.Middleware(cfg.ServiceName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))

	deps.Health.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("")
	formulas.Register(api.Group("/formulas"))
	schemas.Register(api)

	requireToken := middleware.RequireToken(logger, cfg.FallbackToken)
	records.NewRecordHandler(deps.Records).RegisterRoutes(api, requireToken)
	collections.NewCollectionHandler(deps.Entries, deps.Collections).RegisterRoutes(api, requireToken)
	tables.NewSyncHandler(deps.Syncer).RegisterRoutes(api, requireToken)

	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.Server.IdleTimeout = cfg.IdleTimeout
	e.Server.ReadHeaderTimeout = cfg.ReadHeaderTimeout
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

	return &Server{
		echo:   e,
		cfg:    cfg,
		logger: logger,
		errCh:  make(chan error, 1),
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start begins serving in the background.
func (s *Server) Start(context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Infof("Starting HTTP server on %s", addr)

	go func() {
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("HTTP server stopped unexpectedly")
			s.errCh <- err
		}
	}()
	return nil
}

// Errors reports a server that stopped on its own.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
