// Package app wires configuration into the connector's services.
package app

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/aster/config"
	"github.com/Ramsey-B/aster/pkg/attio"
	"github.com/Ramsey-B/aster/pkg/events"
	"github.com/Ramsey-B/aster/pkg/health"
	"github.com/Ramsey-B/aster/pkg/httpclient"
	"github.com/Ramsey-B/aster/pkg/kafka"
	"github.com/Ramsey-B/aster/pkg/reconcile"
	"github.com/Ramsey-B/aster/pkg/schema"
	"github.com/Ramsey-B/aster/pkg/server"
	"github.com/Ramsey-B/aster/pkg/startup"
	"github.com/Ramsey-B/aster/pkg/synctable"
	"github.com/Ramsey-B/aster/pkg/tracing"
	"github.com/Ramsey-B/aster/pkg/tracing/exporters"
)

type App struct {
	Config *config.Config
	Logger ectologger.Logger
	Attio  *attio.Client
	Engine *reconcile.Engine
	Syncer *synctable.Syncer

	kafkaConfig kafka.Config
	producer    *kafka.Producer
}

func New(cfg *config.Config, logger ectologger.Logger) *App {
	schemas := schema.New(schema.Options{
		WorkspaceSlug: cfg.AttioWorkspaceSlug,
		AppBaseURL:    cfg.AttioAppURL,
	})

	doer := httpclient.NewClient(httpclient.Config{
		Timeout:         cfg.HttpClientTimeout,
		MaxIdleConns:    cfg.HttpClientMaxIdleConns,
		IdleConnTimeout: cfg.HttpClientIdleConnTimeout,
	}, logger)

	client := attio.NewClient(doer, schemas, attio.Options{
		BaseURL:  cfg.AttioAPIURL,
		Token:    cfg.AttioAPIToken,
		PageSize: cfg.AttioPageSize,
	}, logger)

	a := &App{
		Config:      cfg,
		Logger:      logger,
		Attio:       client,
		Syncer:      synctable.NewSyncer(client, logger),
		kafkaConfig: kafka.ParseConfig(cfg.KafkaBrokers, cfg.KafkaEventsTopic),
	}

	var emitter events.Emitter = events.NoopEmitter{}
	if a.kafkaConfig.Enabled() {
		a.producer = kafka.NewProducer(a.kafkaConfig, logger)
		emitter = a.producer
	}
	a.Engine = reconcile.NewEngine(client, emitter, logger)

	return a
}

// Close releases the event producer. Serve closes it through its startup
// sequence instead.
func (a *App) Close() error {
	if a.producer == nil {
		return nil
	}
	return a.producer.Close()
}

// Serve starts every dependency, serves until ctx is done or the server
// fails, then stops everything in reverse order.
func (a *App) Serve(ctx context.Context) error {
	cfg := a.Config

	var checks []health.Check
	if a.kafkaConfig.Enabled() {
		checks = append(checks, health.Check{Name: "kafka", Probe: a.kafkaConfig.Ping})
	}
	checker := health.NewChecker(cfg.Version, checks...)

	srv := server.New(server.Config{
		ServiceName:       cfg.AppName,
		Port:              cfg.Port,
		ReadTimeout:       time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
		FallbackToken:     cfg.AttioAPIToken,
	}, server.Dependencies{
		Records:     a.Engine,
		Entries:     a.Engine,
		Collections: a.Attio,
		Syncer:      a.Syncer,
		Health:      checker,
	}, a.Logger)

	boot := startup.NewStartup(a.Logger, cfg.StartupMaxAttempts)
	boot.AddDependency(a.tracingDependency())
	if a.producer != nil {
		boot.AddDependency(startup.Func{
			Name:    "kafka",
			OnStart: a.kafkaConfig.Ping,
			OnStop:  func(context.Context) error { return a.producer.Close() },
		})
	}
	boot.AddDependency(startup.Func{
		Name:    "server",
		Needs:   []string{"tracing"},
		OnStart: srv.Start,
		OnStop:  srv.Stop,
	})

	if err := boot.Start(ctx); err != nil {
		_ = boot.Stop(context.Background())
		return err
	}
	checker.SetReady(true)
	a.Logger.Infof("%s is ready", cfg.AppName)

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-srv.Errors():
	}

	checker.SetReady(false)
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := boot.Stop(stopCtx); err != nil && serveErr == nil {
		return err
	}
	return serveErr
}

func (a *App) tracingDependency() startup.Func {
	var shutdown func(context.Context) error

	return startup.Func{
		Name: "tracing",
		OnStart: func(ctx context.Context) error {
			var err error
			shutdown, err = tracing.Setup(ctx, tracing.Config{
				ServiceName: a.Config.AppName,
				Enabled:     a.Config.OTLPEnabled,
				OTLP: exporters.OTLPConfig{
					Endpoint: a.Config.OTLPEndpoint,
					Protocol: a.Config.OTLPProtocol,
					Insecure: a.Config.OTLPInsecure,
				},
			}, a.Logger)
			return err
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	}
}
