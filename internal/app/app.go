package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Prajapati29/syncroom/internal/config"
	"github.com/Prajapati29/syncroom/internal/core"
	"github.com/Prajapati29/syncroom/internal/media"
	transporthttp "github.com/Prajapati29/syncroom/internal/transport/http"
)

// App wires together the room engine and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	registry        *core.Registry
	dispatcher      *core.Dispatcher
	cfg             *config.Config
	log             *zerolog.Logger
}

// New constructs the application with provided configuration. The room
// registry is built exactly once here; there is no global instance.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	registry := core.NewRegistry(cfg.ChatCapacity, logger)
	dispatcher := core.NewDispatcher(registry, logger)
	resolver := media.NewOEmbedResolver(cfg.MetadataTimeout, logger)

	server := transporthttp.NewServer(dispatcher, resolver, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		registry:        registry,
		dispatcher:      dispatcher,
		cfg:             cfg,
		log:             logger,
	}
}

// Run starts the GC sweep and the HTTP server, blocking until context
// cancellation or a fatal error.
func (a *App) Run(ctx context.Context) error {
	go a.registry.Run(ctx, a.cfg.SweepInterval, a.cfg.RoomIdleThreshold)

	serverErr := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.server.Addr).Msg("listening")
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
