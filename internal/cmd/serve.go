package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/config"
	"github.com/pitchslap/pitchslap/internal/domains"
	errwrap "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/memecard"
	"github.com/pitchslap/pitchslap/internal/metrics"
	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/pitch"
	"github.com/pitchslap/pitchslap/internal/server"
	"github.com/pitchslap/pitchslap/internal/server/handlers"
)

// staleDealAge is how long an undecided investor deal is kept.
const staleDealAge = 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server with graceful shutdown support.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config file reload (restart to apply server settings)

Set PITCHSLAP_ADMIN_TOKEN to expose POST /admin/signal.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("prompts-dir", "", "Load prompt templates from this directory")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_ = v.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	cfg, err := loadConfig()
	if err != nil {
		return errwrap.NewConfigInvalidError(err.Error())
	}

	observability.InitServerLogger(config.AppName, cfg.Logging)
	log := observability.ServerLogger

	if cfg.Metrics.Enabled {
		if err := observability.InitMetrics(config.AppName, cfg.Metrics.Port, config.AppName); err != nil {
			log.Error("Failed to initialize metrics", zap.Error(err))
			return errwrap.WrapInternal(ctx, err, "metrics initialization failed")
		}
	}
	metrics.SetServerStartTime(time.Now().Unix())

	log.Info("Initializing server",
		zap.String("service", config.AppName),
		zap.String("version", versionInfo.Version),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Int("metrics_port", observability.GetMetricsPort()),
		zap.String("leaderboard_backend", cfg.Leaderboard.Backend))

	svc, err := openServices(ctx, cfg)
	if err != nil {
		return errwrap.WrapDatabaseError(ctx, err, "failed to open backends")
	}

	promptsDir, _ := cmd.Flags().GetString("prompts-dir")
	prompts, err := loadPrompts(promptsDir)
	if err != nil {
		_ = svc.Close()
		return errwrap.NewConfigInvalidError("prompt templates: " + err.Error())
	}

	engine := newEngine(cfg, svc.chooser, pitch.WithObserver(metrics.PitchObserver(log.Warn)))
	var checker *domains.Checker
	if cfg.Domains.Enabled {
		cache, release, err := domainCacheStore(ctx, cfg, svc.store)
		if err != nil {
			_ = svc.Close()
			return errwrap.WrapDatabaseError(ctx, err, "failed to open domain cache")
		}
		defer release()
		checker = newDomainChecker(cfg, cache)
	}
	if checker != nil {
		checker.OnResult = func(r domains.Result) {
			log.Debug("Domain checked",
				zap.String("domain", r.Domain),
				zap.String("availability", string(r.Availability)))
		}
	}

	hm := handlers.NewHealthManager(versionInfo.Version)
	if cfg.Metrics.Enabled {
		hm.RegisterChecker("telemetry", handlers.HealthCheckFunc(observability.CheckTelemetry))
	}
	if svc.store != nil {
		hm.RegisterChecker("store", svc.store)
	}
	if svc.board != nil {
		hm.RegisterOptionalChecker("redis", handlers.HealthCheckFunc(svc.board.Ping))
	}

	srv := server.New(cfg.Server, server.Options{
		API: &handlers.API{
			Engine:           engine,
			Players:          svc.players,
			Investor:         svc.investor,
			Domains:          checker,
			Prompts:          prompts,
			MaxPitchLength:   cfg.Engine.MaxPitchLength,
			LeaderboardLimit: cfg.Leaderboard.TopN,
			Meme:             memecard.Options{Width: cfg.Meme.Width, Height: cfg.Meme.Height},
		},
		Health:        hm,
		DisableHealth: !cfg.Health.Enabled,
		AdminToken:    os.Getenv(config.EnvPrefix + "_ADMIN_TOKEN"),
	})

	pruneCtx, stopPruning := context.WithCancel(context.Background())
	go pruneLoop(pruneCtx, svc, log.Info)

	// Shutdown handlers run LIFO: the HTTP server stops first, the logger
	// flushes last.
	signals.OnShutdown(func(ctx context.Context) error {
		if err := observability.StopMetrics(); err != nil {
			log.Warn("Stopping metrics exporter failed", zap.Error(err))
		}
		if err := log.Sync(); err != nil {
			log.Warn("Logger sync returned error (may be benign)", zap.Error(err))
		}
		return nil
	})
	signals.OnShutdown(func(ctx context.Context) error {
		stopPruning()
		if err := svc.Close(); err != nil {
			log.Warn("Closing backends failed", zap.Error(err))
		}
		return nil
	})
	signals.OnShutdown(func(ctx context.Context) error {
		log.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errwrap.WrapInternal(ctx, err, "server shutdown failed")
		}
		log.Info("HTTP server stopped gracefully")
		return nil
	})

	signals.OnReload(func(ctx context.Context) error {
		log.Info("Received SIGHUP: reloading config file")
		if _, err := config.ReadFile(v); err != nil {
			log.Error("Failed to reload config file", zap.String("file", v.ConfigFileUsed()), zap.Error(err))
			return errwrap.NewConfigInvalidError("config reload failed: " + err.Error())
		}
		if _, err := config.Load(v); err != nil {
			log.Error("Reloaded config is invalid", zap.Error(err))
			return errwrap.NewConfigInvalidError(err.Error())
		}
		log.Info("Configuration reloaded", zap.String("file", v.ConfigFileUsed()))
		return nil
	})

	if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
		Window:  2 * time.Second,
		Message: "Press Ctrl+C again within 2 seconds to force quit",
	}); err != nil {
		log.Warn("Failed to enable double-tap force quit", zap.Error(err))
	}

	errChan := make(chan error, 2)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()
	go func() {
		err := signals.Listen(ctx)
		if err != nil {
			log.Error("Signal handler error", zap.Error(err))
		}
		errChan <- err
	}()

	if err := <-errChan; err != nil && !errors.Is(err, context.Canceled) {
		return errwrap.WrapInternal(ctx, err, "server error")
	}
	return nil
}

// pruneLoop drops stale investor deals every hour until ctx ends.
func pruneLoop(ctx context.Context, svc *services, log func(string, ...zap.Field)) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		if err := pruneDeals(ctx, svc.store, staleDealAge, log); err != nil && ctx.Err() == nil {
			log("Deal pruning failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
