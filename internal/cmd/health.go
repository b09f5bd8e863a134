package cmd

import (
	"context"
	"time"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/config"
	errwrap "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/leaderboard"
	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/pitch"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run self-health check",
	Long:  "Verify configuration, prompt templates, the engine and the configured backends.",
	Run: func(cmd *cobra.Command, args []string) {
		log := observability.CLILogger
		log.Info("Running health check...")

		cfg, err := loadConfig()
		if err != nil {
			ExitWithCode(log, foundry.ExitConfigInvalid, "Configuration invalid", errwrap.NewConfigInvalidError(err.Error()))
			return
		}
		log.Info("✅ Configuration valid", zap.String("leaderboard_backend", cfg.Leaderboard.Backend))

		if _, err := loadPrompts(""); err != nil {
			ExitWithCode(log, foundry.ExitConfigInvalid, "Built-in prompt templates failed to load", err)
			return
		}
		log.Info("✅ Prompt templates loaded")

		engine := newEngine(cfg, pitch.FixedChooser(0))
		for _, mode := range pitch.Modes() {
			if resp := engine.Generate("We use AI to match dog walkers with busy owners.", mode); resp.Failed() {
				ExitWithCode(log, foundry.ExitFailure, "Engine self-test failed",
					errwrap.NewInternalError("mode "+string(mode)+" fell back: "+resp.Error))
				return
			}
		}
		log.Info("✅ Engine generates every mode")

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if cfg.Leaderboard.Backend != config.BackendMemory {
			db, err := openStore(ctx, cfg)
			if err != nil {
				ExitWithCode(log, foundry.ExitExternalServiceUnavailable, "Store unavailable", err)
				return
			}
			log.Info("✅ Store reachable", zap.String("driver", db.Driver()))
			_ = db.Close()
		}

		if cfg.Leaderboard.Backend == config.BackendRedis {
			client := leaderboard.NewClient(cfg.Leaderboard.Redis)
			err := client.Ping(ctx).Err()
			_ = client.Close()
			if err != nil {
				ExitWithCode(log, foundry.ExitExternalServiceUnavailable, "Redis unavailable", err)
				return
			}
			log.Info("✅ Redis reachable", zap.String("addr", cfg.Leaderboard.Redis.Addr))
		}

		log.Info("✅ All health checks passed")
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
