package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/config"
	"github.com/pitchslap/pitchslap/internal/observability"
)

var envInfoCmd = &cobra.Command{
	Use:   "envinfo",
	Short: "Display environment information",
	Long:  "Display environment, configuration, and version information.",
	Run: func(cmd *cobra.Command, args []string) {
		log := observability.CLILogger
		version := crucible.GetVersion()

		log.Info("=== Pitchslap Environment Information ===")
		log.Info("")
		log.Info("Application:")
		log.Info("  Name:       " + config.AppName)
		log.Info("  Version:    " + versionInfo.Version)
		log.Info("  Commit:     " + versionInfo.Commit)
		log.Info("  Built:      " + versionInfo.BuildDate)
		log.Info("")

		log.Info("SSOT:")
		log.Info("  Gofulmen:   "+version.Gofulmen, zap.String("gofulmen_version", version.Gofulmen))
		log.Info("  Crucible:   "+version.Crucible, zap.String("crucible_version", version.Crucible))
		log.Info("")

		log.Info("Runtime:")
		log.Info("  Go Version: "+runtime.Version(), zap.String("go_version", runtime.Version()))
		log.Info("  GOOS:       "+runtime.GOOS, zap.String("goos", runtime.GOOS))
		log.Info("  GOARCH:     "+runtime.GOARCH, zap.String("goarch", runtime.GOARCH))
		log.Info("")

		cfg, err := loadConfig()
		if err != nil {
			log.Warn("Config load failed", zap.Error(err))
			return
		}

		configFile := v.ConfigFileUsed()
		if configFile == "" {
			configFile = "(none, default " + orNone(config.DefaultConfigPath()) + ")"
		}

		log.Info("Configuration:")
		log.Info("  Config File:    " + configFile)
		log.Info("  Server:         " + fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
		log.Info("  Log Level:      " + cfg.Logging.Level)
		log.Info("  DB Driver:      " + cfg.Store.Driver)
		if strings.TrimSpace(cfg.Store.URL) != "" {
			log.Info("  DB URL:         " + cfg.Store.URL)
		} else {
			log.Info("  DB Path:        " + cfg.Store.Path)
		}
		log.Info(fmt.Sprintf("  Metrics:        %t (port %d)", cfg.Metrics.Enabled, cfg.Metrics.Port))
		log.Info("")

		log.Info("Engine:")
		log.Info(fmt.Sprintf("  Pitch Length:   %d-%d characters", cfg.Engine.MinPitchLength, cfg.Engine.MaxPitchLength))
		log.Info("  Thinking Delay: " + cfg.Engine.ThinkingDelay.String())
		if cfg.Engine.Seed != 0 {
			log.Info(fmt.Sprintf("  Seed:           %d", cfg.Engine.Seed))
		} else {
			log.Info("  Seed:           (random)")
		}
		log.Info("")

		log.Info("Leaderboard:")
		log.Info("  Backend:        " + cfg.Leaderboard.Backend)
		log.Info(fmt.Sprintf("  Top N:          %d", cfg.Leaderboard.TopN))
		if cfg.Leaderboard.Backend == config.BackendRedis {
			log.Info("  Redis:          " + cfg.Leaderboard.Redis.Addr)
		}
		log.Info("")

		log.Info("Domains:")
		log.Info(fmt.Sprintf("  Enabled:        %t", cfg.Domains.Enabled))
		log.Info("  Timeout:        " + cfg.Domains.Timeout.String())
		log.Info("  Cache TTL:      " + cfg.Domains.CacheTTL.String())
		log.Info("")

		log.Info("=== End Environment Information ===")
	},
}

func init() {
	rootCmd.AddCommand(envInfoCmd)
}
