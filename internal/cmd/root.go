package cmd

import (
	"context"
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/config"
	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/server/middleware"
)

var (
	cfgFile string
	verbose bool

	// v holds the layered configuration: defaults, file, PITCHSLAP_* env.
	v *viper.Viper

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Roast, fix and score startup pitches",
	Long: fmt.Sprintf(`%s - a rule-based startup pitch engine.

Feed it a one-paragraph pitch and pick a mode: roast, fixit, scorecard,
branding or meme. Run "%s serve" for the HTTP API.`, config.AppName, config.AppName),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx := middleware.WithRequestID(context.Background(), "cli-"+uuid.NewString())
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Library code that emits on its own stays quiet until serve installs
	// the real telemetry system.
	observability.DisableGlobalTelemetry()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		fmt.Sprintf("config file (default is %s)", orNone(config.DefaultConfigPath())))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	observability.InitCLILogger(config.AppName, verbose)

	v = config.NewViper(cfgFile)
	_ = v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	used, err := config.ReadFile(v)
	switch {
	case err != nil:
		ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Error reading config file", err)
	case used != "":
		observability.CLILogger.Debug("Using config file", zap.String("path", used))
	default:
		observability.CLILogger.Debug("No config file found, using defaults and environment variables")
	}
}

// loadConfig decodes and validates the layered configuration.
func loadConfig() (*config.Config, error) {
	if v == nil {
		v = config.NewViper(cfgFile)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func orNone(path string) string {
	if path == "" {
		return "./config/config.yaml"
	}
	return path
}
