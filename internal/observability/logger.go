package observability

import (
	"fmt"
	"os"
	"strings"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/logging"

	"github.com/pitchslap/pitchslap/internal/config"
)

var (
	// CLILogger is used by one-shot commands (SIMPLE profile).
	CLILogger *logging.Logger

	// ServerLogger is used by serve. Its profile follows logging.profile.
	ServerLogger *logging.Logger
)

// Logging profiles accepted in logging.profile.
const (
	ProfileSimple     = "simple"
	ProfileStructured = "structured"
)

// InitCLILogger initializes the CLI logger with SIMPLE profile
func InitCLILogger(serviceName string, verbose bool) {
	logger, err := logging.NewCLI(serviceName)
	if err != nil {
		exitWithCodeStderr(foundry.ExitConfigInvalid, "Failed to initialize CLI logger", err)
	}

	if verbose {
		logger.SetLevel(logging.DEBUG)
	}

	CLILogger = logger
}

// InitServerLogger installs ServerLogger for serve, exiting when the
// logging section cannot produce a logger.
func InitServerLogger(serviceName string, cfg config.LoggingConfig) {
	logger, err := NewServerLogger(serviceName, cfg, "production")
	if err != nil {
		exitWithCodeStderr(foundry.ExitConfigInvalid, "Failed to initialize server logger", err)
	}
	ServerLogger = logger
}

// NewServerLogger builds the server logger. The structured profile writes
// JSON with correlation middleware; simple writes plain console lines.
// Every entry carries the service name as its namespace.
func NewServerLogger(serviceName string, cfg config.LoggingConfig, environment string) (*logging.Logger, error) {
	lc := &logging.LoggerConfig{
		DefaultLevel: parseLogLevel(cfg.Level),
		Service:      serviceName,
		Environment:  environment,
		StaticFields: map[string]any{"namespace": serviceName},
		EnableCaller: true,
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Profile)) {
	case ProfileSimple:
		lc.Profile = logging.ProfileSimple
		lc.Sinks = []logging.SinkConfig{consoleSink("console")}
	case "", ProfileStructured:
		lc.Profile = logging.ProfileStructured
		lc.Sinks = []logging.SinkConfig{consoleSink("json")}
		lc.Middleware = []logging.MiddlewareConfig{
			{Name: "correlation", Enabled: true, Order: 100, Config: make(map[string]any)},
		}
		lc.EnableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown logging profile %q (want %s or %s)", cfg.Profile, ProfileSimple, ProfileStructured)
	}

	return logging.New(lc)
}

func consoleSink(format string) logging.SinkConfig {
	return logging.SinkConfig{
		Type:   "console",
		Format: format,
		Console: &logging.ConsoleSinkConfig{
			Stream:   "stderr",
			Colorize: false,
		},
	}
}

// parseLogLevel converts string log level to logging severity string
func parseLogLevel(levelStr string) string {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "trace":
		return "TRACE"
	case "debug":
		return "DEBUG"
	case "warn", "warning":
		return "WARN"
	case "error":
		return "ERROR"
	default:
		return "INFO"
	}
}

// exitWithCodeStderr exits with a semantic exit code before any logger exists.
func exitWithCodeStderr(exitCode foundry.ExitCode, msg string, err error) {
	info, ok := foundry.GetExitCodeInfo(exitCode)
	if !ok {
		fmt.Fprintf(os.Stderr, "FATAL: %s: %v (exit code: %d)\n", msg, err, exitCode)
		os.Exit(int(exitCode))
	}

	fmt.Fprintf(os.Stderr, "FATAL: %s: %v\n", msg, err)
	fmt.Fprintf(os.Stderr, "Exit Code: %d (%s) - %s\n", info.Code, info.Name, info.Description)
	os.Exit(info.Code)
}
