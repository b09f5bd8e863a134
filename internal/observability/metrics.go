package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/fulmenhq/gofulmen/telemetry"
	"github.com/fulmenhq/gofulmen/telemetry/exporters"
)

// DefaultMetricsPort is used when the exporter address cannot be resolved.
const DefaultMetricsPort = 9090

var (
	// TelemetrySystem receives every pitchslap counter, gauge and histogram.
	// Nil means metrics are off and recorders return early.
	TelemetrySystem *telemetry.System

	// PrometheusExporter serves the scrape endpoint that /metrics proxies.
	PrometheusExporter *exporters.PrometheusExporter

	metricsPort int
)

// InitMetrics starts the Prometheus exporter on port (0 picks a free port)
// and installs a telemetry system that emits to it. Metric names are
// prefixed with namespace, or serviceName when namespace is empty.
func InitMetrics(serviceName string, port int, namespace ...string) error {
	if PrometheusExporter != nil {
		return errors.New("metrics already initialized")
	}
	requestedPort := max(port, 0)

	metricNamespace := serviceName
	if len(namespace) > 0 && namespace[0] != "" {
		metricNamespace = namespace[0]
	}

	exporter := exporters.NewPrometheusExporter(metricNamespace, fmt.Sprintf(":%d", requestedPort))
	if err := exporter.Start(); err != nil {
		return fmt.Errorf("start prometheus exporter: %w", err)
	}

	sys, err := telemetry.NewSystem(&telemetry.Config{
		Enabled: true,
		Emitter: exporter,
	})
	if err != nil {
		_ = exporter.Stop()
		return err
	}

	metricsPort = requestedPort
	if actualPort, err := resolvePort(exporter.GetAddr()); err == nil {
		metricsPort = actualPort
	} else if requestedPort == 0 {
		metricsPort = DefaultMetricsPort
	}
	PrometheusExporter = exporter
	TelemetrySystem = sys
	return nil
}

// StopMetrics stops the exporter and turns recorders off. It is safe to
// call when metrics were never started.
func StopMetrics() error {
	TelemetrySystem = nil
	if PrometheusExporter == nil {
		return nil
	}
	err := PrometheusExporter.Stop()
	PrometheusExporter = nil
	metricsPort = 0
	return err
}

// CheckTelemetry reports whether the exporter behind /metrics is running.
// It satisfies the health checker signature.
func CheckTelemetry(context.Context) error {
	if TelemetrySystem == nil || PrometheusExporter == nil {
		return errors.New("telemetry system not initialized")
	}
	return nil
}

// DisableGlobalTelemetry installs a disabled global system so library code
// that emits on its own stays quiet in CLI mode.
func DisableGlobalTelemetry() {
	if sys, err := telemetry.NewSystem(&telemetry.Config{Enabled: false}); err == nil {
		telemetry.SetGlobalSystem(sys)
	}
}

// GetMetricsPort returns the port the Prometheus exporter is listening on,
// or 0 before InitMetrics.
func GetMetricsPort() int {
	return metricsPort
}

func resolvePort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(portStr)
}
