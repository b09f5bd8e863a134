package metrics

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/pitch"
)

// Application-level metric names
const (
	PitchGenerationsTotal   = "pitch_generations_total"
	PitchGenerationDuration = "pitch_generation_duration_ms"
	XPAwardedTotal          = "xp_awarded_total"
	LevelUpsTotal           = "level_ups_total"
	InvestorDecisionsTotal  = "investor_decisions_total"
	DomainChecksTotal       = "domain_checks_total"
	HealthCheckTotal        = "app_health_check_total"
	ServerStartTime         = "app_server_start_time_seconds"
)

// RecordGeneration counts one dispatcher call by mode and outcome.
func RecordGeneration(mode pitch.Mode, outcome pitch.Outcome) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(
		PitchGenerationsTotal,
		1,
		map[string]string{
			"mode":    string(mode),
			"outcome": string(outcome),
		},
	)
}

// RecordGenerationDuration records how long a generation took, thinking
// delay included.
func RecordGenerationDuration(mode pitch.Mode, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Histogram(
		PitchGenerationDuration,
		duration,
		map[string]string{"mode": string(mode)},
	)
}

// PitchObserver returns an engine observer that counts every generation and
// logs recovered failures through log. log may be nil.
func PitchObserver(log func(msg string, fields ...zap.Field)) pitch.Observer {
	return func(ev pitch.Event) {
		RecordGeneration(ev.Mode, ev.Outcome)
		if log == nil || ev.Outcome != pitch.OutcomeFallback {
			return
		}
		fields := []zap.Field{
			zap.String("mode", string(ev.Mode)),
			zap.String("branch", ev.Branch),
		}
		if ev.Err != nil {
			fields = append(fields, zap.Error(ev.Err))
		}
		log("pitch generation fell back", fields...)
	}
}

// RecordXP counts XP granted for a gamified action.
func RecordXP(action string, amount int, leveledUp bool) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(
		XPAwardedTotal,
		float64(amount),
		map[string]string{"action": action},
	)
	if leveledUp {
		_ = observability.TelemetrySystem.Counter(LevelUpsTotal, 1, nil)
	}
}

// RecordInvestorDecision counts an evaluated investor deal.
func RecordInvestorDecision(correct bool) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(
		InvestorDecisionsTotal,
		1,
		map[string]string{"correct": strconv.FormatBool(correct)},
	)
}

// RecordDomainCheck counts an RDAP availability lookup by result.
func RecordDomainCheck(status string) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(
		DomainChecksTotal,
		1,
		map[string]string{"status": status},
	)
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool) {
	if observability.TelemetrySystem == nil {
		return
	}
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}
	_ = observability.TelemetrySystem.Counter(
		HealthCheckTotal,
		1,
		map[string]string{
			"check":  checkName,
			"status": status,
		},
	)
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Gauge(ServerStartTime, float64(timestamp), nil)
}
