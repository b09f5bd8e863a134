package errors

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulmenhq/gofulmen/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/metrics"
	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/server/middleware"
)

// Error codes carried by envelopes produced in this package.
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeValidation       = "VALIDATION_FAILED"
	CodeUnknownMode      = "UNKNOWN_MODE"
	CodePitchTooLong     = "PITCH_TOO_LONG"
	CodeNotFound         = "NOT_FOUND"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeDealNotFound     = "DEAL_NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeConflict         = "CONFLICT"
	CodeTimeout          = "TIMEOUT"
	CodeInternal         = "INTERNAL_ERROR"
	CodeDatabase         = "DATABASE_ERROR"
	CodeExternalService  = "EXTERNAL_SERVICE_ERROR"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
	CodeConfigInvalid    = "CONFIG_INVALID"
)

var statusByCode = map[string]int{
	CodeInvalidInput:     http.StatusBadRequest,
	CodeValidation:       http.StatusBadRequest,
	CodeUnknownMode:      http.StatusBadRequest,
	CodePitchTooLong:     http.StatusRequestEntityTooLarge,
	CodeNotFound:         http.StatusNotFound,
	CodePlayerNotFound:   http.StatusNotFound,
	CodeDealNotFound:     http.StatusNotFound,
	CodeMethodNotAllowed: http.StatusMethodNotAllowed,
	CodeConflict:         http.StatusConflict,
	CodeTimeout:          http.StatusGatewayTimeout,
	CodeExternalService:  http.StatusBadGateway,
	CodeUnavailable:      http.StatusServiceUnavailable,
}

func NewInvalidInputError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(CodeInvalidInput, message)
}

func NewValidationError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(CodeValidation, message)
}

// NewUnknownModeError reports a generation mode outside the supported set.
func NewUnknownModeError(mode string) *errors.ErrorEnvelope {
	env := errors.NewErrorEnvelope(CodeUnknownMode, "unsupported mode: "+mode)
	return env.WithDetails(map[string]interface{}{"mode": mode})
}

// NewPitchTooLongError reports a pitch above the configured rune limit.
func NewPitchTooLongError(length, limit int) *errors.ErrorEnvelope {
	env := errors.NewErrorEnvelope(CodePitchTooLong, "pitch exceeds the maximum length")
	return env.WithDetails(map[string]interface{}{"length": length, "limit": limit})
}

func NewNotFoundError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(CodeNotFound, message)
}

func NewPlayerNotFoundError(id string) *errors.ErrorEnvelope {
	env := errors.NewErrorEnvelope(CodePlayerNotFound, "player not found")
	return env.WithDetails(map[string]interface{}{"player_id": id})
}

func NewDealNotFoundError(id string) *errors.ErrorEnvelope {
	env := errors.NewErrorEnvelope(CodeDealNotFound, "investor deal not found or already decided")
	return env.WithDetails(map[string]interface{}{"deal_id": id})
}

func NewMethodNotAllowedError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(CodeMethodNotAllowed, message)
}

func NewInternalError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(CodeInternal, message)
}

func NewUnavailableError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(CodeUnavailable, message)
}

func NewConfigInvalidError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(CodeConfigInvalid, message)
}

// Wrap functions take the request context so the envelope carries its
// correlation ID.

func WrapInvalidInput(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	env, _ := wrap(ctx, CodeInvalidInput, err, message).WithSeverity(errors.SeverityMedium)
	return env
}

func WrapInternal(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	env, _ := wrap(ctx, CodeInternal, err, message).WithSeverity(errors.SeverityHigh)
	return env
}

func WrapDatabaseError(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	env, _ := wrap(ctx, CodeDatabase, err, message).WithSeverity(errors.SeverityHigh)
	return env
}

func WrapExternalService(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	env, _ := wrap(ctx, CodeExternalService, err, message).WithSeverity(errors.SeverityMedium)
	return env
}

func WrapTimeout(ctx context.Context, err error, message string) *errors.ErrorEnvelope {
	env, _ := wrap(ctx, CodeTimeout, err, message).WithSeverity(errors.SeverityMedium)
	return env
}

func wrap(ctx context.Context, code string, err error, message string) *errors.ErrorEnvelope {
	id := extractCorrelationID(ctx)
	envelope := errors.NewErrorEnvelope(code, message).
		WithCorrelationID(id).
		WithTraceID(id)
	return withWrappedError(envelope, err)
}

// extractCorrelationID gets the request ID from ctx, or a fresh UUID.
func extractCorrelationID(ctx context.Context) string {
	if ctx != nil {
		if requestID := middleware.GetRequestID(ctx); requestID != "" {
			return requestID
		}
	}
	return uuid.New().String()
}

// EnsureEnvelope normalizes any error into a gofulmen ErrorEnvelope.
func EnsureEnvelope(err error) *errors.ErrorEnvelope {
	if err == nil {
		env := errors.NewErrorEnvelope(CodeInternal, "unexpected nil error")
		env, _ = env.WithSeverity(errors.SeverityCritical)
		return env
	}

	if envelope, ok := err.(*errors.ErrorEnvelope); ok && envelope != nil {
		return envelope
	}

	env := errors.NewErrorEnvelope(CodeInternal, "unexpected error")
	env = withWrappedError(env, err)
	env, _ = env.WithSeverity(errors.SeverityHigh)
	return env
}

// EnsureCorrelationID attaches a correlation ID to the envelope using the context when available.
func EnsureCorrelationID(envelope *errors.ErrorEnvelope, ctx context.Context) *errors.ErrorEnvelope {
	if envelope == nil || envelope.CorrelationID != "" {
		return envelope
	}

	var correlationID string
	if ctx != nil {
		correlationID = middleware.GetRequestID(ctx)
	}
	if correlationID == "" {
		correlationID = "fallback-" + errors.GenerateCorrelationID()
	}

	return envelope.WithCorrelationID(correlationID)
}

// HTTPStatusFromEnvelope resolves the HTTP status code corresponding to an error envelope.
func HTTPStatusFromEnvelope(envelope *errors.ErrorEnvelope) int {
	if envelope == nil {
		return http.StatusInternalServerError
	}
	return HTTPStatusFromCode(envelope.Code)
}

// HTTPStatusFromCode resolves the HTTP status code for an error code.
// Unknown codes map to 500.
func HTTPStatusFromCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func withWrappedError(envelope *errors.ErrorEnvelope, err error) *errors.ErrorEnvelope {
	if envelope == nil || err == nil {
		return envelope
	}

	updated, updateErr := envelope.WithContext(map[string]interface{}{
		"wrapped_error": err.Error(),
	})
	if updateErr != nil {
		return envelope
	}
	return updated
}

// ResponseDetails merges envelope details and context into one API-safe map.
// Details win on key collisions.
func ResponseDetails(envelope *errors.ErrorEnvelope) map[string]interface{} {
	if envelope == nil {
		return nil
	}

	details := make(map[string]interface{}, len(envelope.Details)+len(envelope.Context))
	for key, value := range envelope.Context {
		details[key] = value
	}
	for key, value := range envelope.Details {
		details[key] = value
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// HTTPErrorDetail captures the error body returned to callers.
type HTTPErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// HTTPErrorResponse wraps HTTPErrorDetail in the standard envelope structure.
type HTTPErrorResponse struct {
	Error HTTPErrorDetail `json:"error"`
}

// RespondWithError normalizes the supplied error and writes a JSON response.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	RespondWithEnvelope(w, r, EnsureEnvelope(err))
}

// RespondWithEnvelope writes the envelope as JSON after logging it and
// counting it.
func RespondWithEnvelope(w http.ResponseWriter, r *http.Request, envelope *errors.ErrorEnvelope) {
	if w == nil {
		return
	}
	if envelope == nil {
		envelope = EnsureEnvelope(nil)
	}

	var ctx context.Context
	if r != nil {
		ctx = r.Context()
	}
	envelope = EnsureCorrelationID(envelope, ctx)
	statusCode := HTTPStatusFromEnvelope(envelope)

	logHTTPError(envelope, statusCode)
	metrics.RecordError(envelope.Code, statusCode)
	if r != nil {
		metrics.RecordErrorByEndpoint(r.URL.Path, envelope.Code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(HTTPErrorResponse{
		Error: HTTPErrorDetail{
			Code:      envelope.Code,
			Message:   envelope.Message,
			Details:   ResponseDetails(envelope),
			RequestID: envelope.CorrelationID,
		},
	})
}

func logHTTPError(envelope *errors.ErrorEnvelope, statusCode int) {
	if observability.ServerLogger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("error_code", envelope.Code),
		zap.Int("http_status", statusCode),
		zap.String("request_id", envelope.CorrelationID),
	}
	if envelope.Severity != "" {
		fields = append(fields, zap.String("severity", string(envelope.Severity)))
	}
	for key, value := range envelope.Context {
		fields = append(fields, zap.Any(key, value))
	}

	switch envelope.Severity {
	case errors.SeverityCritical, errors.SeverityHigh:
		observability.ServerLogger.Error(envelope.Message, fields...)
	case errors.SeverityMedium:
		observability.ServerLogger.Warn(envelope.Message, fields...)
	default:
		observability.ServerLogger.Info(envelope.Message, fields...)
	}
}
