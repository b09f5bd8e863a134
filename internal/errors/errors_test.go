package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchslap/pitchslap/internal/server/middleware"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := map[string]int{
		CodeInvalidInput:   http.StatusBadRequest,
		CodeUnknownMode:    http.StatusBadRequest,
		CodePitchTooLong:   http.StatusRequestEntityTooLarge,
		CodePlayerNotFound: http.StatusNotFound,
		CodeDealNotFound:   http.StatusNotFound,
		CodeUnavailable:    http.StatusServiceUnavailable,
		CodeDatabase:       http.StatusInternalServerError,
		"SOMETHING_ELSE":   http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, HTTPStatusFromCode(code), code)
	}
}

func TestEnsureEnvelope(t *testing.T) {
	env := EnsureEnvelope(nil)
	require.NotNil(t, env)
	assert.Equal(t, CodeInternal, env.Code)

	env = EnsureEnvelope(stderrors.New("disk on fire"))
	assert.Equal(t, CodeInternal, env.Code)
	assert.Equal(t, "disk on fire", env.Context["wrapped_error"])

	original := NewUnknownModeError("haiku")
	assert.Same(t, original, EnsureEnvelope(original))
}

func TestRespondWithEnvelopeUsesRequestID(t *testing.T) {
	var captured *http.Request
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		RespondWithError(w, r, NewPitchTooLongError(600, 500))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pitch/roast", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotNil(t, captured)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, CodePitchTooLong, body.Error.Code)
	assert.Equal(t, "req-123", body.Error.RequestID)
	assert.EqualValues(t, 500, body.Error.Details["limit"])
}

func TestRespondWithErrorWithoutRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, nil, stderrors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, strings.HasPrefix(body.Error.RequestID, "fallback-"))
}

func TestWrapCarriesCorrelationAndCause(t *testing.T) {
	env := WrapDatabaseError(context.Background(), stderrors.New("locked"), "could not save profile")
	require.NotNil(t, env)
	assert.Equal(t, CodeDatabase, env.Code)
	assert.NotEmpty(t, env.CorrelationID)
	assert.Equal(t, "locked", env.Context["wrapped_error"])
}

func TestResponseDetailsPrefersDetails(t *testing.T) {
	env := NewPlayerNotFoundError("p-1")
	env, err := env.WithContext(map[string]interface{}{"player_id": "shadow", "extra": 1})
	require.NoError(t, err)

	details := ResponseDetails(env)
	assert.Equal(t, "p-1", details["player_id"])
	assert.EqualValues(t, 1, details["extra"])
	assert.Nil(t, ResponseDetails(NewInternalError("x")))
}
