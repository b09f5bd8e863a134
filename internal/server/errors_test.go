package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pitchslap/pitchslap/internal/errors"
)

func TestHandleErrorMapsDeadline(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pitch/roast", nil)
	rec := httptest.NewRecorder()

	HandleError(rec, req, fmt.Errorf("thinking: %w", context.DeadlineExceeded))

	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, apperrors.CodeTimeout, errorCode(t, rec))
}

func TestHandleErrorSkipsAbandonedRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pitch/roast", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	HandleError(rec, req, context.Canceled)

	assert.Zero(t, rec.Body.Len())
}

func TestHandleErrorPassesEnvelopes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/p-9", nil)
	rec := httptest.NewRecorder()

	HandleError(rec, req, apperrors.NewPlayerNotFoundError("p-9"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.CodePlayerNotFound, errorCode(t, rec))
}
