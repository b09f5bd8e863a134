package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/observability"
)

// HandleError writes err as a JSON error envelope. Deadline errors become
// TIMEOUT. Nothing is written once the client has gone away.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var ctx context.Context
	if r != nil {
		ctx = r.Context()
	}

	switch {
	case errors.Is(err, context.Canceled) && ctx != nil && ctx.Err() != nil:
		if observability.ServerLogger != nil {
			observability.ServerLogger.Debug("Client went away", zap.String("path", r.URL.Path))
		}
		return
	case errors.Is(err, context.DeadlineExceeded):
		err = apperrors.WrapTimeout(ctx, err, "request timed out")
	}
	apperrors.RespondWithError(w, r, err)
}
