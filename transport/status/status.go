// Package status maps domain errors to HTTP status codes and client messages.
package status

import (
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// ErrInvalidRequest marks malformed client input.
var ErrInvalidRequest = errors.New("invalid request")

var (
	badRequest = []error{
		ErrInvalidRequest,
		entity.ErrInvalidCell,
		entity.ErrUnknownFirstMover,
		tictactoe.ErrUnknownDifficulty,
	}
	conflict = []error{
		apperror.ErrCellOccupied,
		apperror.ErrNotYourTurn,
		apperror.ErrGameFinished,
	}
)

// Of - returns the HTTP status for err.
func Of(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case isAny(err, badRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNoActiveGame):
		return http.StatusNotFound
	case isAny(err, conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message - returns the text safe to show to the client. Internal errors are
// not disclosed.
func Message(err error) string {
	if code := Of(err); code >= http.StatusInternalServerError {
		return http.StatusText(code)
	}

	return err.Error()
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
