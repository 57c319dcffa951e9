package service

import (
	"context"
	"errors"

	"github.com/okian/kpastro/internal/domain/types"
)

// ErrNotStarted is returned by operations on a service that is not running.
var ErrNotStarted = errors.New("service not started")

// Error kinds reported in metrics and API responses.
const (
	KindInvalidInput = "invalid_input"
	KindNoMatch      = "no_match"
	KindTimeout      = "timeout"
	KindCanceled     = "canceled"
	KindUnavailable  = "unavailable"
	KindInternal     = "internal"
)

// ErrorKind classifies err into one of the Kind constants.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, types.ErrNoMatchFound):
		return KindNoMatch
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrNotStarted):
		return KindUnavailable
	default:
		return KindInternal
	}
}
