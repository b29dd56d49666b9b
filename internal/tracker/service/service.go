package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/uptrack/uptrack/internal/tracker/store"
	"github.com/uptrack/uptrack/pkg/slogx"
)

// DefaultStoreTimeout bounds a single store attempt when the service was not
// configured with one.
const DefaultStoreTimeout = 5 * time.Second

// ErrForbidden is returned when the acting identity is not allowed to perform
// the requested operation on the target resource.
var ErrForbidden = errors.New("forbidden")

// ValidationError carries a caller-facing message for rejected input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// withStore runs fn with a bounded context, retrying once on transient store
// faults. A second transient failure is wrapped in store.ErrUnavailable so
// callers can map it to a retryable response.
func withStore(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}

	attempt := func() error {
		opCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return fn(opCtx)
	}

	err := attempt()
	if err == nil || !transient(ctx, err) {
		return err
	}

	slogx.FromContext(ctx).Warn("store operation failed, retrying once",
		slog.String("error", err.Error()))

	err = attempt()
	if err != nil && transient(ctx, err) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return err
}

// transient reports whether err looks like an infrastructure fault rather than
// a domain outcome. Domain sentinels and caller cancellation never retry.
func transient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrAlreadyExists),
		errors.Is(err, context.Canceled):
		return false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return false
	}
	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrUnsupportedFileType),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrInvalidTransition):
		return false
	}
	return true
}

// round2 rounds to two decimal places, matching how file sizes are stored and
// reported.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
