package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-onboarding/internal/logging"
	"github.com/goliatone/go-onboarding/pkg/interfaces"
)

// DefaultCommandTimeout bounds a command unless WithTimeout overrides it.
// Imports take theirs from import.timeout.
const DefaultCommandTimeout = 30 * time.Second

// commandContext derives the context a single command runs under. A nil ctx
// becomes context.Background and a non-positive timeout adds no deadline.
func commandContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger substitutes the no-op logger for a nil one.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
