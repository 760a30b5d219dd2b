package background

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a detached task so a stuck downstream call cannot
// leak the goroutine forever.
const DefaultTimeout = 5 * time.Minute

// Runner launches fire-and-forget tasks that must outlive the request that
// triggered them. Each task gets its own context derived from the parent's
// values but not its cancellation, a timeout, and panic recovery.
type Runner struct {
	logger  *zap.Logger
	timeout time.Duration
}

// NewRunner creates a runner. Pass a nil logger to disable logging.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, timeout: DefaultTimeout}
}

// Go runs fn in a new goroutine detached from parent's cancellation.
// Request-scoped values survive; the deadline and cancel signal do not.
func (r *Runner) Go(parent context.Context, name string, fn func(context.Context) error) {
	taskID := uuid.New()
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), r.timeout)
		defer cancel()

		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("💥 background task panicked",
					zap.String("task", name),
					zap.String("task_id", taskID.String()),
					zap.Any("panic", p),
				)
			}
		}()

		if err := fn(ctx); err != nil {
			r.logger.Error("background task failed",
				zap.String("task", name),
				zap.String("task_id", taskID.String()),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return
		}

		r.logger.Debug("background task done",
			zap.String("task", name),
			zap.String("task_id", taskID.String()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}()
}
