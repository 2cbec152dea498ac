// internal/trigger/runner.go
package trigger

import (
	"context"
	"time"
)

// Run drives Step until ctx is cancelled. One goroutine, no overlap.
// The link is closed on every exit path.
func (l *Loop) Run(ctx context.Context) error {
	defer l.closeLink()

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		wait := l.Step(ctx)

		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
