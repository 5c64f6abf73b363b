package githubapi

import (
	"context"
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type systemClock struct{}

// SystemClock returns a Clock backed by the real wall clock. Sleeps are
// cancellable via the context.
func SystemClock() interfaces.Clock {
	return &systemClock{}
}

func (x *systemClock) Now() time.Time {
	return time.Now()
}

func (x *systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "sleep cancelled")
	case <-timer.C:
		return nil
	}
}
