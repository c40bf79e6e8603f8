package provider

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Throttle enforces a minimum delay between upstream requests. A zero
// minimum delay disables throttling.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle allowing one request per minDelay.
func NewThrottle(minDelay time.Duration) *Throttle {
	if minDelay <= 0 {
		return &Throttle{}
	}

	return &Throttle{limiter: rate.NewLimiter(rate.Every(minDelay), 1)}
}

// Wait blocks until the next request slot or the context ends.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.limiter == nil {
		return nil
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
