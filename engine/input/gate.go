package input

import (
	"time"

	"golang.org/x/time/rate"
)

// ClickGate limits how fast board clicks turn into commands, so a held or
// bouncing button does not flood the queue.
type ClickGate struct {
	limiter *rate.Limiter
}

// NewClickGate allows perSecond clicks with a small burst
func NewClickGate(perSecond float64, burst int) *ClickGate {
	return &ClickGate{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Allow reports whether a click at now may pass
func (g *ClickGate) Allow(now time.Time) bool {
	return g.limiter.AllowN(now, 1)
}
