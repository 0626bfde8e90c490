package settlement

import (
	"math/rand/v2"
	"time"
)

// RetryPolicy controls the delay between attempts of a retryable job
type RetryPolicy struct {
	BaseInterval time.Duration
	MaxInterval  time.Duration
	JitterFactor float64 // Factor to add randomness to retry intervals (0.0-1.0)
}

// DefaultRetryPolicy returns the default retry policy
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		BaseInterval: 500 * time.Millisecond,
		MaxInterval:  30 * time.Second,
		JitterFactor: 0.2,
	}
}

// Backoff computes the delay after the given attempt (1-based) with
// exponential increase and jitter
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	backoff := p.BaseInterval
	for i := 1; i < attempt && backoff < p.MaxInterval; i++ {
		backoff *= 2
	}
	if p.MaxInterval > 0 && backoff > p.MaxInterval {
		backoff = p.MaxInterval
	}

	if p.JitterFactor > 0 {
		backoff += time.Duration(float64(backoff) * p.JitterFactor * rand.Float64())
	}
	return backoff
}
