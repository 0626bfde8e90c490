package core

import (
	"context"
	"time"
)

// Duration is a domain-specific wrapper around time.Duration
type Duration time.Duration

// Common duration constants
const (
	Millisecond Duration = Duration(time.Millisecond)
	Second               = Duration(time.Second)
	Minute               = Duration(time.Minute)
	Hour                 = Duration(time.Hour)
)

// Std converts domain Duration to time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Timer is a pending callback scheduled through AfterFunc
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or the timer was stopped.
	Stop() bool
}

// TimeProvider abstracts time operations for the domain
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) Duration
	Until(t time.Time) Duration
	AfterFunc(d Duration, f func()) Timer
	WithTimeout(ctx context.Context, timeout Duration) (context.Context, context.CancelFunc)
}
