package hooks

import (
	"context"
	"time"

	log "github.com/xlab/suplog"
)

// RetryPolicy bounds a submission: a fixed number of attempts with a fixed
// delay between them. No exponential growth, no jitter.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy is three attempts spaced one second apart.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 3,
	Delay:       time.Second,
}

// Submitter submits transactions with a retry policy. Every failure kind
// is retried alike; after the attempt budget is spent the last error is
// wrapped in a terminal SubmitError reporting the attempts made.
type Submitter struct {
	policy RetryPolicy
}

// NewSubmitter creates a Submitter with DefaultRetryPolicy, adjusted by
// opts.
func NewSubmitter(opts ...SubmitterOption) *Submitter {
	s := &Submitter{policy: DefaultRetryPolicy}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the submitter's retry policy.
func (s *Submitter) Policy() RetryPolicy {
	return s.policy
}

// Submit attempts client.SubmitAndWait until it succeeds or the attempt
// budget is exhausted, sleeping the fixed delay between attempts. The
// delay honors ctx cancellation.
func (s *Submitter) Submit(ctx context.Context, client Client, tx *Transaction, opts SubmitOptions) (*SubmitResult, error) {
	var lastErr error

	for attempt := 1; attempt <= s.policy.MaxAttempts; attempt++ {
		result, err := client.SubmitAndWait(ctx, tx, opts)
		if err == nil {
			return result, nil
		}
		lastErr = err
		log.WithError(err).
			WithField("attempt", attempt).
			WithField("max", s.policy.MaxAttempts).
			Warningln("hook submission failed")

		if attempt == s.policy.MaxAttempts {
			break
		}
		select {
		case <-time.After(s.policy.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, &SubmitError{Attempts: s.policy.MaxAttempts, Err: lastErr}
}
