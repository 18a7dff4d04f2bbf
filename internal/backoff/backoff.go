// Package backoff wraps cenkalti/backoff with the retry policies used by the
// completion client.
package backoff

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrPermanent marks an error that must not be retried. Wrap it with %w.
var ErrPermanent = errors.New("permanent error, do not retry")

type (
	// Operation is the retried call.
	Operation func() error
	// Notify is called after each failed attempt with the wait before the next.
	Notify func(error, time.Duration)
)

// Config selects a policy. A zero Config does not retry.
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsedTime bounds the total retry time; zero means no bound.
	MaxElapsedTime time.Duration
	MaxRetries     uint
}

// Enabled reports whether the config retries at all.
func (c Config) Enabled() bool {
	return c.MaxRetries > 0
}

// Backoff retries operations under a policy bound to a context.
type Backoff struct {
	policy backoff.BackOff
}

// New returns an exponential policy, or a stop policy when cfg is not
// enabled. The policy ends when ctx is done.
func New(ctx context.Context, cfg Config) *Backoff {
	if !cfg.Enabled() {
		return &Backoff{policy: backoff.WithContext(&backoff.StopBackOff{}, ctx)}
	}

	exp := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		exp.InitialInterval = cfg.InitialInterval
	}

	if cfg.MaxInterval > 0 {
		exp.MaxInterval = cfg.MaxInterval
	}

	exp.MaxElapsedTime = cfg.MaxElapsedTime

	return &Backoff{
		policy: backoff.WithContext(backoff.WithMaxRetries(exp, uint64(cfg.MaxRetries)), ctx),
	}
}

// Retry runs op until it succeeds, fails permanently, or the policy stops.
func (b *Backoff) Retry(op Operation) error {
	return b.RetryNotify(op, nil)
}

// RetryNotify is Retry with a notification after each failed attempt.
func (b *Backoff) RetryNotify(op Operation, notify Notify) error {
	wrapped := func() error {
		err := op()
		if errors.Is(err, ErrPermanent) {
			return backoff.Permanent(err)
		}

		return err
	}

	return backoff.RetryNotify(wrapped, b.policy, backoff.Notify(notify))
}
