package retry

import (
	"context"
	"time"
)

type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Backoff hands out growing delays for loops that retry without a limit.
type Backoff struct {
	cfg   Config
	delay time.Duration
}

func NewBackoff(cfg Config) *Backoff {
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = 2.0
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = 100 * time.Millisecond
	}
	return &Backoff{cfg: cfg, delay: cfg.InitialDelay}
}

// Wait sleeps for the current delay and grows it. It returns ctx.Err() when
// ctx is done first.
func (b *Backoff) Wait(ctx context.Context) error {
	t := time.NewTimer(b.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	b.delay = time.Duration(float64(b.delay) * b.cfg.Multiplier)
	if b.cfg.MaxDelay > 0 && b.delay > b.cfg.MaxDelay {
		b.delay = b.cfg.MaxDelay
	}
	return nil
}

func (b *Backoff) Reset() { b.delay = b.cfg.InitialDelay }

// Do calls fn until it succeeds, attempts run out or ctx is done.
// The last error from fn is returned.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	b := NewBackoff(cfg)

	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == cfg.MaxAttempts {
			break
		}
		if b.Wait(ctx) != nil {
			return err
		}
	}
	return err
}
