// pkg/wait/wait.go - bounded polling with a growing interval.

package wait

import (
	"context"
	"errors"
	"time"

	"github.com/windowsadmins/wampdoctor/pkg/logging"
)

// ErrTimeout is returned when the condition did not hold within Config.Timeout.
var ErrTimeout = errors.New("timed out waiting for condition")

// Config defines the polling schedule.
type Config struct {
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
	Timeout         time.Duration
}

// DefaultConfig polls quickly at first and backs off to one second.
func DefaultConfig(timeout time.Duration) Config {
	return Config{
		InitialInterval: 300 * time.Millisecond,
		Multiplier:      1.5,
		MaxInterval:     time.Second,
		Timeout:         timeout,
	}
}

// Condition reports whether the awaited state has been reached. An error
// stops the wait and is returned as is.
type Condition func(ctx context.Context) (bool, error)

// Until polls cond until it returns true, returns an error, the timeout
// elapses or ctx is done. The condition is always checked at least once.
func Until(ctx context.Context, cfg Config, cond Condition) error {
	deadline := time.Now().Add(cfg.Timeout)
	interval := cfg.InitialInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	for attempt := 1; ; attempt++ {
		done, err := cond(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			logging.Debug("Wait timed out", "attempts", attempt, "timeout", cfg.Timeout.String())
			return ErrTimeout
		}
		sleep := interval
		if sleep > remaining {
			sleep = remaining
		}
		logging.Debug("Condition not met yet", "attempt", attempt, "retry_in", sleep.String())

		t := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}

		if cfg.Multiplier > 1 {
			interval = time.Duration(float64(interval) * cfg.Multiplier)
		}
		if cfg.MaxInterval > 0 && interval > cfg.MaxInterval {
			interval = cfg.MaxInterval
		}
	}
}
