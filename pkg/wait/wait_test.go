package wait_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/windowsadmins/wampdoctor/pkg/wait"
)

func fastConfig(timeout time.Duration) wait.Config {
	return wait.Config{
		InitialInterval: time.Millisecond,
		Multiplier:      2,
		MaxInterval:     5 * time.Millisecond,
		Timeout:         timeout,
	}
}

func TestUntil(t *testing.T) {
	t.Parallel()

	t.Run("reached after a few polls", func(t *testing.T) {
		t.Parallel()
		calls := 0
		err := wait.Until(context.Background(), fastConfig(time.Second), func(context.Context) (bool, error) {
			calls++
			return calls == 3, nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		err := wait.Until(context.Background(), fastConfig(20*time.Millisecond), func(context.Context) (bool, error) {
			return false, nil
		})
		require.ErrorIs(t, err, wait.ErrTimeout)
	})

	t.Run("condition error stops the wait", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("query failed")
		err := wait.Until(context.Background(), fastConfig(time.Second), func(context.Context) (bool, error) {
			return false, boom
		})
		require.ErrorIs(t, err, boom)
	})

	t.Run("zero timeout still checks once", func(t *testing.T) {
		t.Parallel()
		err := wait.Until(context.Background(), fastConfig(0), func(context.Context) (bool, error) {
			return true, nil
		})
		require.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := wait.Until(ctx, fastConfig(time.Minute), func(context.Context) (bool, error) {
			return false, nil
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}
