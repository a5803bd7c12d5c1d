package progress

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/kship/internal/logger"
)

func TestPlain_ReturnsActionResult(t *testing.T) {
	logger.UseTestMode()

	called := false
	err := Plain{}.Run(context.Background(), "waiting", func(context.Context) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)

	boom := errors.New("boom")
	err = Plain{}.Run(context.Background(), "waiting", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestSpinner_ReturnsActionResult(t *testing.T) {
	s := Spinner{Accessible: true, Output: io.Discard}

	require.NoError(t, s.Run(context.Background(), "waiting", func(context.Context) error { return nil }))

	boom := errors.New("boom")
	assert.ErrorIs(t, s.Run(context.Background(), "waiting", func(context.Context) error { return boom }), boom)
}

func TestSpinner_CancelStopsAction(t *testing.T) {
	s := Spinner{Accessible: true, Output: io.Discard}
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := s.Run(ctx, "waiting", func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("action kept running after the spinner stopped")
	}
}
