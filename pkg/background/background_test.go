package background

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wait(t *testing.T, ch chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestRunner_Go_DetachesFromParentCancellation(t *testing.T) {
	r := NewRunner(nil)
	parent, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	var taskErr error
	r.Go(parent, "detached", func(ctx context.Context) error {
		taskErr = ctx.Err()
		close(done)
		return nil
	})

	wait(t, done, "detached task")
	assert.NoError(t, taskErr, "task context must outlive a canceled parent")
}

func TestRunner_Go_CarriesParentValues(t *testing.T) {
	type key struct{}
	r := NewRunner(nil)
	parent := context.WithValue(context.Background(), key{}, "req-42")

	done := make(chan struct{})
	var got any
	r.Go(parent, "values", func(ctx context.Context) error {
		got = ctx.Value(key{})
		close(done)
		return nil
	})

	wait(t, done, "value-carrying task")
	assert.Equal(t, "req-42", got)
}

func TestRunner_Go_RecoversPanic(t *testing.T) {
	r := NewRunner(nil)

	reached := make(chan struct{})
	r.Go(context.Background(), "panicky", func(context.Context) error {
		close(reached)
		panic("boom")
	})
	wait(t, reached, "panicking task")

	// a second task still runs after the first one panicked
	done := make(chan struct{})
	r.Go(context.Background(), "after-panic", func(context.Context) error {
		close(done)
		return nil
	})
	wait(t, done, "follow-up task")
}

func TestRunner_Go_SwallowsTaskErrors(t *testing.T) {
	r := NewRunner(nil)

	done := make(chan struct{})
	r.Go(context.Background(), "failing", func(context.Context) error {
		defer close(done)
		return errors.New("downstream unavailable")
	})

	// the error is logged, never returned to the caller
	wait(t, done, "failing task")
}

func TestRunner_Go_AppliesTimeout(t *testing.T) {
	r := NewRunner(nil)
	require.Equal(t, DefaultTimeout, r.timeout)

	done := make(chan struct{})
	var deadline time.Time
	var ok bool
	r.Go(context.Background(), "deadline", func(ctx context.Context) error {
		deadline, ok = ctx.Deadline()
		close(done)
		return nil
	})

	wait(t, done, "deadline task")
	require.True(t, ok, "task context must carry a deadline")
	assert.WithinDuration(t, time.Now().Add(DefaultTimeout), deadline, time.Minute)
}
