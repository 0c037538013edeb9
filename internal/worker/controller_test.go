package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_RunsAllWorkers(t *testing.T) {
	var (
		count  atomic.Int64
		exited bool
	)

	err := Controller(context.Background(), 4, func(ctx context.Context, i int) func() error {
		return func() error {
			count.Add(1)
			return nil
		}
	}, func() { exited = true })

	require.NoError(t, err)
	assert.EqualValues(t, 4, count.Load())
	assert.True(t, exited)
}

func TestForEach_KeepsOrder(t *testing.T) {
	items := []int{5, 1, 4, 2, 3}
	out := make([]int, len(items))

	err := ForEach(context.Background(), 3, items, func(ctx context.Context, i int, item int) error {
		time.Sleep(time.Duration(item) * time.Millisecond)
		out[i] = item * 10
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{50, 10, 40, 20, 30}, out)
}

func TestForEach_BoundsConcurrency(t *testing.T) {
	var inflight, peak atomic.Int64

	err := ForEach(context.Background(), 2, make([]struct{}, 10), func(ctx context.Context, i int, _ struct{}) error {
		n := inflight.Add(1)
		defer inflight.Add(-1)

		for {
			p := peak.Load()

			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		time.Sleep(2 * time.Millisecond)
		return nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestForEach_StopsOnError(t *testing.T) {
	var (
		boom  = errors.New("boom")
		calls atomic.Int64
	)

	err := ForEach(context.Background(), 1, []int{1, 2, 3}, func(ctx context.Context, i int, item int) error {
		calls.Add(1)

		if item == 2 {
			return boom
		}

		return nil
	})

	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 2, calls.Load())
}

func TestForEach_Empty(t *testing.T) {
	assert.NoError(t, ForEach(context.Background(), 4, []string(nil), func(context.Context, int, string) error {
		return errors.New("unreachable")
	}))
}
