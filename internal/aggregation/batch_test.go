package aggregation

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreagg "github.com/aevon-lab/calseries/internal/core/aggregation"
	tserr "github.com/aevon-lab/calseries/internal/core/errors"
)

// fakeEvaluator answers with the number of intervals, or fails for series
// named "bad".
type fakeEvaluator struct {
	calls     atomic.Int64
	inFlight  atomic.Int64
	maxFlight atomic.Int64
	delay     time.Duration
}

func (f *fakeEvaluator) Evaluate(_ context.Context, q Query) (coreagg.Result, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxFlight.Load()
		if n <= cur || f.maxFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	time.Sleep(f.delay)

	if q.Series == "bad" {
		return coreagg.Result{}, tserr.OutOfRangef("series %s", q.Series)
	}
	return coreagg.Result{Value: float64(len(q.Intervals))}, nil
}

func queries(names ...string) []Query {
	out := make([]Query, len(names))
	for i, name := range names {
		out[i] = Query{Series: name, Mode: coreagg.ModeSum, Intervals: make([]coreagg.Interval, i+1)}
	}
	return out
}

func TestRunBatch_PreservesOrderAndIsolatesErrors(t *testing.T) {
	eval := &fakeEvaluator{}

	outcomes, err := RunBatch(context.Background(), eval, queries("a", "bad", "c", "d"), BatchJobParameter{WorkerCount: 3})
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	assert.NoError(t, outcomes[0].Err)
	assert.Equal(t, 1.0, outcomes[0].Result.Value)
	assert.ErrorIs(t, outcomes[1].Err, tserr.ErrOutOfRange)
	assert.Equal(t, 3.0, outcomes[2].Result.Value)
	assert.Equal(t, 4.0, outcomes[3].Result.Value)
	assert.Equal(t, int64(4), eval.calls.Load())
}

func TestRunBatch_BoundsConcurrency(t *testing.T) {
	eval := &fakeEvaluator{delay: 5 * time.Millisecond}

	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("s%d", i)
	}

	_, err := RunBatch(context.Background(), eval, queries(names...), BatchJobParameter{WorkerCount: 2})
	require.NoError(t, err)
	require.LessOrEqual(t, eval.maxFlight.Load(), int64(2))
	require.Equal(t, int64(20), eval.calls.Load())
}

func TestRunBatch_RejectsOversizedBatch(t *testing.T) {
	_, err := RunBatch(context.Background(), &fakeEvaluator{}, queries("a", "b", "c"), BatchJobParameter{MaxBatchSize: 2})
	require.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestBatchJobParameter_CheckSize(t *testing.T) {
	require.NoError(t, BatchJobParameter{MaxBatchSize: 2}.CheckSize(2))
	require.ErrorIs(t, BatchJobParameter{MaxBatchSize: 2}.CheckSize(3), ErrBatchTooLarge)
	require.NoError(t, BatchJobParameter{}.CheckSize(defaultMaxBatchSize))
}

func TestRunBatch_Empty(t *testing.T) {
	outcomes, err := RunBatch(context.Background(), &fakeEvaluator{}, nil, DefaultBatchJobOptions())
	require.NoError(t, err)
	require.Empty(t, outcomes)
}

func TestRunBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eval := &fakeEvaluator{}
	outcomes, err := RunBatch(ctx, eval, queries("a", "b"), DefaultBatchJobOptions())
	require.NoError(t, err)
	for _, o := range outcomes {
		require.True(t, errors.Is(o.Err, context.Canceled))
	}
	require.Equal(t, int64(0), eval.calls.Load())
}

func TestBatchJobParameter_Normalized(t *testing.T) {
	n := BatchJobParameter{}.normalized()
	require.Equal(t, DefaultBatchJobOptions(), n)

	custom := BatchJobParameter{MaxBatchSize: 5, WorkerCount: 2}.normalized()
	require.Equal(t, 5, custom.MaxBatchSize)
	require.Equal(t, 2, custom.WorkerCount)
}
