// Package aggregation evaluates batches of aggregation queries on a bounded
// worker pool.
package aggregation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	coreagg "github.com/aevon-lab/calseries/internal/core/aggregation"
)

const (
	defaultMaxBatchSize = 1000
	defaultWorkerCount  = 10
)

// ErrBatchTooLarge is returned when a batch holds more queries than allowed.
var ErrBatchTooLarge = errors.New("batch too large")

// Query is one aggregation of a batch.
type Query struct {
	Series          string
	Intervals       []coreagg.Interval
	Mode            coreagg.Mode
	UseLastInterval bool
}

// Outcome is the answer to the query at the same index of the batch.
// Exactly one of Result and Err is meaningful.
type Outcome struct {
	Result coreagg.Result
	Err    error
}

// Evaluator answers a single query.
type Evaluator interface {
	Evaluate(ctx context.Context, q Query) (coreagg.Result, error)
}

// BatchJobParameter controls the size and parallelism of a batch run.
type BatchJobParameter struct {
	MaxBatchSize int
	WorkerCount  int
}

// DefaultBatchJobOptions returns safe defaults for request-scoped batches.
func DefaultBatchJobOptions() BatchJobParameter {
	return BatchJobParameter{
		MaxBatchSize: defaultMaxBatchSize,
		WorkerCount:  defaultWorkerCount,
	}
}

func (o BatchJobParameter) normalized() BatchJobParameter {
	n := o
	if n.MaxBatchSize <= 0 {
		n.MaxBatchSize = defaultMaxBatchSize
	}
	if n.WorkerCount <= 0 {
		n.WorkerCount = defaultWorkerCount
	}
	return n
}

// CheckSize rejects a batch of n queries when it exceeds MaxBatchSize.
func (o BatchJobParameter) CheckSize(n int) error {
	limit := o.normalized().MaxBatchSize
	if n > limit {
		return fmt.Errorf("%w: %d queries (max %d)", ErrBatchTooLarge, n, limit)
	}
	return nil
}

// RunBatch evaluates queries concurrently and returns one outcome per query,
// in query order. A failing query does not stop the others. Queries not yet
// started when ctx is cancelled fail with the context error.
func RunBatch(ctx context.Context, eval Evaluator, queries []Query, params BatchJobParameter) ([]Outcome, error) {
	params = params.normalized()
	if err := params.CheckSize(len(queries)); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(queries))
	workerCount := minInt(params.WorkerCount, len(queries))
	if workerCount <= 0 {
		return outcomes, nil
	}

	started := time.Now()
	jobs := make(chan int, len(queries))

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					outcomes[idx].Err = err
					continue
				}
				outcomes[idx].Result, outcomes[idx].Err = eval.Evaluate(ctx, queries[idx])
			}
		}()
	}

	for idx := range queries {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	slog.Debug("[BatchJob] Batch evaluated",
		"queries", len(queries),
		"failed", failed,
		"workers", workerCount,
		"duration", time.Since(started))

	return outcomes, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
