package mapreduce

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtnitsch/wordfreq/pkg/analytics"
)

// ParallelMap applies fn to every item on a pool of workers goroutines.
// The output keeps input order. The first error stops dispatching and is
// returned without partial results.
func ParallelMap[In, Out any](ctx context.Context, items []In, workers int, fn func(In) (Out, error)) ([]Out, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}
	results := make([]Out, len(items))
	if len(items) == 0 {
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	jobs := make(chan int)

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			out, err := fn(items[i])
			if err != nil {
				once.Do(func() {
					firstErr = fmt.Errorf("item %d: %w", i, err)
					cancel()
				})
				continue
			}
			results[i] = out
		}
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker()
	}

dispatch:
	for i := range items {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Map generates a word frequency table for a single chunk.
func Map(chunk string) (*analytics.FrequencyTable, error) {
	return analytics.Tokenize(chunk), nil
}

// MapChunks tokenizes every chunk concurrently. tables[i] belongs to chunks[i].
func MapChunks(ctx context.Context, chunks []string, workers int) ([]*analytics.FrequencyTable, error) {
	return ParallelMap(ctx, chunks, workers, Map)
}

// Reduce folds a slice of frequency tables into a single table with
// FrequencyTable.Merge. Inputs are left untouched.
func Reduce(intermediate []*analytics.FrequencyTable) *analytics.FrequencyTable {
	finalResults := analytics.NewFrequencyTable()

	for _, counts := range intermediate {
		finalResults = finalResults.Merge(counts)
	}

	return finalResults
}
