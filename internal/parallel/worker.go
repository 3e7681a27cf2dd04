// Package parallel provides the worker pool used by the compute backend
// for chunked kernel execution.
//
// Kernels stay synchronous from the caller's perspective: a parallel op
// fans chunks out to the pool and collects every result before returning,
// so all column invariants hold when control returns.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// WorkerPool manages a pool of goroutines for parallel processing.
type WorkerPool struct {
	numWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a new worker pool. A non-positive worker count
// defaults to runtime.NumCPU().
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		numWorkers: numWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// NumWorkers returns the pool size.
func (wp *WorkerPool) NumWorkers() int { return wp.numWorkers }

// Release stops the pool.
func (wp *WorkerPool) Release() { wp.cancel() }

type indexedItem[T any] struct {
	index int
	item  T
}

// ProcessIndexed executes work items in parallel while preserving order:
// results[i] is worker(i, items[i]).
func ProcessIndexed[T, R any](wp *WorkerPool, items []T, worker func(int, T) R) []R {
	if len(items) == 0 {
		return nil
	}

	itemCh := make(chan indexedItem[T], len(items))
	results := make([]R, len(items))

	var wg sync.WaitGroup
	for range wp.numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range itemCh {
				select {
				case <-wp.ctx.Done():
					return
				default:
					results[item.index] = worker(item.index, item.item)
				}
			}
		}()
	}

	for i, item := range items {
		itemCh <- indexedItem[T]{index: i, item: item}
	}
	close(itemCh)

	wg.Wait()
	return results
}

// Chunk describes a half-open row range assigned to one worker.
type Chunk struct {
	Start int
	Stop  int
}

// Chunks splits [0, n) into ranges of at most chunkSize rows.
func Chunks(n, chunkSize int) []Chunk {
	if n <= 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = n
	}
	out := make([]Chunk, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		stop := start + chunkSize
		if stop > n {
			stop = n
		}
		out = append(out, Chunk{Start: start, Stop: stop})
	}
	return out
}
