// Package batch runs symbol-level operations in fixed-size concurrent
// groups with a pause between groups, pacing outbound calls under an
// external per-minute quota. It is a static rate limiter: it does not
// react to upstream 429 responses, it only spaces work by wall clock.
package batch

import (
	"context"
	"sync"
	"time"
)

// Run partitions items into consecutive groups of at most size, invokes
// op concurrently on every item of a group, and waits out delay between
// groups (never after the last). The result slice matches items by
// index, so output order is the input order regardless of completion
// order within a group. A canceled context stops scheduling further
// groups; slots of unprocessed items are left as zero values.
func Run[T, R any](ctx context.Context, items []T, size int, delay time.Duration, op func(context.Context, T) R) []R {
	if size <= 0 {
		size = 1
	}

	results := make([]R, len(items))
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = op(ctx, items[i])
			}(i)
		}
		wg.Wait()

		if end < len(items) {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return results
			}
		}
	}
	return results
}
