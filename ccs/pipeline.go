// SPDX-License-Identifier: MIT

package ccs

import (
	"context"
	"sync"
)

// Outcome is one group's result or error, tagged with its input position.
type Outcome struct {
	Index  int
	Group  string
	Result Result
	Err    error
}

// Run calls every group on workers goroutines and hands outcomes to visit in
// input order. A per-group error reaches visit in Outcome.Err; an error from
// visit, or cancellation of ctx, stops the run and is returned.
func (c *Caller) Run(ctx context.Context, groups []Group, workers int, visit func(Outcome) error) error {
	if workers < 1 {
		workers = 1
	}
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, workers*2)
	results := make(chan Outcome, workers*2)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				res, err := c.Call(ctx, groups[i])
				select {
				case results <- Outcome{Index: i, Group: groups[i].ID, Result: res, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range groups {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Outcomes arrive in completion order; hold them until their turn.
	pending := make(map[int]Outcome)
	next := 0
	var visitErr error
	for o := range results {
		if visitErr != nil {
			continue
		}
		pending[o.Index] = o
		for {
			p, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err := visit(p); err != nil {
				visitErr = err
				cancel()

				break
			}
		}
	}

	if visitErr != nil {
		return visitErr
	}

	return parent.Err()
}
