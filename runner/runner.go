// Package runner runs long-lived components resolved from a container.
package runner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wirebox/wirebox"
)

// Runnable represents a component that can be run with a context.
type Runnable interface {
	Run(ctx context.Context) error
}

// RunAll runs all the provided runnables concurrently and waits for all of them to finish.
//
// This method is blocking and will return an error if any of the runnables returns an error.
func RunAll(parentCtx context.Context, runnables ...Runnable) error {
	group, ctx := errgroup.WithContext(parentCtx)

	for _, runnable := range runnables {
		runnable := runnable
		group.Go(func() error {
			return runnable.Run(ctx)
		})
	}

	return group.Wait()
}

// Collect resolves the given identifiers and asserts each value is Runnable.
func Collect(c *wirebox.Container, ids ...string) ([]Runnable, error) {
	runnables := make([]Runnable, len(ids))
	for i, id := range ids {
		val, err := c.Get(id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve runnable %q:\n\t%w", id, err)
		}
		runnable, ok := val.(Runnable)
		if !ok {
			return nil, fmt.Errorf("component %q is %T, which is not Runnable", id, val)
		}
		runnables[i] = runnable
	}

	return runnables, nil
}
