// SPDX-License-Identifier: MIT
package recipe

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const defPoolSize = 8

// ErrParseBatch wraps the per-input failures of a ParseBatch call.
var ErrParseBatch = errors.New("failed to parse recipe batch")

// ParseBatch parses independent recipe documents concurrently over a
// goroutine pool.
//
// The result slice preserves input order. Failures don't stop the other
// inputs; the error joins every failure with its input index & the entry at
// a failed index is nil.
func ParseBatch(ctx context.Context, inputs []string, poolSize int) (results []Tokens, err error) {
	if len(inputs) < 1 {
		return
	}

	if poolSize < 1 {
		poolSize = defPoolSize
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrParseBatch, err)
		return
	}
	defer pool.Release()

	results = make([]Tokens, len(inputs))
	errs := make([]error, len(inputs))

	wg := new(sync.WaitGroup)
	for index := range inputs {
		index := index

		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			results[index], errs[index] = Parse(ctx, inputs[index])
		}); submitErr != nil {
			wg.Done()
			errs[index] = submitErr
		}
	}
	wg.Wait()

	for index := range errs {
		if errs[index] != nil {
			err = errors.Join(err, fmt.Errorf("input %d: %w", index, errs[index]))
		}
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseBatch, err)
	}

	return
}
