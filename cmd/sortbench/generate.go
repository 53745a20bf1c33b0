// Copyright 2025 go-parsort Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/ajroetker/go-parsort/psort/workerpool"
)

// generate builds an input array of n elements. Chunks are filled in
// parallel and each chunk seeds its own generator from (seed, chunk start),
// so the same seed, size and pool size always give the same array.
func generate(ctx context.Context, pool *workerpool.Pool, n int, c Case, seed int64) ([]int32, error) {
	data := make([]int32, n)
	err := pool.ParallelFor(ctx, n, func(_ context.Context, start, end int) error {
		switch c {
		case CaseAverage:
			rng := rand.New(rand.NewPCG(uint64(seed), uint64(start)))
			for i := start; i < end; i++ {
				data[i] = int32(rng.IntN(n))
			}
		case CaseSorted:
			for i := start; i < end; i++ {
				data[i] = int32(i)
			}
		case CaseReversed:
			for i := start; i < end; i++ {
				data[i] = int32(n - i)
			}
		default:
			return fmt.Errorf("%w: unknown case %q", ErrInvalidPlan, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
