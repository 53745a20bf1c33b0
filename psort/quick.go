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

package psort

import (
	"context"
	"slices"
)

// Quick sorts data in place with parallel quicksort. A partition step forks
// its two sides when both are above the threshold; a side at or below it is
// finished with the library sort by the task that partitioned it.
//
// On error the contents of data are undefined.
func (s *Sorter[T]) Quick(ctx context.Context, data []T) error {
	if len(data) < 2 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return classify(ctx, "Quick", err)
	}
	return classify(ctx, "Quick", s.quick(ctx, data, 0, len(data)-1, depthLimit(len(data))))
}

// quick sorts the inclusive range data[low..high].
func (s *Sorter[T]) quick(ctx context.Context, data []T, low, high, depth int) error {
	if high <= low {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !s.opts.splits(high-low+1) || depth == 0 {
		slices.Sort(data[low : high+1])
		return nil
	}

	// [low, pi-1] and [pi+1, high] are disjoint and pi is final.
	pi := partition(data, low, high)

	// Each side decides on its own; a side at or below the threshold is
	// sorted by this task rather than forked.
	if s.opts.splits(pi-low) && s.opts.splits(high-pi) {
		return s.pool.Fork(ctx,
			func(ctx context.Context) error { return s.quick(ctx, data, low, pi-1, depth-1) },
			func(ctx context.Context) error { return s.quick(ctx, data, pi+1, high, depth-1) },
		)
	}
	if err := s.quick(ctx, data, low, pi-1, depth-1); err != nil {
		return err
	}
	return s.quick(ctx, data, pi+1, high, depth-1)
}
