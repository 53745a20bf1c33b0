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

	"github.com/ajroetker/go-parsort/psort/workerpool"
)

// Sorter runs the parallel sorts on a worker pool that lives until Close.
// It holds no per-call state, so one Sorter may sort separate slices from
// many goroutines at once.
type Sorter[T Integer] struct {
	opts Options
	pool *workerpool.Pool
}

// New creates a Sorter and starts its workers.
func New[T Integer](opts ...Option) *Sorter[T] {
	o := resolveOptions(opts)
	return &Sorter[T]{
		opts: o,
		pool: workerpool.New(o.Parallelism),
	}
}

// Options returns the resolved options of s.
func (s *Sorter[T]) Options() Options {
	return s.opts
}

// NumWorkers returns the number of pool workers.
func (s *Sorter[T]) NumWorkers() int {
	return s.pool.NumWorkers()
}

// Close stops the workers. It must not be called while a sort is running.
func (s *Sorter[T]) Close() {
	s.pool.Close()
}

// ParallelQuick sorts data with parallel quicksort on a pool that exists
// only for this call.
func ParallelQuick[T Integer](data []T, opts ...Option) error {
	s := New[T](opts...)
	defer s.Close()
	return s.Quick(context.Background(), data)
}

// ParallelMerge sorts data with parallel mergesort on a pool that exists
// only for this call. The sort is stable.
func ParallelMerge[T Integer](data []T, opts ...Option) error {
	s := New[T](opts...)
	defer s.Close()
	return s.Merge(context.Background(), data)
}

// ParallelShell sorts data with phase-parallel shell sort on a pool that
// exists only for this call.
func ParallelShell[T Integer](data []T, opts ...Option) error {
	s := New[T](opts...)
	defer s.Close()
	return s.Shell(context.Background(), data)
}
