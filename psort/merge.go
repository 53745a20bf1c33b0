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
	"cmp"
	"context"

	"github.com/ajroetker/go-parsort/psort/workerpool"
)

// Merge sorts data with parallel mergesort. The halves of every range above
// the threshold are sorted as a fork-join pair and then merged sequentially
// by the task that forked them. The sort is stable.
//
// A single scratch buffer of len(data) elements is allocated per call;
// each merge uses the part of it that matches its own range.
//
// On error the contents of data are undefined.
func (s *Sorter[T]) Merge(ctx context.Context, data []T) error {
	if len(data) < 2 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return classify(ctx, "Merge", err)
	}
	m := merger[T]{
		pool:    s.pool,
		opts:    s.opts,
		data:    data,
		buf:     make([]T, len(data)),
		compare: cmp.Compare[T],
	}
	return classify(ctx, "Merge", m.sort(ctx, 0, len(data)))
}

// merger carries the state shared by all tasks of one parallel mergesort.
type merger[E any] struct {
	pool    *workerpool.Pool
	opts    Options
	data    []E
	buf     []E
	compare func(a, b E) int
}

// sort sorts the half-open range data[start:end].
func (m *merger[E]) sort(ctx context.Context, start, end int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !m.opts.splits(end - start) {
		mergeSort(m.data, m.buf, start, end-1, m.compare)
		return nil
	}

	mid := start + (end-start)/2
	err := m.pool.Fork(ctx,
		func(ctx context.Context) error { return m.sort(ctx, start, mid) },
		func(ctx context.Context) error { return m.sort(ctx, mid, end) },
	)
	if err != nil {
		return err
	}
	mergeRuns(m.data, m.buf, start, mid, end, m.compare)
	return nil
}
