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

	"github.com/ajroetker/go-parsort/psort"
)

// Algorithm is one of the six sorts under test.
type Algorithm struct {
	Family  string // merge, quick or shell
	Variant string // sequential or parallel
	Sort    func(ctx context.Context, s *psort.Sorter[int32], data []int32) error
}

// ID returns the name used on the command line and in reports.
func (a Algorithm) ID() string {
	return a.Variant + "-" + a.Family
}

var algorithms = []Algorithm{
	{"merge", "sequential", func(_ context.Context, _ *psort.Sorter[int32], data []int32) error {
		return psort.SequentialMerge(data, 0, len(data)-1)
	}},
	{"quick", "sequential", func(_ context.Context, s *psort.Sorter[int32], data []int32) error {
		return psort.SequentialQuick(data, 0, len(data)-1, psort.WithThreshold(s.Options().Threshold))
	}},
	{"shell", "sequential", func(_ context.Context, _ *psort.Sorter[int32], data []int32) error {
		psort.SequentialShell(data)
		return nil
	}},
	{"merge", "parallel", func(ctx context.Context, s *psort.Sorter[int32], data []int32) error {
		return s.Merge(ctx, data)
	}},
	{"quick", "parallel", func(ctx context.Context, s *psort.Sorter[int32], data []int32) error {
		return s.Quick(ctx, data)
	}},
	{"shell", "parallel", func(ctx context.Context, s *psort.Sorter[int32], data []int32) error {
		return s.Shell(ctx, data)
	}},
}

// selectAlgorithms returns the algorithms named by ids, in the order given.
// An empty list selects all six.
func selectAlgorithms(ids []string) ([]Algorithm, error) {
	if len(ids) == 0 {
		return algorithms, nil
	}
	selected := make([]Algorithm, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, a := range algorithms {
			if a.ID() == id {
				selected = append(selected, a)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidPlan, id)
		}
	}
	return selected, nil
}
