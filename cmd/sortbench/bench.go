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
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ajroetker/go-parsort/psort"
	"github.com/ajroetker/go-parsort/psort/workerpool"
)

// Measurement holds the timings of one algorithm at one size.
type Measurement struct {
	Size      int
	Algorithm Algorithm
	Runs      []time.Duration
	Sorted    bool
}

// Mean returns the average run time.
func (m Measurement) Mean() time.Duration {
	if len(m.Runs) == 0 {
		return 0
	}
	return lo.Sum(m.Runs) / time.Duration(len(m.Runs))
}

// Min returns the fastest run.
func (m Measurement) Min() time.Duration {
	return lo.Min(m.Runs)
}

// Max returns the slowest run.
func (m Measurement) Max() time.Duration {
	return lo.Max(m.Runs)
}

// Runner executes a Plan.
type Runner struct {
	Plan   Plan
	Logger *slog.Logger
}

// Run benchmarks every selected algorithm on every size. For each run one
// input array is generated and every algorithm sorts its own copy of it.
// A wrong result is recorded in the report, not returned as an error; an
// error from a sort aborts the session.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := r.Plan.Validate(); err != nil {
		return nil, err
	}
	algs, err := selectAlgorithms(r.Plan.Algorithms)
	if err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sorter := psort.New[int32](r.Plan.sortOptions()...)
	defer sorter.Close()
	gen := workerpool.New(r.Plan.Parallelism)
	defer gen.Close()

	report := &Report{
		ID:      uuid.New(),
		Started: time.Now(),
		Host:    detectHost(),
		Plan:    r.Plan,
	}
	logger.Info("benchmark started",
		"id", report.ID,
		"sizes", len(r.Plan.Sizes),
		"runs", r.Plan.Runs,
		"case", r.Plan.Case,
		"workers", sorter.NumWorkers(),
		"threshold", sorter.Options().Threshold)

	for _, size := range r.Plan.Sizes {
		ms := make([]Measurement, len(algs))
		for i, a := range algs {
			ms[i] = Measurement{Size: size, Algorithm: a, Sorted: true}
		}

		for run := range r.Plan.Runs {
			input, err := generate(ctx, gen, size, r.Plan.Case, r.Plan.Seed+int64(run))
			if err != nil {
				return nil, fmt.Errorf("generating %d elements: %w", size, err)
			}

			for i, a := range algs {
				data := slices.Clone(input)
				start := time.Now()
				if err := a.Sort(ctx, sorter, data); err != nil {
					return nil, fmt.Errorf("%s on %d elements: %w", a.ID(), size, err)
				}
				elapsed := time.Since(start)

				ms[i].Runs = append(ms[i].Runs, elapsed)
				if !psort.IsSorted(data) {
					ms[i].Sorted = false
					logger.Error("result not sorted", "algorithm", a.ID(), "size", size, "run", run)
				}
				logger.Debug("run finished", "algorithm", a.ID(), "size", size, "run", run, "elapsed", elapsed)
			}
		}

		for _, m := range ms {
			report.Results = append(report.Results, newResult(m))
		}
		logger.Info("size finished", "size", size)
	}

	report.Finished = time.Now()
	return report, nil
}
