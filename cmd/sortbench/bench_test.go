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
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-parsort/psort"
	"github.com/ajroetker/go-parsort/psort/workerpool"
)

func smallPlan() Plan {
	return Plan{
		Sizes:       []int{0, 1, 1000, 3000},
		Runs:        2,
		Case:        CaseAverage,
		Parallelism: 2,
		Threshold:   128,
		Seed:        7,
	}
}

func TestGenerate(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()
	ctx := context.Background()

	avg, err := generate(ctx, pool, 1000, CaseAverage, 1)
	require.NoError(t, err)
	require.Len(t, avg, 1000)
	for i, v := range avg {
		require.True(t, v >= 0 && v < 1000, "avg[%d] = %d out of [0, 1000)", i, v)
	}

	again, err := generate(ctx, pool, 1000, CaseAverage, 1)
	require.NoError(t, err)
	assert.Equal(t, avg, again, "same seed must give the same array")

	sorted, err := generate(ctx, pool, 100, CaseSorted, 1)
	require.NoError(t, err)
	assert.True(t, psort.IsSorted(sorted))

	reversed, err := generate(ctx, pool, 100, CaseReversed, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(100), reversed[0])
	assert.Equal(t, int32(1), reversed[99])

	_, err = generate(ctx, pool, 10, Case("zigzag"), 1)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestRunnerRun(t *testing.T) {
	var logs bytes.Buffer
	r := &Runner{Plan: smallPlan(), Logger: newTestLogger(&logs)}

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.False(t, report.Finished.Before(report.Started))
	require.Len(t, report.Results, 4*6)
	for _, res := range report.Results {
		assert.True(t, res.Sorted, "%s at size %d not sorted", res.Algorithm, res.Size)
		assert.GreaterOrEqual(t, res.MaxMS, res.MeanMS)
		assert.GreaterOrEqual(t, res.MeanMS, res.MinMS)
	}
	assert.Contains(t, logs.String(), "benchmark started")
	assert.Contains(t, logs.String(), "run finished")
}

func TestRunnerSelectedAlgorithms(t *testing.T) {
	plan := smallPlan()
	plan.Case = CaseReversed
	plan.Algorithms = []string{"parallel-shell", "sequential-shell"}

	report, err := (&Runner{Plan: plan}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 4*2)

	speedups := report.Speedups()
	require.NotEmpty(t, speedups)
	for _, s := range speedups {
		assert.Equal(t, "shell", s.Family)
	}
}

func TestRunnerInvalidPlan(t *testing.T) {
	plan := smallPlan()
	plan.Runs = 0

	_, err := (&Runner{Plan: plan}).Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestRunnerInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := smallPlan()
	plan.Algorithms = []string{"parallel-merge"}
	_, err := (&Runner{Plan: plan}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMeasurementStats(t *testing.T) {
	m := Measurement{Runs: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}

	assert.Equal(t, 2*time.Millisecond, m.Mean())
	assert.Equal(t, time.Millisecond, m.Min())
	assert.Equal(t, 3*time.Millisecond, m.Max())
	assert.Equal(t, time.Duration(0), Measurement{}.Mean())
}

func TestCheck(t *testing.T) {
	var out, logs bytes.Buffer
	err := check(context.Background(), &out, newTestLogger(&logs), 5000, 3,
		psort.WithParallelism(4), psort.WithThreshold(100))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	for _, line := range lines {
		assert.Contains(t, line, "sorted correctly: true")
	}
	assert.Empty(t, logs.String())
}
