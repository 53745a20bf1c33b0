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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-parsort/psort"
)

// Errors returned while loading or validating a plan.
var (
	// ErrUnknownFormat indicates a plan file with an unsupported extension.
	ErrUnknownFormat = errors.New("unknown plan format")

	// ErrInvalidPlan indicates a plan that can not be run.
	ErrInvalidPlan = errors.New("invalid plan")
)

// parallelismEnv overrides Plan.Parallelism when set.
const parallelismEnv = "SORTBENCH_PARALLELISM"

// Case selects how benchmark input is generated.
type Case string

const (
	// CaseAverage fills the array with uniform random values in [0, n).
	CaseAverage Case = "average"
	// CaseSorted fills the array in ascending order.
	CaseSorted Case = "sorted"
	// CaseReversed fills the array in descending order.
	CaseReversed Case = "reversed"
)

// Plan describes one benchmark session.
type Plan struct {
	Sizes       []int    `toml:"sizes" yaml:"sizes" json:"sizes"`
	Runs        int      `toml:"runs" yaml:"runs" json:"runs"`
	Case        Case     `toml:"case" yaml:"case" json:"case"`
	Parallelism int      `toml:"parallelism" yaml:"parallelism" json:"parallelism"`
	Threshold   int      `toml:"threshold" yaml:"threshold" json:"threshold"`
	Seed        int64    `toml:"seed" yaml:"seed" json:"seed"`
	Algorithms  []string `toml:"algorithms" yaml:"algorithms" json:"algorithms,omitempty"`
}

// DefaultPlan returns 500k to 10M elements in steps of 500k, three runs
// each, on random input.
func DefaultPlan() Plan {
	sizes := make([]int, 0, 20)
	for n := 500_000; n <= 10_000_000; n += 500_000 {
		sizes = append(sizes, n)
	}
	return Plan{
		Sizes:       sizes,
		Runs:        3,
		Case:        CaseAverage,
		Parallelism: psort.DefaultParallelism,
		Threshold:   psort.DefaultThreshold,
		Seed:        1,
	}
}

// LoadPlan reads a plan from a TOML or YAML file on top of DefaultPlan.
// Fields missing from the file keep their default values.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("reading plan %s: %w", path, err)
	}

	plan := DefaultPlan()
	plan.Sizes = nil
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &plan)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &plan)
	default:
		return Plan{}, fmt.Errorf("%w %q for %s", ErrUnknownFormat, ext, path)
	}
	if err != nil {
		return Plan{}, fmt.Errorf("parsing plan %s: %w", path, err)
	}
	if plan.Sizes == nil {
		plan.Sizes = DefaultPlan().Sizes
	}
	return plan, nil
}

// applyEnv applies environment overrides to the plan.
func applyEnv(plan *Plan, getenv func(string) string) error {
	val := getenv(parallelismEnv)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidPlan, parallelismEnv, val, err)
	}
	plan.Parallelism = n
	return nil
}

// Validate reports the first problem that would stop the plan from running.
func (p Plan) Validate() error {
	if len(p.Sizes) == 0 {
		return fmt.Errorf("%w: no sizes", ErrInvalidPlan)
	}
	for _, n := range p.Sizes {
		if n < 0 {
			return fmt.Errorf("%w: negative size %d", ErrInvalidPlan, n)
		}
	}
	if p.Runs < 1 {
		return fmt.Errorf("%w: runs must be at least 1, got %d", ErrInvalidPlan, p.Runs)
	}
	switch p.Case {
	case CaseAverage, CaseSorted, CaseReversed:
	default:
		return fmt.Errorf("%w: unknown case %q", ErrInvalidPlan, p.Case)
	}
	if p.Threshold < 1 {
		return fmt.Errorf("%w: threshold must be at least 1, got %d", ErrInvalidPlan, p.Threshold)
	}
	if _, err := selectAlgorithms(p.Algorithms); err != nil {
		return err
	}
	return nil
}

// sortOptions returns the engine options selected by the plan.
func (p Plan) sortOptions() []psort.Option {
	return []psort.Option{
		psort.WithParallelism(p.Parallelism),
		psort.WithThreshold(p.Threshold),
	}
}
