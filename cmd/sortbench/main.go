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

// Command sortbench times the sequential and parallel sorts of psort against
// each other.
//
// Usage:
//
//	sortbench run                                  # 500k..10M elements, 3 runs each
//	sortbench run --sizes 100000,200000 --runs 5 --format csv
//	sortbench run --plan bench.toml                # plan file, TOML or YAML
//	sortbench check --size 1000000                 # sort once with all six, verify
//
// SORTBENCH_PARALLELISM overrides the worker count of a plan; explicit flags
// override both the plan file and the environment.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-parsort/psort"
	"github.com/ajroetker/go-parsort/psort/workerpool"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "sortbench",
		Short:        "Benchmark sequential against parallel quicksort, mergesort and shell sort",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every run")

	logger := func(cmd *cobra.Command) *slog.Logger {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(newRunCmd(logger), newCheckCmd(logger))
	return root
}

// planFlags holds the flags that override fields of a Plan.
type planFlags struct {
	path        string
	sizes       []int
	runs        int
	inputCase   string
	parallelism int
	threshold   int
	seed        int64
	algorithms  []string
}

func (f *planFlags) register(fs *pflag.FlagSet) {
	def := DefaultPlan()
	fs.StringVar(&f.path, "plan", "", "plan file (.toml, .yaml or .yml)")
	fs.IntSliceVar(&f.sizes, "sizes", def.Sizes, "array sizes to benchmark")
	fs.IntVar(&f.runs, "runs", def.Runs, "runs per size")
	fs.StringVar(&f.inputCase, "case", string(def.Case), "input case: average, sorted or reversed")
	fs.IntVarP(&f.parallelism, "parallelism", "p", def.Parallelism, "worker count, 0 for GOMAXPROCS")
	fs.IntVar(&f.threshold, "threshold", def.Threshold, "base-case size below which ranges are sorted sequentially")
	fs.Int64Var(&f.seed, "seed", def.Seed, "seed for random input")
	fs.StringSliceVar(&f.algorithms, "algorithms", nil, "algorithms to run, e.g. parallel-quick,sequential-quick (default all)")
}

// resolve builds the plan: defaults, then the plan file, then the
// environment, then any flag set explicitly.
func (f *planFlags) resolve(fs *pflag.FlagSet, getenv func(string) string) (Plan, error) {
	plan := DefaultPlan()
	if f.path != "" {
		var err error
		if plan, err = LoadPlan(f.path); err != nil {
			return plan, err
		}
	}
	if err := applyEnv(&plan, getenv); err != nil {
		return plan, err
	}

	if fs.Changed("sizes") {
		plan.Sizes = f.sizes
	}
	if fs.Changed("runs") {
		plan.Runs = f.runs
	}
	if fs.Changed("case") {
		plan.Case = Case(f.inputCase)
	}
	if fs.Changed("parallelism") {
		plan.Parallelism = f.parallelism
	}
	if fs.Changed("threshold") {
		plan.Threshold = f.threshold
	}
	if fs.Changed("seed") {
		plan.Seed = f.seed
	}
	if fs.Changed("algorithms") {
		plan.Algorithms = f.algorithms
	}
	return plan, plan.Validate()
}

func newRunCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var flags planFlags
	var format string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time every algorithm over a range of array sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := flags.resolve(cmd.Flags(), os.Getenv)
			if err != nil {
				return err
			}
			r := &Runner{Plan: plan, Logger: logger(cmd)}
			report, err := r.Run(cmd.Context())
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), format)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", "text", "report format: text, json or csv")
	return cmd
}

func newCheckCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var size, parallelism, threshold int
	var seed int64

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Sort one array with all six algorithms at once and verify the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return check(cmd.Context(), cmd.OutOrStdout(), logger(cmd), size, seed,
				psort.WithParallelism(parallelism), psort.WithThreshold(threshold))
		},
	}
	cmd.Flags().IntVarP(&size, "size", "n", 1_000_000, "array size")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", psort.DefaultParallelism, "worker count, 0 for GOMAXPROCS")
	cmd.Flags().IntVar(&threshold, "threshold", psort.DefaultThreshold, "base-case size")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for random input")
	return cmd
}

// check sorts copies of one random array with all six algorithms
// concurrently, sharing one Sorter, and compares every result with the
// library sort.
func check(ctx context.Context, w io.Writer, logger *slog.Logger, size int, seed int64, opts ...psort.Option) error {
	sorter := psort.New[int32](opts...)
	defer sorter.Close()
	gen := workerpool.New(sorter.NumWorkers())
	defer gen.Close()

	input, err := generate(ctx, gen, size, CaseAverage, seed)
	if err != nil {
		return err
	}
	want := slices.Clone(input)
	slices.Sort(want)

	results := make([][]int32, len(algorithms))
	g, ctx := errgroup.WithContext(ctx)
	for i, a := range algorithms {
		results[i] = slices.Clone(input)
		g.Go(func() error {
			if err := a.Sort(ctx, sorter, results[i]); err != nil {
				return fmt.Errorf("%s: %w", a.ID(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, a := range algorithms {
		ok := psort.IsSorted(results[i]) && slices.Equal(results[i], want)
		if !ok {
			failed++
			logger.Error("wrong result", "algorithm", a.ID(), "size", size)
		}
		fmt.Fprintf(w, "%-16s sorted correctly: %t\n", a.ID(), ok)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d algorithms produced a wrong result", failed, len(algorithms))
	}
	return nil
}
