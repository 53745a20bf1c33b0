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

import "golang.org/x/exp/constraints"

// Integer is the set of element types the sorts accept.
type Integer interface {
	constraints.Signed
}

const (
	// DefaultThreshold is the range size at or below which every algorithm
	// stops splitting and solves the range sequentially.
	DefaultThreshold = 10_000

	// DefaultParallelism selects one worker per GOMAXPROCS.
	DefaultParallelism = 0
)

// Options configures a sort call or a Sorter. Options are built from the
// defaults by the Option functions; a field with an invalid value falls back
// to its default.
type Options struct {
	// Parallelism is the number of pool workers. Zero or negative means
	// runtime.GOMAXPROCS(0).
	Parallelism int

	// Threshold is the base-case size. Ranges of this size or smaller are
	// solved sequentially.
	Threshold int
}

// Option changes one field of Options.
type Option func(*Options)

// WithParallelism sets the number of workers.
func WithParallelism(n int) Option {
	return func(o *Options) { o.Parallelism = n }
}

// WithThreshold sets the base-case size. Values below 1 select
// DefaultThreshold.
func WithThreshold(n int) Option {
	return func(o *Options) { o.Threshold = n }
}

func resolveOptions(opts []Option) Options {
	o := Options{
		Parallelism: DefaultParallelism,
		Threshold:   DefaultThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Threshold < 1 {
		o.Threshold = DefaultThreshold
	}
	if o.Parallelism < 0 {
		o.Parallelism = DefaultParallelism
	}
	return o
}

// splits reports whether a range of the given size is split further rather
// than solved sequentially.
func (o Options) splits(size int) bool {
	return size > o.Threshold
}
