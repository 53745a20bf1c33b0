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
	"errors"
	"fmt"

	"github.com/ajroetker/go-parsort/psort/workerpool"
)

// Errors returned by the sorts.
var (
	// ErrInvalidRange indicates range bounds outside the slice or in the
	// wrong order.
	ErrInvalidRange = errors.New("invalid range")

	// ErrTaskFailure indicates that a task panicked. The concrete error is
	// a *workerpool.TaskError.
	ErrTaskFailure = workerpool.ErrTaskFailure

	// ErrInterrupted indicates that the context was cancelled while the
	// sort was waiting on a join or phase barrier.
	ErrInterrupted = errors.New("sort interrupted")
)

// RangeError describes an invalid inclusive range [Low, High] over a slice
// of length Len.
type RangeError struct {
	Op   string
	Low  int
	High int
	Len  int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("psort: %s: %v [%d, %d] for length %d", e.Op, ErrInvalidRange, e.Low, e.High, e.Len)
}

// Unwrap returns ErrInvalidRange.
func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// checkRange validates an inclusive range. high == low-1 denotes an empty
// range, so (0, -1) is valid for an empty slice.
func checkRange(op string, n, low, high int) error {
	if low < 0 || high >= n || low > high+1 {
		return &RangeError{Op: op, Low: low, High: high, Len: n}
	}
	return nil
}

// classify maps an error collected at the top-level join to the error
// returned to the caller. Task failures win over interruption.
func classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTaskFailure) {
		return fmt.Errorf("psort: %s: %w", op, err)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("psort: %s: %w: %w", op, ErrInterrupted, context.Cause(ctx))
	}
	return fmt.Errorf("psort: %s: %w", op, err)
}
