// Copyright 2025 The go-parsort Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrTaskFailure is matched by every *TaskError.
var ErrTaskFailure = errors.New("task failure")

// TaskError reports a panic recovered inside a pool task.
type TaskError struct {
	// Value is the value passed to panic.
	Value any
	// Stack is the stack of the panicking goroutine.
	Stack []byte
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	return fmt.Sprintf("%v: panic: %v", ErrTaskFailure, e.Value)
}

// Is reports whether target is ErrTaskFailure.
func (e *TaskError) Is(target error) bool {
	return target == ErrTaskFailure
}

// Unwrap returns the panic value when it is itself an error.
func (e *TaskError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func recovered(r any) *TaskError {
	return &TaskError{Value: r, Stack: debug.Stack()}
}

func call(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return fn(ctx)
}

func callIndex(ctx context.Context, i int, fn func(context.Context, int) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return fn(ctx, i)
}

func callRange(ctx context.Context, start, end int, fn func(context.Context, int, int) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return fn(ctx, start, end)
}
