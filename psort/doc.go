// Package psort sorts large in-memory integer slices with quicksort,
// mergesort and shell sort, each available as a sequential kernel and as a
// parallel variant running on a bounded worker pool.
//
// # Algorithms
//
// The parallel variants use two different decompositions:
//   - Quicksort and mergesort split a range recursively and fork the two
//     halves as a fork-join pair. Ranges at or below the threshold are
//     solved sequentially.
//   - Shell sort runs one phase per gap. A phase dispatches one task per
//     starting offset and waits for all of them before the next, smaller
//     gap starts, since each phase reads what the previous one wrote.
//
// Sibling tasks always own disjoint index ranges, so the slice itself is
// never locked.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-parsort/psort"
//
//	func Process(data []int32) error {
//	    if err := psort.ParallelMerge(data, psort.WithParallelism(4)); err != nil {
//	        return err // data is not guaranteed to be sorted
//	    }
//	    return nil
//	}
//
// A Sorter keeps its worker pool between calls and can be shared by many
// goroutines sorting separate slices:
//
//	s := psort.New[int64]()
//	defer s.Close()
//	err := s.Quick(ctx, data)
//
// # Errors
//
// Invalid ranges are reported as *RangeError before anything is touched.
// A panic inside a task is reported as a *workerpool.TaskError matching
// ErrTaskFailure, and cancelling the context while a sort waits on a join or
// barrier yields ErrInterrupted. After any error the slice contents are
// undefined.
package psort
