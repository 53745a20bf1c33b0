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
	"slices"
)

// SequentialShell sorts data in place with shell sort, halving the gap from
// len(data)/2 down to 1. It does not allocate.
func SequentialShell[T Integer](data []T) {
	n := len(data)
	for gap := n / 2; gap > 0; gap /= 2 {
		for i := gap; i < n; i++ {
			insertGapped(data, i, gap)
		}
	}
}

// SequentialQuick sorts the inclusive range data[low..high] in place with
// median-of-three quicksort and Lomuto partitioning. Ranges at or below the
// threshold are handed to the library sort.
//
// Only WithThreshold is honoured; the sort runs on the calling goroutine and
// WithParallelism is ignored.
func SequentialQuick[T Integer](data []T, low, high int, opts ...Option) error {
	if err := checkRange("SequentialQuick", len(data), low, high); err != nil {
		return err
	}
	o := resolveOptions(opts)
	if high <= low {
		return nil
	}
	quickSequential(data, low, high, o, depthLimit(high-low+1))
	return nil
}

// SequentialMerge sorts the inclusive range data[left..right] with top-down
// mergesort. The sort is stable. It allocates one buffer the size of the
// range.
func SequentialMerge[T Integer](data []T, left, right int) error {
	if err := checkRange("SequentialMerge", len(data), left, right); err != nil {
		return err
	}
	if right <= left {
		return nil
	}
	buf := make([]T, right-left+1)
	mergeSort(data[left:right+1], buf, 0, right-left, cmp.Compare[T])
	return nil
}

// IsSorted reports whether data is in non-decreasing order.
func IsSorted[T Integer](data []T) bool {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return false
		}
	}
	return true
}

// insertGapped moves data[i] left along its gap-strided chain until the
// chain ending at i is sorted.
func insertGapped[T Integer](data []T, i, gap int) {
	tmp := data[i]
	j := i
	for ; j >= gap && data[j-gap] > tmp; j -= gap {
		data[j] = data[j-gap]
	}
	data[j] = tmp
}

// sortStrided insertion-sorts the subsequence data[offset], data[offset+gap],
// data[offset+2*gap], ...
func sortStrided[T Integer](data []T, offset, gap int) {
	for i := offset + gap; i < len(data); i += gap {
		insertGapped(data, i, gap)
	}
}

// depthLimit returns the recursion budget for quicksort of n elements,
// 2*(floor(log2(n))+1). Ranges that exhaust it fall back to the library sort.
func depthLimit(n int) int {
	maxDepth := 0
	for tmp := n; tmp > 0; tmp >>= 1 {
		maxDepth++
	}
	return maxDepth * 2
}

func quickSequential[T Integer](data []T, low, high int, o Options, depth int) {
	if !o.splits(high-low+1) || depth == 0 {
		slices.Sort(data[low : high+1])
		return
	}

	pi := partition(data, low, high)
	if pi-1 > low {
		quickSequential(data, low, pi-1, o, depth-1)
	}
	if pi+1 < high {
		quickSequential(data, pi+1, high, o, depth-1)
	}
}

// partition moves the median of data[low], data[mid] and data[high] to
// data[high] and partitions data[low..high] around it. Elements <= pivot end
// up left of the returned pivot index.
func partition[T Integer](data []T, low, high int) int {
	mid := low + (high-low)/2
	m := medianOfThree(data, low, mid, high)
	data[m], data[high] = data[high], data[m]

	pivot := data[high]
	i := low - 1
	for j := low; j < high; j++ {
		if data[j] <= pivot {
			i++
			data[i], data[j] = data[j], data[i]
		}
	}
	data[i+1], data[high] = data[high], data[i+1]
	return i + 1
}

// medianOfThree returns whichever of the indices low, mid and high holds the
// median of the three values.
func medianOfThree[T Integer](data []T, low, mid, high int) int {
	a, b, c := data[low], data[mid], data[high]
	if a > b {
		switch {
		case b > c:
			return mid
		case a > c:
			return high
		default:
			return low
		}
	}
	switch {
	case a > c:
		return low
	case b > c:
		return high
	default:
		return mid
	}
}

// mergeSort sorts data[left..right] using buf[left..right] as scratch.
func mergeSort[E any](data, buf []E, left, right int, compare func(a, b E) int) {
	if left >= right {
		return
	}
	mid := left + (right-left)/2
	mergeSort(data, buf, left, mid, compare)
	mergeSort(data, buf, mid+1, right, compare)
	mergeRuns(data, buf, left, mid+1, right+1, compare)
}

// mergeRuns merges the sorted runs data[start:mid] and data[mid:end] through
// buf[start:end]. On ties the element of the left run goes first.
func mergeRuns[E any](data, buf []E, start, mid, end int, compare func(a, b E) int) {
	tmp := buf[start:end]
	i, j, k := start, mid, 0
	for i < mid && j < end {
		if compare(data[i], data[j]) <= 0 {
			tmp[k] = data[i]
			i++
		} else {
			tmp[k] = data[j]
			j++
		}
		k++
	}
	k += copy(tmp[k:], data[i:mid])
	copy(tmp[k:], data[j:end])
	copy(data[start:end], tmp)
}
