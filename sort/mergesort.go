package main

import "natmerge/natsort"

// below this size the baseline switches to insertion sort
const insertionCutoff = 16

func lessOrEqual(a, b float64) bool { return a <= b }

// mergeSort is the top-down baseline: halve down to small slices, insertion
// sort those and merge back up. arr is not modified.
func mergeSort(arr []float64) []float64 {
	if len(arr) <= insertionCutoff {
		result := make([]float64, len(arr))
		copy(result, arr)
		insertionSort(result)
		return result
	}

	mid := len(arr) / 2
	left := mergeSort(arr[:mid])
	right := mergeSort(arr[mid:])
	return natsort.MergeTwo(left, right, lessOrEqual)
}

func insertionSort(arr []float64) {
	for i := 1; i < len(arr); i++ {
		key := arr[i]
		j := i - 1
		for j >= 0 && arr[j] > key {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}
