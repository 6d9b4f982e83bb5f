package main

import (
	"math"
	"sync"

	"natmerge/natsort"
)

// parallelMergeSort sorts the two halves on pool while it has free slots,
// falling back to the caller's goroutine when it does not. depth bounds how
// many levels fan out.
func parallelMergeSort(arr []float64, pool natsort.Executor, depth int) []float64 {
	return parallelMergeSortHelper(arr, pool, depth, getOptimalThreshold(len(arr)))
}

func parallelMergeSortHelper(arr []float64, pool natsort.Executor, depth, threshold int) []float64 {
	if depth <= 1 || len(arr) < threshold {
		return mergeSort(arr)
	}

	mid := len(arr) / 2
	var left, right []float64
	var wg sync.WaitGroup
	wg.Add(2)

	half := func(dst *[]float64, part []float64) func() {
		return func() {
			defer wg.Done()
			*dst = parallelMergeSortHelper(part, pool, depth/2, threshold)
		}
	}
	for _, task := range []func(){half(&left, arr[:mid]), half(&right, arr[mid:])} {
		if err := pool.Submit(task); err != nil {
			task()
		}
	}

	wg.Wait()
	return natsort.MergeTwo(left, right, lessOrEqual)
}

// getOptimalThreshold is the smallest slice worth splitting across
// goroutines for an input of totalSize elements.
func getOptimalThreshold(totalSize int) int {
	switch {
	case totalSize < 1000:
		return math.MaxInt
	case totalSize < 10000:
		return 300
	case totalSize < 100000:
		return 800
	default:
		return 1500
	}
}
