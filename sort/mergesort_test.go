package main

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"natmerge/natsort"
)

func TestMergeSortBaselines(t *testing.T) {
	pool := natsort.NewSemaphorePool(4)
	for _, n := range []int{0, 1, 15, 16, 17, 999, 5000, 20000} {
		data := generateRandomData(n, 0, 100, int64(n))
		original := slices.Clone(data)
		want := slices.Clone(data)
		slices.Sort(want)

		require.Equal(t, want, mergeSort(data), "n=%d", n)
		require.Equal(t, want, parallelMergeSort(data, pool, 4), "n=%d", n)
		require.Equal(t, original, data)
	}
}

func TestInsertionSort(t *testing.T) {
	arr := []float64{3, 1, 2, 2, 0}
	insertionSort(arr)
	require.Equal(t, []float64{0, 1, 2, 2, 3}, arr)
}

func TestGetOptimalThreshold(t *testing.T) {
	require.Equal(t, math.MaxInt, getOptimalThreshold(999))
	require.Equal(t, 300, getOptimalThreshold(1000))
	require.Equal(t, 800, getOptimalThreshold(10000))
	require.Equal(t, 1500, getOptimalThreshold(100000))
}
