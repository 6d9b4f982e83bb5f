package natsort

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitRuns(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want [][]float64
	}{
		{name: "empty", in: []float64{}, want: [][]float64{{}}},
		{name: "single", in: []float64{5}, want: [][]float64{{5}}},
		{name: "ascending", in: []float64{1, 2, 3, 4, 5}, want: [][]float64{{1, 2, 3, 4, 5}}},
		{name: "descending", in: []float64{5, 4, 3, 2, 1}, want: [][]float64{{1, 2, 3, 4, 5}}},
		{name: "equal", in: []float64{2, 2, 2}, want: [][]float64{{2, 2, 2}}},
		{name: "two ascending", in: []float64{1, 3, 2, 4}, want: [][]float64{{1, 3}, {2, 4}}},
		{name: "descending then tail", in: []float64{3, 2, 1, 4}, want: [][]float64{{1, 2, 3}, {4}}},
		{name: "sawtooth", in: []float64{1, 3, 2, 4, 3, 5}, want: [][]float64{{1, 3}, {2, 4}, {3, 5}}},
		{name: "descending pairs with ties", in: []float64{3, 2, 2, 1}, want: [][]float64{{2, 3}, {1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := SplitRuns(tt.in, BuildTrendCache(tt.in, leFloat))
			require.Equal(t, tt.want, runs)
		})
	}
}

func TestSplitRunsDoesNotAlias(t *testing.T) {
	in := []float64{1, 2, 3, 3, 2, 1}
	runs := SplitRuns(in, BuildTrendCache(in, leFloat))
	for _, run := range runs {
		for i := range run {
			run[i] = -1
		}
	}
	require.Equal(t, []float64{1, 2, 3, 3, 2, 1}, in)
}

func TestSplitRunsBadCache(t *testing.T) {
	require.Panics(t, func() {
		SplitRuns([]float64{1, 2, 3}, []bool{true})
	})
}

func TestSplitRunsCountBound(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		in := make([]float64, n)
		for i := range in {
			in[i] = float64(rnd.Intn(10))
		}
		runs := SplitRuns(in, BuildTrendCache(in, leFloat))
		require.LessOrEqual(t, len(runs), max((n+1)/2, 1))

		var total []float64
		for _, run := range runs {
			require.True(t, IsSorted(run, leFloat))
			total = append(total, run...)
		}
		require.True(t, IsPermutation(in, total))
	}
}
