package natsort

import (
	"fmt"
	"slices"
)

// SplitRuns carves s into maximal runs of uniform trend using its trend
// cache and returns them left to right, each normalized to ascending order.
// Runs are copies and never alias s.
//
// cache must come from BuildTrendCache(s, ...); a cache of the wrong length
// panics.
func SplitRuns[E any](s []E, cache []bool) [][]E {
	return splitRuns(s, cache, nil)
}

func splitRuns[E any](s []E, cache []bool, obs observer[E]) [][]E {
	n := len(s)
	if len(cache) != max(n-1, 0) {
		panic(fmt.Sprintf("natsort: trend cache has %d entries for a sequence of %d", len(cache), n))
	}
	if n <= 1 {
		return [][]E{clone(s)}
	}

	var runs [][]E
	i := 0
	for i < n {
		start := i
		if i == n-1 {
			runs = append(runs, clone(s[start:]))
			break
		}

		// the first disagreeing trend, or the end of the cache, closes the run
		asc := cache[i]
		for i < n-1 && cache[i] == asc {
			i++
			if obs != nil {
				obs.scanning(start, i)
			}
		}

		run := clone(s[start : i+1])
		if !asc {
			slices.Reverse(run)
			if obs != nil {
				obs.reversed(start, i)
			}
		}
		runs = append(runs, run)
		i++
	}
	return runs
}

// clone returns a non-nil copy of s.
func clone[E any](s []E) []E {
	out := make([]E, len(s))
	copy(out, s)
	return out
}
