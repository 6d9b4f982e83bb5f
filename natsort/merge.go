package natsort

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// parallelGrain is the smallest pair, in elements, worth handing to an
// executor. Smaller pairs are merged inline.
const parallelGrain = 1 << 11

// MergeTwo merges two ascending runs into a new ascending run.
// The output is allocated once with exactly len(a)+len(b) slots. On ties
// the element from a is taken first.
func MergeTwo[E any](a, b []E, le func(x, y E) bool) []E {
	return mergeTwo(a, b, le, nil, 0)
}

func mergeTwo[E any](a, b []E, le func(x, y E) bool, obs observer[E], off int) []E {
	la, lb := len(a), len(b)
	out := make([]E, la+lb)

	i, j, k := 0, 0, 0
	for i < la && j < lb {
		if le(a[i], b[j]) {
			out[k] = a[i]
			i++
		} else {
			out[k] = b[j]
			j++
		}
		k++
		if obs != nil {
			obs.placed(off, out, a, b, k, i, j)
		}
	}

	if i < la {
		copy(out[k:], a[i:])
	} else {
		copy(out[k:], b[j:])
	}

	if obs != nil {
		// report the block copy one element at a time
		for ; k < len(out); k++ {
			if i < la {
				i++
			} else {
				j++
			}
			obs.placed(off, out, a, b, k+1, i, j)
		}
	}
	return out
}

// MergeRuns merges ascending runs bottom-up until a single run remains.
// An empty run list yields an empty slice and a single run is returned as
// a copy.
func MergeRuns[E any](runs [][]E, le func(x, y E) bool) []E {
	m := &merger[E]{le: le, logger: zap.NewNop()}
	out, _, _ := m.merge(context.Background(), runs)
	return out
}

type merger[E any] struct {
	le     func(x, y E) bool
	exec   Executor
	obs    observer[E]
	logger *zap.Logger
}

// merge runs rounds until one run is left and reports how many rounds it
// took. ctx is only consulted between rounds.
func (m *merger[E]) merge(ctx context.Context, runs [][]E) ([]E, int, error) {
	switch len(runs) {
	case 0:
		return []E{}, 0, nil
	case 1:
		return clone(runs[0]), 0, nil
	}

	rounds := 0
	for len(runs) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, rounds, errors.Wrapf(err, "merge stopped after %d rounds with %d runs left", rounds, len(runs))
		}
		rounds++
		if m.obs != nil {
			m.obs.roundStart(rounds)
		}
		runs = m.round(runs)
		m.logger.Debug("merge round done",
			zap.Int("round", rounds),
			zap.Int("runs", len(runs)))
	}
	return runs[0], rounds, nil
}

// round merges runs[0] with runs[1], runs[2] with runs[3] and so on into
// a fresh run list. An odd trailing run is carried over untouched.
func (m *merger[E]) round(runs [][]E) [][]E {
	next := make([][]E, (len(runs)+1)/2)

	if m.exec == nil || m.obs != nil {
		off := 0
		for p := 0; p+1 < len(runs); p += 2 {
			next[p/2] = mergeTwo(runs[p], runs[p+1], m.le, m.obs, off)
			off += len(runs[p]) + len(runs[p+1])
		}
	} else {
		var wg sync.WaitGroup
		for p := 0; p+1 < len(runs); p += 2 {
			a, b, slot := runs[p], runs[p+1], p/2
			if len(a)+len(b) < parallelGrain {
				next[slot] = mergeTwo(a, b, m.le, nil, 0)
				continue
			}
			wg.Add(1)
			task := func() {
				defer wg.Done()
				next[slot] = mergeTwo(a, b, m.le, nil, 0)
			}
			if err := m.exec.Submit(task); err != nil {
				// no free worker, merge on this goroutine
				task()
			}
		}
		wg.Wait()
	}

	if len(runs)%2 == 1 {
		next[len(next)-1] = runs[len(runs)-1]
	}
	return next
}
