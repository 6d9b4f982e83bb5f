package natsort

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// Sort returns a sorted copy of s.
func Sort[T constraints.Ordered](s []T) []T {
	return New[T]().Sort(s)
}

// SortFunc returns a copy of s sorted by le, which must report whether a
// sorts before or equal to b.
func SortFunc[E any](s []E, le func(a, b E) bool) []E {
	return NewFunc(le).Sort(s)
}

// Result is the outcome of a sort together with the shape of the work done.
type Result[E any] struct {
	Sorted []E
	// Runs is the number of natural runs found in the input.
	Runs int
	// Rounds is the number of pairwise merge rounds.
	Rounds int
}

type options struct {
	workers int
	exec    Executor
	tracer  any
	logger  *zap.Logger
}

// Option configures a Sorter.
type Option func(*options)

// WithWorkers merges the pairs of a round on up to n goroutines.
// n <= 1 keeps merging sequential.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithExecutor runs parallel pair merges on exec, e.g. an ants pool.
func WithExecutor(exec Executor) Option {
	return func(o *options) {
		o.exec = exec
	}
}

// WithTracer emits a trace event stream to t. Tracing merges sequentially
// so that events stay ordered.
func WithTracer[E any](t Tracer[E]) Option {
	return func(o *options) {
		o.tracer = t
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Sorter is a configured natural merge sort. A Sorter holds no per-call
// state and may be shared between goroutines as long as its tracer can be.
type Sorter[E any] struct {
	le     func(a, b E) bool
	exec   Executor
	tracer Tracer[E]
	logger *zap.Logger
}

// New returns a Sorter ordering values with <=.
func New[T constraints.Ordered](opts ...Option) *Sorter[T] {
	return NewFunc(func(a, b T) bool { return a <= b }, opts...)
}

// NewFunc returns a Sorter ordering values with le.
func NewFunc[E any](le func(a, b E) bool, opts ...Option) *Sorter[E] {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Sorter[E]{le: le, exec: o.exec, logger: o.logger}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.exec == nil && o.workers > 1 {
		s.exec = NewSemaphorePool(o.workers)
	}
	if o.tracer != nil {
		t, ok := o.tracer.(Tracer[E])
		if !ok {
			panic(fmt.Sprintf("natsort: tracer %T does not accept %T events", o.tracer, Event[E]{}))
		}
		s.tracer = t
	}
	return s
}

// Sort returns a sorted copy of in.
func (s *Sorter[E]) Sort(in []E) []E {
	// the background context is never canceled
	res, _ := s.SortContext(context.Background(), in)
	return res.Sorted
}

// SortContext sorts a copy of in. Cancellation is only noticed between
// merge rounds; on cancellation the returned error wraps ctx.Err().
func (s *Sorter[E]) SortContext(ctx context.Context, in []E) (Result[E], error) {
	if s.tracer != nil {
		return s.sortTraced(ctx, in)
	}
	out, runs, rounds, err := sortRuns(ctx, in, s.le, &merger[E]{
		le:     s.le,
		exec:   s.exec,
		logger: s.logger,
	}, nil)
	return Result[E]{Sorted: out, Runs: runs, Rounds: rounds}, err
}

func (s *Sorter[E]) sortTraced(ctx context.Context, in []E) (Result[E], error) {
	ts, items := newTraceState(s.tracer, in)
	le := func(a, b item[E]) bool { return s.le(a.v, b.v) }

	ts.initial()
	out, runs, rounds, err := sortRuns(ctx, items, le, &merger[item[E]]{
		le:     le,
		obs:    ts,
		logger: s.logger,
	}, ts)
	if err != nil {
		return Result[E]{Runs: runs, Rounds: rounds}, err
	}
	ts.final()

	sorted := make([]E, len(out))
	for i, it := range out {
		sorted[i] = it.v
	}
	return Result[E]{Sorted: sorted, Runs: runs, Rounds: rounds}, nil
}

// sortRuns is the cache, split, merge pipeline shared by plain and traced
// sorts.
func sortRuns[E any](ctx context.Context, in []E, le func(a, b E) bool, m *merger[E], obs observer[E]) ([]E, int, int, error) {
	if len(in) <= 1 {
		return clone(in), len(in), 0, nil
	}

	cache := BuildTrendCache(in, le)
	runs := splitRuns(in, cache, obs)
	m.logger.Debug("split into natural runs",
		zap.Int("length", len(in)),
		zap.Int("runs", len(runs)))

	out, rounds, err := m.merge(ctx, runs)
	if err != nil {
		return nil, len(runs), rounds, err
	}
	return out, len(runs), rounds, nil
}
