package natsort

import (
	"fmt"
	"slices"
)

// Tag marks what happened to a position of the working sequence in a
// trace event.
type Tag uint8

const (
	Untouched Tag = iota
	Scanning
	Reversed
	MergeSourceA
	MergeSourceB
	MergeCompared
	MergePlaced
)

var tagNames = [...]string{
	Untouched:     "untouched",
	Scanning:      "scanning",
	Reversed:      "run-reversed",
	MergeSourceA:  "merge-source-A",
	MergeSourceB:  "merge-source-B",
	MergeCompared: "merge-compared",
	MergePlaced:   "merged-placed",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", t)
}

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Stage is the step of the sort that produced an event.
type Stage uint8

const (
	StageInitial Stage = iota
	StageScan
	StageReverse
	StageMerge
	StageFinal
)

var stageNames = [...]string{
	StageInitial: "initial",
	StageScan:    "scan",
	StageReverse: "reverse",
	StageMerge:   "merge",
	StageFinal:   "final",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Event is a snapshot of the working sequence. Values, Origins and Tags
// have the same length; Origins[i] is the index Values[i] had in the input,
// so repeated values stay distinguishable. Events own their slices.
type Event[E any] struct {
	Seq     int   `json:"seq"`
	Stage   Stage `json:"stage"`
	Round   int   `json:"round,omitempty"`
	Values  []E   `json:"values"`
	Origins []int `json:"origins"`
	Tags    []Tag `json:"tags"`
}

// Tracer receives trace events in order.
type Tracer[E any] interface {
	Emit(ev Event[E])
}

// TracerFunc adapts a function to Tracer.
type TracerFunc[E any] func(ev Event[E])

func (f TracerFunc[E]) Emit(ev Event[E]) { f(ev) }

// Recorder keeps every event it receives.
type Recorder[E any] struct {
	Events []Event[E]
}

func (r *Recorder[E]) Emit(ev Event[E]) {
	r.Events = append(r.Events, ev)
}

// observer is called by the splitter and the merger while they work.
// Indices are positions in the working sequence.
type observer[E any] interface {
	scanning(start, end int)
	reversed(start, end int)
	roundStart(round int)
	placed(off int, out, a, b []E, k, i, j int)
}

// item carries a value together with its input position through the
// traced sort.
type item[E any] struct {
	v      E
	origin int
}

// traceState mirrors the working sequence and turns observer callbacks
// into events.
type traceState[E any] struct {
	tracer Tracer[E]
	work   []item[E]
	seq    int
	round  int
}

func newTraceState[E any](tracer Tracer[E], in []E) (*traceState[E], []item[E]) {
	items := make([]item[E], len(in))
	for i, v := range in {
		items[i] = item[E]{v: v, origin: i}
	}
	return &traceState[E]{tracer: tracer, work: slices.Clone(items)}, items
}

func (t *traceState[E]) emit(stage Stage, tags []Tag) {
	ev := Event[E]{
		Seq:     t.seq,
		Stage:   stage,
		Round:   t.round,
		Values:  make([]E, len(t.work)),
		Origins: make([]int, len(t.work)),
		Tags:    tags,
	}
	for i, it := range t.work {
		ev.Values[i] = it.v
		ev.Origins[i] = it.origin
	}
	t.seq++
	t.tracer.Emit(ev)
}

func (t *traceState[E]) tags(tag Tag, from, to int) []Tag {
	tags := make([]Tag, len(t.work))
	for i := from; i <= to; i++ {
		tags[i] = tag
	}
	return tags
}

func (t *traceState[E]) initial() {
	t.emit(StageInitial, make([]Tag, len(t.work)))
}

func (t *traceState[E]) final() {
	t.round = 0
	t.emit(StageFinal, make([]Tag, len(t.work)))
}

func (t *traceState[E]) scanning(start, end int) {
	t.emit(StageScan, t.tags(Scanning, start, end))
}

func (t *traceState[E]) reversed(start, end int) {
	slices.Reverse(t.work[start : end+1])
	t.emit(StageReverse, t.tags(Reversed, start, end))
}

func (t *traceState[E]) roundStart(round int) {
	t.round = round
}

func (t *traceState[E]) placed(off int, out, a, b []item[E], k, i, j int) {
	p := off + copy(t.work[off:], out[:k])
	tailA := p
	p += copy(t.work[p:], a[i:])
	tailB := p
	copy(t.work[p:], b[j:])

	tags := t.tags(MergePlaced, off, tailA-1)
	for q := tailA; q < tailB; q++ {
		tags[q] = MergeSourceA
	}
	for q := tailB; q < off+len(out); q++ {
		tags[q] = MergeSourceB
	}
	if i < len(a) && j < len(b) {
		tags[tailA] = MergeCompared
		tags[tailB] = MergeCompared
	}
	t.emit(StageMerge, tags)
}
