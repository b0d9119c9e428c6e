package automaton

import "sort"

type quad struct {
	src, dest State
	min, max  int32
}

// TransitionBuilder accepts transitions in any order, buffering
// (src, dest, min, max) quadruples and materializing them into a fresh
// Automaton at Finish() by sorting on (src, min, max, dest) and replaying
// into the automaton store's ordinary build protocol. Algorithms that
// would otherwise have to pre-sort their output by source state (reverse,
// repeat) use this instead of the raw build protocol.
type TransitionBuilder struct {
	numStates int
	accept    []bool
	quads     []quad
}

// NewTransitionBuilder returns a builder with no states yet.
func NewTransitionBuilder() *TransitionBuilder {
	return &TransitionBuilder{}
}

// CreateState reserves a new state number and returns it.
func (b *TransitionBuilder) CreateState() State {
	b.accept = append(b.accept, false)
	b.numStates++
	return State(b.numStates - 1)
}

// SetAccept marks s as accepting or not.
func (b *TransitionBuilder) SetAccept(s State, accept bool) {
	b.accept[s] = accept
}

// AddTransition buffers a transition; order of calls does not matter.
func (b *TransitionBuilder) AddTransition(src, dest State, min, max int32) {
	b.quads = append(b.quads, quad{src: src, dest: dest, min: min, max: max})
}

// AcceptOf reports the accept bit currently set for s.
func (b *TransitionBuilder) AcceptOf(s State) bool { return b.accept[s] }

// TransitionsFrom returns every buffered transition whose source is src, in
// whatever order they were added. Used by algebra operations (union,
// optional, repeat, reverse) that need to splice a state's transitions
// onto a different state before the builder is finished.
func (b *TransitionBuilder) TransitionsFrom(src State) []Transition {
	var out []Transition
	for _, q := range b.quads {
		if q.src == src {
			out = append(out, Transition{Dest: q.dest, Min: q.min, Max: q.max})
		}
	}
	return out
}

// Finish sorts the buffered quadruples by (src, min, max, dest) and
// replays them into a fresh Automaton, one source state at a time.
func (b *TransitionBuilder) Finish() (*Automaton, error) {
	sort.Slice(b.quads, func(i, j int) bool {
		qi, qj := b.quads[i], b.quads[j]
		if qi.src != qj.src {
			return qi.src < qj.src
		}
		if qi.min != qj.min {
			return qi.min < qj.min
		}
		if qi.max != qj.max {
			return qi.max < qj.max
		}
		return qi.dest < qj.dest
	})

	a := New()
	for s := 0; s < b.numStates; s++ {
		ns := a.CreateState()
		a.SetAccept(ns, b.accept[s])
	}
	for _, q := range b.quads {
		if err := a.AddTransition(q.src, q.dest, q.min, q.max); err != nil {
			return nil, err
		}
	}
	if err := a.FinishState(); err != nil {
		return nil, err
	}
	return a, nil
}
