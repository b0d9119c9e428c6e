// Package automaton implements the mutable automaton store (labeled
// directed graph over integer symbol intervals) and the automaton algebra
// built on top of it: concatenation, union, intersection, reverse,
// optional, repeat, totalization, dead-state removal, and the assorted
// language predicates (isEmpty, isFinite, subsetOf, run).
//
// Construction follows a two-phase build protocol: a state's transitions
// must be added contiguously, and a state is implicitly finished as soon
// as the caller moves on to a different source state.
package automaton

import (
	"sort"

	"github.com/levauto/levauto/internal/bitpack"
	"github.com/levauto/levauto/internal/conv"
)

// State identifies a state within an Automaton. State 0 is always the
// initial state. NoState is the sentinel used by packed transition tables
// for "no such state" / "no transition".
type State = int32

// NoState is the sentinel value for an absent state in packed tables.
const NoState State = -1

// Transition is an outgoing edge labeled with an inclusive symbol interval
// [Min, Max].
type Transition struct {
	Dest     State
	Min, Max int32
}

// Automaton is a labeled directed graph: states numbered 0..n-1, a set of
// accept states, and for each state an ordered list of outgoing interval
// transitions. It is mutable during construction and is treated as
// read-only by every downstream algorithm once built.
type Automaton struct {
	// states[2*s] is the offset into transitions where state s's outgoing
	// transitions begin, or -1 if s has no transitions.
	// states[2*s+1] is the transition count for state s.
	states      []int32
	transitions []int32 // flat (dest, min, max) triples
	accept      []bool

	deterministic bool

	// build protocol state
	curState    State
	pending     []Transition
	haveCurrent bool
	finishedTop State // highest state number finished so far, or -1
}

// New returns an empty Automaton ready for building. deterministic starts
// true and is cleared (stickily) the first time finishCurrentState finds
// overlapping intervals from the same source.
func New() *Automaton {
	return &Automaton{
		deterministic: true,
		curState:      NoState,
		finishedTop:   NoState,
	}
}

// CreateState appends a new, non-accepting state with no transitions and
// returns its number.
func (a *Automaton) CreateState() State {
	a.states = append(a.states, -1, 0)
	a.accept = append(a.accept, false)
	return conv.IntToInt32(len(a.accept) - 1)
}

// NumStates returns the number of states created so far.
func (a *Automaton) NumStates() int { return len(a.accept) }

// SetAccept marks state s as accepting or not.
func (a *Automaton) SetAccept(s State, accept bool) {
	a.accept[s] = accept
}

// IsAccept reports whether s is an accept state.
func (a *Automaton) IsAccept(s State) bool { return a.accept[s] }

// Deterministic reports the conservatively-maintained determinism flag:
// true only if no state has two outgoing transitions whose intervals
// overlap. It is cleared by FinishState's merge step, which never sets it
// back to true; only MarkDeterministic can.
func (a *Automaton) Deterministic() bool { return a.deterministic }

// MarkDeterministic force-sets the determinism flag. Used by algorithms
// (the determinizer, the minimizer) that build an automaton known by
// construction to be deterministic, without relying on FinishState's
// conservative overlap check alone.
func (a *Automaton) MarkDeterministic(v bool) { a.deterministic = v }

// AddTransition adds an outgoing transition from src to dest over the
// inclusive symbol interval [min, max]. Transitions for a given src must
// be added contiguously: calling AddTransition with a new src implicitly
// finishes whatever state was previously current. Returns InvalidState if
// src has already been finished (because the caller moved on to, and then
// away from, a later state) and the current state differs from src.
func (a *Automaton) AddTransition(src, dest State, min, max int32) error {
	if src < 0 || int(src) >= a.NumStates() {
		return newError(InvalidInput, "addTransition: source state %d out of range", src)
	}
	if dest < 0 || int(dest) >= a.NumStates() {
		return newError(InvalidInput, "addTransition: dest state %d out of range", dest)
	}
	if min > max {
		return newError(InvalidInput, "addTransition: min %d > max %d", min, max)
	}

	if a.haveCurrent && src != a.curState {
		if err := a.finishCurrentState(); err != nil {
			return err
		}
	}
	if !a.haveCurrent {
		if src <= a.finishedTop {
			return newError(InvalidState, "addTransition: state %d was already finished", src)
		}
		a.curState = src
		a.haveCurrent = true
		a.pending = a.pending[:0]
	}
	a.pending = append(a.pending, Transition{Dest: dest, Min: min, Max: max})
	return nil
}

// FinishState finishes whichever state is currently being built. Must be
// called exactly once after the final state's last transition; it is also
// called implicitly whenever AddTransition moves to a new source state.
func (a *Automaton) FinishState() error {
	if !a.haveCurrent {
		return nil
	}
	return a.finishCurrentState()
}

// finishCurrentState sorts this state's pending transitions by
// (dest,min,max), merges runs sharing a dest whose intervals are
// contiguous or overlapping, then re-sorts by (min,max,dest). If the
// merged result still has two overlapping intervals from this state, the
// automaton's deterministic flag is cleared, permanently.
func (a *Automaton) finishCurrentState() error {
	src := a.curState
	trans := a.pending

	sort.Slice(trans, func(i, j int) bool {
		if trans[i].Dest != trans[j].Dest {
			return trans[i].Dest < trans[j].Dest
		}
		if trans[i].Min != trans[j].Min {
			return trans[i].Min < trans[j].Min
		}
		return trans[i].Max < trans[j].Max
	})

	merged := trans[:0:0]
	for i := 0; i < len(trans); i++ {
		t := trans[i]
		if n := len(merged); n > 0 && merged[n-1].Dest == t.Dest && t.Min <= merged[n-1].Max+1 {
			if t.Max > merged[n-1].Max {
				merged[n-1].Max = t.Max
			}
			continue
		}
		merged = append(merged, t)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Min != merged[j].Min {
			return merged[i].Min < merged[j].Min
		}
		if merged[i].Max != merged[j].Max {
			return merged[i].Max < merged[j].Max
		}
		return merged[i].Dest < merged[j].Dest
	})

	for i := 1; i < len(merged); i++ {
		if merged[i].Min <= merged[i-1].Max {
			a.deterministic = false
			break
		}
	}

	offset := int32(len(a.transitions))
	for _, t := range merged {
		a.transitions = append(a.transitions, t.Dest, t.Min, t.Max)
	}
	if len(merged) == 0 {
		a.states[2*src] = -1
	} else {
		a.states[2*src] = offset
	}
	a.states[2*src+1] = int32(len(merged))

	if src > a.finishedTop {
		a.finishedTop = src
	}
	a.haveCurrent = false
	a.pending = nil
	return nil
}

// NumTransitions returns the number of outgoing transitions of s. Only
// valid once s has been finished.
func (a *Automaton) NumTransitions(s State) int {
	return int(a.states[2*s+1])
}

// Transition returns the i-th outgoing transition of s, in the sorted
// order finishCurrentState established.
func (a *Automaton) Transition(s State, i int) Transition {
	offset := a.states[2*s]
	base := int(offset) + i*3
	return Transition{
		Dest: a.transitions[base],
		Min:  a.transitions[base+1],
		Max:  a.transitions[base+2],
	}
}

// Transitions returns all outgoing transitions of s as a slice. The slice
// is a fresh copy; mutating it does not affect the automaton.
func (a *Automaton) Transitions(s State) []Transition {
	n := a.NumTransitions(s)
	out := make([]Transition, n)
	for i := 0; i < n; i++ {
		out[i] = a.Transition(s, i)
	}
	return out
}

// Step returns the destination of the outgoing transition of state that
// contains label, or NoState if none does. On a deterministic automaton at
// most one transition matches. Uses a linear scan: transitions are
// (min,max,dest)-sorted, so a binary search is possible, but states
// rarely carry enough transitions for it to pay off.
func (a *Automaton) Step(state State, label int32) State {
	n := a.NumTransitions(state)
	for i := 0; i < n; i++ {
		t := a.Transition(state, i)
		if label < t.Min {
			return NoState
		}
		if label <= t.Max {
			return t.Dest
		}
	}
	return NoState
}

// Copy appends every state of other into a, renumbering sequentially, and
// returns the mapping from other's state numbers to the corresponding new
// state numbers in a. a's own determinism flag is cleared if other's is
// false.
func (a *Automaton) Copy(other *Automaton) []State {
	if other.haveCurrent {
		_ = other.finishCurrentState()
	}
	base := State(a.NumStates())
	mapping := make([]State, other.NumStates())
	for s := 0; s < other.NumStates(); s++ {
		ns := a.CreateState()
		mapping[s] = ns
		a.SetAccept(ns, other.IsAccept(State(s)))
	}
	for s := 0; s < other.NumStates(); s++ {
		for _, t := range other.Transitions(State(s)) {
			if err := a.AddTransition(mapping[s], mapping[t.Dest], t.Min, t.Max); err != nil {
				panic(err) // other is already well-formed; this cannot fail
			}
		}
	}
	_ = base
	if !other.deterministic {
		a.deterministic = false
	}
	return mapping
}

// AddEpsilon copies every outgoing transition of dest onto src, and makes
// src accepting if dest is. This is the automaton store's sole concession
// to epsilon transitions: algebra operations splice structure in rather
// than carrying a real epsilon edge through determinization.
func (a *Automaton) AddEpsilon(src, dest State) {
	if a.IsAccept(dest) {
		a.SetAccept(src, true)
	}
	for _, t := range a.Transitions(dest) {
		if err := a.AddTransition(src, t.Dest, t.Min, t.Max); err != nil {
			panic(err)
		}
	}
}

// GetStartPoints returns the sorted ascending sequence of every
// transition's min, and every max+1 that does not overflow alphaMax,
// occurring anywhere in the automaton's transition table, together with
// the sentinel 0. These points partition the symbol space into
// contiguous classes within which every state transitions identically.
func (a *Automaton) GetStartPoints(alphaMax int32) []int32 {
	set := map[int32]struct{}{0: {}}
	for s := 0; s < a.NumStates(); s++ {
		for _, t := range a.Transitions(State(s)) {
			set[t.Min] = struct{}{}
			if t.Max < alphaMax {
				set[t.Max+1] = struct{}{}
			}
		}
	}
	points := make([]int32, 0, len(set))
	for p := range set {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	return points
}

// Oversize exposes the shared amortized-linear growth rule to callers that
// manage their own packed buffers. This module's own buffers are plain
// slices grown with append and do not call it.
func Oversize(minTarget, elementSize int) (int, error) {
	if minTarget < 0 {
		return 0, newError(InvalidInput, "oversize: negative size request %d", minTarget)
	}
	return bitpack.Oversize(minTarget, elementSize), nil
}
