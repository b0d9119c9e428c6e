// Package determinize implements subset construction: converting a
// (possibly nondeterministic) automaton into an equivalent deterministic
// one, using an interval-coalescing sweep over transition endpoints
// rather than enumerating individual symbols.
package determinize

import (
	"github.com/levauto/levauto/automaton"
	"github.com/levauto/levauto/internal/sparse"
)

// event is a single point in a subset's sweep line: a transition either
// starting (opening its destination's interval) or ending (closing it)
// at this point.
type event struct {
	dest    int32
	isStart bool
}

// Determinize converts a into an equivalent deterministic automaton.
// Already-deterministic or trivially small (≤1 state) inputs are
// returned unchanged. No alphabet bound is needed: the sweep works only
// from the transition endpoints already present in a's transition table.
func Determinize(a *automaton.Automaton) (*automaton.Automaton, error) {
	if a.Deterministic() || a.NumStates() <= 1 {
		return a, nil
	}

	d := &determinizer{
		nfa:    a,
		b:      automaton.NewTransitionBuilder(),
		byHash: map[uint32][]*sparse.FrozenIntSet{},
	}

	initLive := sparse.NewSortedIntSet()
	initLive.Incr(0)
	s0 := d.b.CreateState()
	d.b.SetAccept(s0, a.IsAccept(0))
	initFrozen := initLive.Freeze(s0)
	d.remember(initFrozen)
	d.queue = append(d.queue, initFrozen)

	for len(d.queue) > 0 {
		cur := d.queue[0]
		d.queue = d.queue[1:]
		if err := d.processSubset(cur); err != nil {
			return nil, err
		}
	}

	res, err := d.b.Finish()
	if err != nil {
		return nil, err
	}
	res.MarkDeterministic(true)
	return res, nil
}

type determinizer struct {
	nfa    *automaton.Automaton
	b      *automaton.TransitionBuilder
	byHash map[uint32][]*sparse.FrozenIntSet
	queue  []*sparse.FrozenIntSet
}

func (d *determinizer) remember(f *sparse.FrozenIntSet) {
	d.byHash[f.Hash()] = append(d.byHash[f.Hash()], f)
}

// stateFor looks up an existing DFA state whose frozen NFA-subset matches
// live's current contents.
func (d *determinizer) stateFor(live *sparse.SortedIntSet) (automaton.State, bool) {
	h := live.ComputeHash()
	for _, f := range d.byHash[h] {
		if live.EqualsFrozen(f) {
			return f.State(), true
		}
	}
	return 0, false
}

// getOrCreate returns the DFA state for live's current subset, creating
// and enqueueing a new one (with the given accept bit) if none exists
// yet.
func (d *determinizer) getOrCreate(live *sparse.SortedIntSet, accept bool) automaton.State {
	if st, ok := d.stateFor(live); ok {
		return st
	}
	ns := d.b.CreateState()
	d.b.SetAccept(ns, accept)
	frozen := live.Freeze(ns)
	d.remember(frozen)
	d.queue = append(d.queue, frozen)
	return ns
}

// appendEvent records e at point in the point-transition container. The
// container is a SmallIntMap keyed by point, so it shares SortedIntSet's
// array/map cutover at 30 distinct points.
func appendEvent(pm *sparse.SmallIntMap[[]event], point int32, e event) {
	list, _ := pm.Get(point)
	list = append(list, e)
	pm.Set(point, list)
}

// processSubset runs the interval sweep for one pending subset: gathers
// every member NFA state's outgoing transitions as start/end events,
// sweeps the sorted event points left to right maintaining a live
// SortedIntSet of destination NFA states, and emits one DFA transition
// per maximal interval during which the live set stays constant and
// non-empty.
func (d *determinizer) processSubset(cur *sparse.FrozenIntSet) error {
	members := cur.Values()
	pm := sparse.NewSmallIntMap[[]event]()
	for _, s := range members {
		for _, t := range d.nfa.Transitions(s) {
			appendEvent(pm, t.Min, event{dest: t.Dest, isStart: true})
			appendEvent(pm, t.Max+1, event{dest: t.Dest, isStart: false})
		}
	}

	points := pm.Keys()
	live := sparse.NewSortedIntSet()
	accCount := 0
	r := cur.State()

	var lastPoint int32
	first := true
	for _, point := range points {
		if !first && !live.IsEmpty() {
			dest := d.getOrCreate(live, accCount > 0)
			d.b.AddTransition(r, dest, lastPoint, point-1)
		}

		events, _ := pm.Get(point)
		for _, e := range events {
			if e.isStart {
				continue
			}
			if d.nfa.IsAccept(e.dest) {
				accCount--
			}
			live.Decr(e.dest)
		}
		for _, e := range events {
			if !e.isStart {
				continue
			}
			live.Incr(e.dest)
			if d.nfa.IsAccept(e.dest) {
				accCount++
			}
		}

		lastPoint = point
		first = false
	}

	if !live.IsEmpty() {
		return newError(ContractViolation, "live set non-empty after sweeping subset %v", members)
	}
	return nil
}
