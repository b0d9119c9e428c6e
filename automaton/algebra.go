package automaton

// Algebra operations that splice transitions build their result through
// TransitionBuilder rather than the raw two-phase protocol: they frequently
// need to add transitions sourced at a state that has already been fully
// copied in, which the raw protocol's finish-on-move-away rule forbids.
// epsilon and RemoveDeadStates, which add each state's transitions in
// order, use the raw protocol.

// copyInto copies every state of a into b, returning the mapping from a's
// state numbers to the corresponding new state numbers in b.
func copyInto(b *TransitionBuilder, a *Automaton) []State {
	mapping := make([]State, a.NumStates())
	for s := 0; s < a.NumStates(); s++ {
		mapping[s] = b.CreateState()
		b.SetAccept(mapping[s], a.IsAccept(State(s)))
	}
	for s := 0; s < a.NumStates(); s++ {
		for _, t := range a.Transitions(State(s)) {
			b.AddTransition(mapping[s], mapping[t.Dest], t.Min, t.Max)
		}
	}
	return mapping
}

// epsilon returns a two-state-free automaton accepting exactly the empty
// string: a single accepting state with no transitions.
func epsilon() (*Automaton, error) {
	a := New()
	s := a.CreateState()
	a.SetAccept(s, true)
	if err := a.FinishState(); err != nil {
		return nil, err
	}
	return a, nil
}

// Concatenate builds an automaton accepting the concatenation of the
// languages of list, in order. The empty list concatenates to the
// empty-string language.
//
// Every input automaton is copied in wholesale. Then, for i from 0 to
// len(list)-2, each accept state of automaton i has automaton i+1's
// initial transitions spliced onto it; if automaton i+1's own initial
// state is itself accepting, the splice continues into automaton i+2, and
// so on, so a state only keeps its accept bit in the final result if the
// chain of splices runs all the way to the last automaton in the list.
func Concatenate(list []*Automaton) (*Automaton, error) {
	if len(list) == 0 {
		return epsilon()
	}
	if len(list) == 1 {
		b := NewTransitionBuilder()
		copyInto(b, list[0])
		return b.Finish()
	}

	b := NewTransitionBuilder()
	starts := make([]State, len(list))
	accepts := make([][]State, len(list))
	for i, in := range list {
		mapping := copyInto(b, in)
		starts[i] = mapping[0]
		for s := 0; s < in.NumStates(); s++ {
			if in.IsAccept(State(s)) {
				accepts[i] = append(accepts[i], mapping[s])
			}
		}
	}

	finalAccept := map[State]bool{}
	for _, s := range accepts[len(list)-1] {
		finalAccept[s] = true
	}

	for i := 0; i < len(list)-1; i++ {
		for _, s := range accepts[i] {
			j := i + 1
			reachedEnd := false
			for {
				for _, t := range b.TransitionsFrom(starts[j]) {
					b.AddTransition(s, t.Dest, t.Min, t.Max)
				}
				if !list[j].IsAccept(0) {
					break
				}
				if j == len(list)-1 {
					reachedEnd = true
					break
				}
				j++
			}
			if reachedEnd {
				finalAccept[s] = true
			}
		}
	}

	for s := 0; s < b.numStates; s++ {
		b.SetAccept(State(s), finalAccept[State(s)])
	}
	return b.Finish()
}

// Union builds an automaton accepting the union of the languages of list.
// A fresh initial state replicates the initial transitions (and, if
// accepting, the accept bit) of every input's initial state; dead states
// are then removed.
func Union(list []*Automaton) (*Automaton, error) {
	b := NewTransitionBuilder()
	s0 := b.CreateState()
	for _, in := range list {
		mapping := copyInto(b, in)
		start := mapping[0]
		if in.IsAccept(0) {
			b.SetAccept(s0, true)
		}
		for _, t := range b.TransitionsFrom(start) {
			b.AddTransition(s0, t.Dest, t.Min, t.Max)
		}
	}
	a, err := b.Finish()
	if err != nil {
		return nil, err
	}
	return RemoveDeadStates(a)
}

// Optional builds an automaton accepting the language of a, plus the
// empty string: a fresh accepting initial state replicates a's initial
// transitions.
func Optional(a *Automaton) (*Automaton, error) {
	b := NewTransitionBuilder()
	s0 := b.CreateState()
	b.SetAccept(s0, true)
	mapping := copyInto(b, a)
	for _, t := range b.TransitionsFrom(mapping[0]) {
		b.AddTransition(s0, t.Dest, t.Min, t.Max)
	}
	return b.Finish()
}

// Repeat builds an automaton accepting zero or more concatenated copies
// of a's language (Kleene star): a fresh accepting initial state
// replicates a's initial transitions, and every accept state of a also
// replicates them, looping back into the repetition.
func Repeat(a *Automaton) (*Automaton, error) {
	b := NewTransitionBuilder()
	s0 := b.CreateState()
	b.SetAccept(s0, true)
	mapping := copyInto(b, a)
	initTrans := b.TransitionsFrom(mapping[0])
	for _, t := range initTrans {
		b.AddTransition(s0, t.Dest, t.Min, t.Max)
	}
	for s := 0; s < a.NumStates(); s++ {
		if a.IsAccept(State(s)) {
			for _, t := range initTrans {
				b.AddTransition(mapping[s], t.Dest, t.Min, t.Max)
			}
		}
	}
	return b.Finish()
}

// RepeatMin builds an automaton accepting min or more concatenated copies
// of a's language: min fixed copies of a followed by Repeat(a).
func RepeatMin(a *Automaton, min int) (*Automaton, error) {
	if min < 0 {
		return nil, newError(InvalidInput, "repeatMin: negative min %d", min)
	}
	if min == 0 {
		return Repeat(a)
	}
	rep, err := Repeat(a)
	if err != nil {
		return nil, err
	}
	list := make([]*Automaton, 0, min+1)
	for i := 0; i < min; i++ {
		list = append(list, a)
	}
	list = append(list, rep)
	return Concatenate(list)
}

// Intersection builds an automaton accepting the intersection of a1 and
// a2's languages via product construction: states are pairs (s1, s2), a
// transition exists for the overlap of any pair of a1/a2 transitions out
// of the pair's components, and a pair state accepts iff both components
// do. Dead states are removed from the result.
func Intersection(a1, a2 *Automaton) (*Automaton, error) {
	type pair struct{ s1, s2 State }

	b := NewTransitionBuilder()
	stateOf := map[pair]State{}
	start := pair{0, 0}
	s0 := b.CreateState()
	stateOf[start] = s0
	b.SetAccept(s0, a1.IsAccept(0) && a2.IsAccept(0))

	queue := []pair{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		src := stateOf[p]
		for _, x := range a1.Transitions(p.s1) {
			for _, y := range a2.Transitions(p.s2) {
				lo := max(x.Min, y.Min)
				hi := min(x.Max, y.Max)
				if lo > hi {
					continue
				}
				np := pair{x.Dest, y.Dest}
				ns, ok := stateOf[np]
				if !ok {
					ns = b.CreateState()
					stateOf[np] = ns
					b.SetAccept(ns, a1.IsAccept(np.s1) && a2.IsAccept(np.s2))
					queue = append(queue, np)
				}
				b.AddTransition(src, ns, lo, hi)
			}
		}
	}

	res, err := b.Finish()
	if err != nil {
		return nil, err
	}
	return RemoveDeadStates(res)
}

// Reverse builds an automaton accepting the reverse of a's language: a
// fresh non-accepting initial state, every old state renumbered by +1
// with its edges reversed, the old initial state made accepting, and an
// epsilon splice from the new initial into each old accept state (now
// renumbered). The renumbered old-accept states are also returned, for
// callers that want to start from them directly instead of through the
// spliced-in fresh initial.
func Reverse(a *Automaton) (*Automaton, []State, error) {
	b := NewTransitionBuilder()
	newStart := b.CreateState()

	mapping := make([]State, a.NumStates())
	for s := 0; s < a.NumStates(); s++ {
		mapping[s] = b.CreateState()
	}
	if a.NumStates() > 0 {
		b.SetAccept(mapping[0], true)
	}
	for s := 0; s < a.NumStates(); s++ {
		for _, t := range a.Transitions(State(s)) {
			b.AddTransition(mapping[t.Dest], mapping[s], t.Min, t.Max)
		}
	}

	var newInitials []State
	for s := 0; s < a.NumStates(); s++ {
		if a.IsAccept(State(s)) {
			newInitials = append(newInitials, mapping[s])
		}
	}
	for _, s := range newInitials {
		if b.AcceptOf(s) {
			b.SetAccept(newStart, true)
		}
		for _, t := range b.TransitionsFrom(s) {
			b.AddTransition(newStart, t.Dest, t.Min, t.Max)
		}
	}

	res, err := b.Finish()
	if err != nil {
		return nil, nil, err
	}
	return res, newInitials, nil
}

// Totalize builds an automaton equivalent to a but with a transition
// defined from every state for every symbol in [0, alphaMax]: a fresh
// non-accepting sink state gets a self-loop over the full alphabet, and
// every gap in each original state's transition coverage is routed to the
// sink.
func Totalize(a *Automaton, alphaMax int32) (*Automaton, error) {
	b := NewTransitionBuilder()
	mapping := copyInto(b, a)
	sink := b.CreateState()
	b.AddTransition(sink, sink, 0, alphaMax)

	for s := 0; s < a.NumStates(); s++ {
		next := int32(0)
		for _, t := range a.Transitions(State(s)) {
			if t.Min > next {
				b.AddTransition(mapping[s], sink, next, t.Min-1)
			}
			if t.Max+1 > next {
				next = t.Max + 1
			}
		}
		if next <= alphaMax {
			b.AddTransition(mapping[s], sink, next, alphaMax)
		}
	}
	return b.Finish()
}

// RemoveDeadStates builds an automaton over only the "live" states of a:
// those reachable from the initial state and from which some accept state
// is reachable. Unreachable-to-accept dead ends, and everything
// unreachable from the initial state, are dropped. If no state is live
// the result is a fresh zero-state automaton (the canonical empty
// language).
func RemoveDeadStates(a *Automaton) (*Automaton, error) {
	n := a.NumStates()
	if n == 0 {
		return New(), nil
	}

	liveFromInit := make([]bool, n)
	liveFromInit[0] = true
	queue := []State{0}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, t := range a.Transitions(s) {
			if !liveFromInit[t.Dest] {
				liveFromInit[t.Dest] = true
				queue = append(queue, t.Dest)
			}
		}
	}

	revAdj := make([][]State, n)
	for s := 0; s < n; s++ {
		for _, t := range a.Transitions(State(s)) {
			revAdj[t.Dest] = append(revAdj[t.Dest], State(s))
		}
	}

	liveToAccept := make([]bool, n)
	var q2 []State
	for s := 0; s < n; s++ {
		if a.IsAccept(State(s)) {
			liveToAccept[s] = true
			q2 = append(q2, State(s))
		}
	}
	for len(q2) > 0 {
		s := q2[0]
		q2 = q2[1:]
		for _, p := range revAdj[s] {
			if !liveToAccept[p] {
				liveToAccept[p] = true
				q2 = append(q2, p)
			}
		}
	}

	newID := make([]State, n)
	for i := range newID {
		newID[i] = NoState
	}
	var live []State
	for s := 0; s < n; s++ {
		if liveFromInit[s] && liveToAccept[s] {
			newID[s] = State(len(live))
			live = append(live, State(s))
		}
	}
	if len(live) == 0 {
		return New(), nil
	}

	result := New()
	for range live {
		result.CreateState()
	}
	for _, s := range live {
		result.SetAccept(newID[s], a.IsAccept(s))
	}
	for _, s := range live {
		for _, t := range a.Transitions(s) {
			if newID[t.Dest] == NoState {
				continue
			}
			if err := result.AddTransition(newID[s], newID[t.Dest], t.Min, t.Max); err != nil {
				return nil, err
			}
		}
	}
	if err := result.FinishState(); err != nil {
		return nil, err
	}
	return result, nil
}
