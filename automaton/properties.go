package automaton

// IsEmpty reports whether a accepts no strings at all: equivalent to no
// accept state being reachable from the initial state.
func IsEmpty(a *Automaton) bool {
	if a.NumStates() == 0 {
		return true
	}
	if !a.IsAccept(0) && a.NumTransitions(0) == 0 {
		return true
	}
	visited := make([]bool, a.NumStates())
	visited[0] = true
	queue := []State{0}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if a.IsAccept(s) {
			return false
		}
		for _, t := range a.Transitions(s) {
			if !visited[t.Dest] {
				visited[t.Dest] = true
				queue = append(queue, t.Dest)
			}
		}
	}
	return true
}

// IsFinite reports whether a's language is finite: a depth-first walk
// from the initial state, coloring states unvisited/on-stack/done, finds
// no transition back into a state currently on the DFS stack. Any such
// back-edge reachable from the initial state is reported as infinite,
// including a cycle among states from which no accept state is reachable;
// on an automaton without dead states that is exactly an infinite
// language.
func IsFinite(a *Automaton) bool {
	n := a.NumStates()
	if n == 0 {
		return true
	}
	const (
		unvisited = iota
		onStack
		done
	)
	color := make([]int, n)

	var dfs func(s State) bool
	dfs = func(s State) bool {
		color[s] = onStack
		for _, t := range a.Transitions(s) {
			switch color[t.Dest] {
			case onStack:
				return true
			case unvisited:
				if dfs(t.Dest) {
					return true
				}
			}
		}
		color[s] = done
		return false
	}
	return !dfs(0)
}

// SubsetOf reports whether a1's language is a subset of a2's. Both
// automata must be deterministic (checked against the Deterministic
// flag); callers with a possibly-nondeterministic automaton must
// determinize first. Implemented as a synchronized product walk from
// (0,0): whenever a1 accepts a pair's first component, a2 must accept
// its second; and every a1 transition's interval must be fully covered
// by a2's transitions out of the paired state.
func SubsetOf(a1, a2 *Automaton) (bool, error) {
	if !a1.Deterministic() || !a2.Deterministic() {
		return false, newError(InvalidInput, "subsetOf: both automata must be deterministic")
	}
	type pair struct{ p1, p2 State }

	visited := map[pair]bool{{0, 0}: true}
	queue := []pair{{0, 0}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if a1.IsAccept(p.p1) && !a2.IsAccept(p.p2) {
			return false, nil
		}
		t2s := a2.Transitions(p.p2)
		for _, t1 := range a1.Transitions(p.p1) {
			pos := t1.Min
			for pos <= t1.Max {
				found := false
				for _, t2 := range t2s {
					if t2.Min <= pos && pos <= t2.Max {
						found = true
						hi := min(t1.Max, t2.Max)
						np := pair{t1.Dest, t2.Dest}
						if !visited[np] {
							visited[np] = true
							queue = append(queue, np)
						}
						pos = hi + 1
						break
					}
				}
				if !found {
					return false, nil
				}
			}
		}
	}
	return true, nil
}

// SameLanguage reports whether a1 and a2 accept exactly the same
// language, via mutual SubsetOf. Both automata must be deterministic.
func SameLanguage(a1, a2 *Automaton) (bool, error) {
	ok, err := SubsetOf(a1, a2)
	if err != nil || !ok {
		return false, err
	}
	return SubsetOf(a2, a1)
}

// Run reports whether a accepts the symbol sequence symbols, stepping
// through the automaton one symbol at a time from state 0 and failing as
// soon as no transition matches. Meaningful on deterministic automata;
// on a nondeterministic one it follows only the first matching
// transition at each step, whichever one Step returns.
func Run(a *Automaton, symbols []int32) bool {
	state := State(0)
	for _, sym := range symbols {
		state = a.Step(state, sym)
		if state == NoState {
			return false
		}
	}
	return a.IsAccept(state)
}
