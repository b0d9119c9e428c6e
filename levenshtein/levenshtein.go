// Package levenshtein builds nondeterministic automata that accept every
// string within a bounded edit distance of a fixed query word, optionally
// counting an adjacent-character transposition as a single edit.
//
// Construction works directly off the word rather than through a
// precomputed parametric description table keyed by characteristic
// vectors: for each (position, errors-used) state, the deletion-only
// epsilon moves have a closed form (advancing position and error count in
// lockstep, bounded by the remaining error budget), so they are resolved
// analytically into plain labeled transitions as each state is expanded,
// and no separate table-driven cvec lookup or epsilon-elimination pass is
// needed.
package levenshtein

import "github.com/levauto/levauto/automaton"

// MaxSupportedDistance is the largest edit distance ToAutomaton accepts.
const MaxSupportedDistance = 2

// LevenshteinAutomata builds Levenshtein (or, with transpositions enabled,
// Damerau-Levenshtein) automata for a fixed word.
type LevenshteinAutomata struct {
	word      []int32
	prefix    []int32
	alphaMax  int32
	transpose bool
}

// New returns a builder for word over the symbol alphabet [0, alphaMax].
// If transpose is true, swapping two adjacent symbols counts as a single
// edit instead of two (a deletion plus an insertion).
func New(word []int32, alphaMax int32, transpose bool) *LevenshteinAutomata {
	w := make([]int32, len(word))
	copy(w, word)
	return &LevenshteinAutomata{word: w, alphaMax: alphaMax, transpose: transpose}
}

// WithPrefix attaches a literal prefix that must match exactly; only the
// remainder (the word passed to New) is subject to fuzzy matching. Returns
// the receiver for chaining.
func (l *LevenshteinAutomata) WithPrefix(prefix []int32) *LevenshteinAutomata {
	l.prefix = make([]int32, len(prefix))
	copy(l.prefix, prefix)
	return l
}

// ToAutomaton builds the NFA accepting every string within edit distance n
// of the prefix-plus-word (prefix matched exactly, n edits permitted
// against the rest). n must be in [0, MaxSupportedDistance]. n = 0
// degenerates to matching the literal concatenation exactly.
func (l *LevenshteinAutomata) ToAutomaton(n int) (*automaton.Automaton, error) {
	if n < 0 || n > MaxSupportedDistance {
		return nil, newError(InvalidInput, "toAutomaton: distance %d outside [0, %d]", n, MaxSupportedDistance)
	}

	suffix, err := l.suffixAutomaton(n)
	if err != nil {
		return nil, err
	}
	if len(l.prefix) == 0 {
		return suffix, nil
	}
	prefixAuto, err := literalAutomaton(l.prefix)
	if err != nil {
		return nil, err
	}
	return automaton.Concatenate([]*automaton.Automaton{prefixAuto, suffix})
}

// literalAutomaton builds the automaton accepting exactly word.
func literalAutomaton(word []int32) (*automaton.Automaton, error) {
	a := automaton.New()
	prev := a.CreateState()
	for _, ch := range word {
		next := a.CreateState()
		if err := a.AddTransition(prev, next, ch, ch); err != nil {
			return nil, err
		}
		prev = next
	}
	a.SetAccept(prev, true)
	if err := a.FinishState(); err != nil {
		return nil, err
	}
	a.MarkDeterministic(true)
	return a, nil
}

// levState identifies a state of the Levenshtein NFA: position i in the
// word, errors e spent so far, and kind (0 = normal, 1 = mid-transposition,
// waiting to consume word[i] having already consumed word[i+1]).
type levState struct {
	i, e, kind int
}

// suffixAutomaton builds the n=0..MaxSupportedDistance Levenshtein NFA over
// l.word alone (no prefix), discovering states by BFS from (0,0,0) rather
// than pre-allocating the full (position x error x kind) grid, so dead
// combinations reachable only through invalid transpositions near the
// start/end of the word are never created.
func (l *LevenshteinAutomata) suffixAutomaton(n int) (*automaton.Automaton, error) {
	if n == 0 {
		return literalAutomaton(l.word)
	}

	w := len(l.word)
	b := automaton.NewTransitionBuilder()
	stateOf := map[levState]automaton.State{}
	var queue []levState

	get := func(k levState) automaton.State {
		if s, ok := stateOf[k]; ok {
			return s
		}
		s := b.CreateState()
		stateOf[k] = s
		queue = append(queue, k)
		return s
	}
	get(levState{0, 0, 0})

	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		src := stateOf[k]

		if k.kind == 1 {
			// Completes a transposition: the first of the swapped pair,
			// word[k.i], was deferred; consuming it now lands two
			// positions past where the transposition started.
			dest := get(levState{k.i + 2, k.e, 0})
			ch := l.word[k.i]
			b.AddTransition(src, dest, ch, ch)
			continue
		}

		b.SetAccept(src, w-k.i+k.e <= n)

		// Every state reachable from k via zero or more deletions
		// (position and error count advancing together) contributes its
		// own match/substitution/insertion/transposition edges directly
		// out of k, since those deletions cost no input symbol.
		maxDelete := n - k.e
		if rem := w - k.i; rem < maxDelete {
			maxDelete = rem
		}
		for d := 0; d <= maxDelete; d++ {
			i2, e2 := k.i+d, k.e+d
			if i2 < w {
				ch := l.word[i2]
				b.AddTransition(src, get(levState{i2 + 1, e2, 0}), ch, ch)
				if e2 < n {
					addComplement(b, src, get(levState{i2 + 1, e2 + 1, 0}), ch, l.alphaMax)
					if l.transpose && i2+1 < w {
						ch2 := l.word[i2+1]
						b.AddTransition(src, get(levState{i2, e2 + 1, 1}), ch2, ch2)
					}
				}
			}
			if e2 < n {
				b.AddTransition(src, get(levState{i2, e2 + 1, 0}), 0, l.alphaMax)
			}
		}
	}

	return b.Finish()
}

// addComplement adds a transition from src to dest for every symbol in
// [0, alphaMax] except exclude.
func addComplement(b *automaton.TransitionBuilder, src, dest automaton.State, exclude, alphaMax int32) {
	if exclude > 0 {
		b.AddTransition(src, dest, 0, exclude-1)
	}
	if exclude < alphaMax {
		b.AddTransition(src, dest, exclude+1, alphaMax)
	}
}
