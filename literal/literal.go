// Package literal extracts exact-match structure out of automata and
// query words: the common prefix every accepted string shares, and,
// for a fuzzy query word, substrings any match within its edit-distance
// budget must contain verbatim.
package literal

import "github.com/levauto/levauto/automaton"

// CommonPrefix returns the longest symbol sequence that every string
// accepted by a must start with: it walks from state 0 while the current
// state is non-accepting and has exactly one outgoing transition, which
// must itself be a singleton [c,c] interval. The walk stops at the first
// accepting state (an empty continuation is itself a valid match there, so
// no further symbol can be "common") or the first state with more than one
// outgoing transition or a non-singleton one.
func CommonPrefix(a *automaton.Automaton) []int32 {
	var prefix []int32
	state := automaton.State(0)
	for !a.IsAccept(state) && a.NumTransitions(state) == 1 {
		t := a.Transition(state, 0)
		if t.Min != t.Max {
			break
		}
		prefix = append(prefix, t.Min)
		state = t.Dest
	}
	return prefix
}

// RequiredSubstrings returns contiguous substrings of word that a
// prefilter can require a candidate to contain before running the full
// Levenshtein automaton: word is split into n+1 contiguous chunks, so by
// pigeonhole at most n edits can touch at most n of them, leaving at
// least one chunk unspoiled in any true match. That guarantee only holds
// if the prefilter requires every one of the n+1 chunks (as alternatives,
// not all of them at once — see prefilter.Build) — dropping even one
// chunk lets the surviving, unspoiled piece be exactly the one dropped,
// which would make the prefilter reject real matches. So if any chunk
// would fall below min, or there are more than max of them, the whole
// partition is unusable and RequiredSubstrings returns nil: callers must
// treat nil as "no prefilter for this query", never as "no required
// substrings, but still filter on an empty set".
//
// This is a Hamming-distance argument, not a rigorous edit-distance one:
// insertions and deletions shift later chunks out of alignment, so even
// a complete partition is a prefilter heuristic only, never a
// correctness guarantee on its own — callers must still run the real
// automaton on anything it lets through.
func RequiredSubstrings(word []int32, n, min, max int) [][]int32 {
	if n < 0 {
		n = 0
	}
	pieces := n + 1
	if pieces > len(word) {
		// n+1 chunks would include an empty one, and the chunk a match
		// leaves untouched may be exactly that one: no usable partition.
		return nil
	}
	if max > 0 && pieces > max {
		return nil
	}

	base := len(word) / pieces
	rem := len(word) % pieces
	chunks := make([][]int32, 0, pieces)
	pos := 0
	for i := 0; i < pieces; i++ {
		size := base
		if i < rem {
			size++
		}
		if size < min {
			return nil
		}
		chunk := make([]int32, size)
		copy(chunk, word[pos:pos+size])
		chunks = append(chunks, chunk)
		pos += size
	}
	return chunks
}
