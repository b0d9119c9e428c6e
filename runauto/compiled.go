// Package runauto builds a compiled, read-only representation of a
// deterministic automaton that matches input in time linear in the
// input length, with O(1) amortized work per symbol.
package runauto

import (
	"sort"
	"unicode/utf16"

	"github.com/levauto/levauto/automaton"
	"github.com/levauto/levauto/internal/bitpack"
	"github.com/levauto/levauto/internal/conv"
)

// CompiledAutomaton is an immutable matcher built from a deterministic
// automaton. Safe for concurrent use from any number of goroutines.
type CompiledAutomaton struct {
	points      []int32
	accept      []uint64 // one bit per state, packed via internal/bitpack
	transitions []int32  // numStates * numClasses, dest state or automaton.NoState
	classmap    [257]int32
	numClasses  int32
}

// Compile builds a CompiledAutomaton from a, which must be deterministic.
// alphaMax bounds the symbol alphabet the same way it does throughout the
// automaton package.
func Compile(a *automaton.Automaton, alphaMax int32) (*CompiledAutomaton, error) {
	if !a.Deterministic() {
		return nil, newError(InvalidInput, "compile requires a deterministic automaton")
	}
	points := a.GetStartPoints(alphaMax)
	n := a.NumStates()
	p := len(points)

	c := &CompiledAutomaton{
		points:      points,
		accept:      make([]uint64, bitpack.WordsForBits(n)),
		transitions: make([]int32, n*p),
		numClasses:  conv.IntToInt32(p),
	}
	for s := 0; s < n; s++ {
		if a.IsAccept(int32(s)) {
			bitpack.SetBit(c.accept, s)
		}
		for k, pt := range points {
			c.transitions[s*p+k] = a.Step(int32(s), pt)
		}
	}
	for v := int32(0); v <= 256; v++ {
		c.classmap[v] = classOf(points, v)
	}
	return c, nil
}

// classOf returns the largest index k with points[k] <= v.
func classOf(points []int32, v int32) int32 {
	k := sort.Search(len(points), func(i int) bool { return points[i] > v }) - 1
	if k < 0 {
		k = 0
	}
	return int32(k)
}

// classFor resolves a symbol to its partition class: a direct classmap
// lookup for v <= 256, a binary search over points otherwise.
func (c *CompiledAutomaton) classFor(v int32) int32 {
	if v <= 256 {
		return c.classmap[v]
	}
	return classOf(c.points, v)
}

// Matches reports whether symbols is accepted, walking the compiled
// transition table one symbol at a time from state 0.
func (c *CompiledAutomaton) Matches(symbols []int32) bool {
	state := int32(0)
	for _, v := range symbols {
		cl := c.classFor(v)
		state = c.transitions[state*c.numClasses+cl]
		if state == automaton.NoState {
			return false
		}
	}
	return bitpack.TestBit(c.accept, int(state))
}

// MatchesString decodes s into UTF-16 code units, the symbol model used
// throughout this module (one symbol per code unit, surrogate pairs
// becoming two symbols), and reports whether the resulting sequence is
// accepted. This matches Matches/levauto.MatchSymbols exactly; decoding
// by Unicode code point instead would diverge on non-BMP input.
func (c *CompiledAutomaton) MatchesString(s string) bool {
	units := utf16.Encode([]rune(s))
	symbols := make([]int32, len(units))
	for i, u := range units {
		symbols[i] = int32(u)
	}
	return c.Matches(symbols)
}
