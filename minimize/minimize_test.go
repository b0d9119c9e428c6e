package minimize

import (
	"testing"

	"github.com/levauto/levauto/automaton"
)

const testAlphaMax = 255

func makeString(s string) *automaton.Automaton {
	a := automaton.New()
	prev := a.CreateState()
	for _, r := range s {
		next := a.CreateState()
		if err := a.AddTransition(prev, next, int32(r), int32(r)); err != nil {
			panic(err)
		}
		prev = next
	}
	a.SetAccept(prev, true)
	if err := a.FinishState(); err != nil {
		panic(err)
	}
	return a
}

func TestMinimizeUnionOfDuplicateStringsCollapsesToThreeStates(t *testing.T) {
	u, err := automaton.Union([]*automaton.Automaton{makeString("ab"), makeString("ab")})
	if err != nil {
		t.Fatal(err)
	}
	min, err := Minimize(u, testAlphaMax)
	if err != nil {
		t.Fatal(err)
	}
	if min.NumStates() != 3 {
		t.Fatalf("NumStates() = %d, want 3 (initial, after-a, accepting after-b)", min.NumStates())
	}
	if !automaton.Run(min, []int32{'a', 'b'}) {
		t.Fatal("expected \"ab\" accepted")
	}
	if automaton.Run(min, []int32{'a'}) || automaton.Run(min, []int32{'a', 'c'}) {
		t.Fatal("expected non-members rejected")
	}
}

func TestMinimizePreservesLanguage(t *testing.T) {
	a := makeString("kitten")
	min, err := Minimize(a, testAlphaMax)
	if err != nil {
		t.Fatal(err)
	}
	if !automaton.Run(min, []int32{'k', 'i', 't', 't', 'e', 'n'}) {
		t.Fatal("expected \"kitten\" accepted")
	}
	if automaton.Run(min, []int32{'k', 'i', 't', 't', 'e'}) {
		t.Fatal("expected the prefix \"kitte\" rejected")
	}
}

func TestMinimizeFastPathEmptyAutomaton(t *testing.T) {
	a := automaton.New()
	a.CreateState()
	if err := a.FinishState(); err != nil {
		t.Fatal(err)
	}
	min, err := Minimize(a, testAlphaMax)
	if err != nil {
		t.Fatal(err)
	}
	if min.NumStates() != 0 {
		t.Fatalf("NumStates() = %d, want 0", min.NumStates())
	}
}

func TestMinimizeFastPathTotalSelfLoop(t *testing.T) {
	a := automaton.New()
	s0 := a.CreateState()
	a.SetAccept(s0, true)
	if err := a.AddTransition(s0, s0, 0, testAlphaMax); err != nil {
		t.Fatal(err)
	}
	if err := a.FinishState(); err != nil {
		t.Fatal(err)
	}
	min, err := Minimize(a, testAlphaMax)
	if err != nil {
		t.Fatal(err)
	}
	if min != a {
		t.Fatal("expected the total-self-loop fast path to return the input unchanged")
	}
}

func TestMinimizeHasNoEquivalentStatePair(t *testing.T) {
	u, err := automaton.Union([]*automaton.Automaton{makeString("ab"), makeString("ac")})
	if err != nil {
		t.Fatal(err)
	}
	min, err := Minimize(u, testAlphaMax)
	if err != nil {
		t.Fatal(err)
	}
	// The minimal automaton for {"ab","ac"} has exactly three states
	// (initial, after-a, accepting); any more would mean two of them are
	// equivalent. The language itself is checked directly below.
	if min.NumStates() != 3 {
		t.Fatalf("NumStates() = %d, want 3 (initial, after-a, accepting)", min.NumStates())
	}
	if !automaton.Run(min, []int32{'a', 'b'}) || !automaton.Run(min, []int32{'a', 'c'}) {
		t.Fatal("expected both branches still accepted after minimization")
	}
	if automaton.Run(min, []int32{'a'}) {
		t.Fatal("expected the shared prefix alone rejected")
	}
}
