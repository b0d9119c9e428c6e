package literal

import (
	"reflect"
	"testing"

	"github.com/levauto/levauto/automaton"
)

func toSymbols(s string) []int32 {
	out := make([]int32, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int32(s[i])
	}
	return out
}

func makeLiteral(s string) *automaton.Automaton {
	a := automaton.New()
	prev := a.CreateState()
	for i := 0; i < len(s); i++ {
		next := a.CreateState()
		if err := a.AddTransition(prev, next, int32(s[i]), int32(s[i])); err != nil {
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

func TestCommonPrefixFullWordWhenLiteral(t *testing.T) {
	a := makeLiteral("hello")
	got := CommonPrefix(a)
	if !reflect.DeepEqual(got, toSymbols("hello")) {
		t.Fatalf("CommonPrefix = %v, want %v", got, toSymbols("hello"))
	}
}

func TestCommonPrefixStopsAtBranch(t *testing.T) {
	a := automaton.New()
	s0 := a.CreateState()
	s1 := a.CreateState()
	s2 := a.CreateState()
	s3 := a.CreateState()
	if err := a.AddTransition(s0, s1, 'f', 'f'); err != nil {
		t.Fatal(err)
	}
	if err := a.FinishState(); err != nil {
		t.Fatal(err)
	}
	if err := a.AddTransition(s1, s2, 'o', 'o'); err != nil {
		t.Fatal(err)
	}
	if err := a.AddTransition(s1, s3, 'a', 'a'); err != nil {
		t.Fatal(err)
	}
	if err := a.FinishState(); err != nil {
		t.Fatal(err)
	}
	a.SetAccept(s2, true)
	a.SetAccept(s3, true)
	if err := a.FinishState(); err != nil {
		t.Fatal(err)
	}
	if err := a.FinishState(); err != nil {
		t.Fatal(err)
	}

	got := CommonPrefix(a)
	if !reflect.DeepEqual(got, toSymbols("f")) {
		t.Fatalf("CommonPrefix = %v, want %v", got, toSymbols("f"))
	}
}

func TestCommonPrefixStopsAtAcceptingState(t *testing.T) {
	a := automaton.New()
	s0 := a.CreateState()
	s1 := a.CreateState()
	a.SetAccept(s0, true)
	if err := a.AddTransition(s0, s1, 'x', 'x'); err != nil {
		t.Fatal(err)
	}
	a.SetAccept(s1, true)
	if err := a.FinishState(); err != nil {
		t.Fatal(err)
	}
	if err := a.FinishState(); err != nil {
		t.Fatal(err)
	}

	got := CommonPrefix(a)
	if len(got) != 0 {
		t.Fatalf("CommonPrefix = %v, want empty (state 0 already accepts)", got)
	}
}

func TestCommonPrefixEmptyOnNonSingletonRange(t *testing.T) {
	a := automaton.New()
	s0 := a.CreateState()
	s1 := a.CreateState()
	if err := a.AddTransition(s0, s1, 'a', 'z'); err != nil {
		t.Fatal(err)
	}
	a.SetAccept(s1, true)
	if err := a.FinishState(); err != nil {
		t.Fatal(err)
	}
	if err := a.FinishState(); err != nil {
		t.Fatal(err)
	}

	got := CommonPrefix(a)
	if len(got) != 0 {
		t.Fatalf("CommonPrefix = %v, want empty (range isn't a single symbol)", got)
	}
}

func TestRequiredSubstringsSplitsIntoNPlusOneChunks(t *testing.T) {
	word := toSymbols("abcdefgh")
	chunks := RequiredSubstrings(word, 1, 1, 0)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks for n=1, got %d: %v", len(chunks), chunks)
	}
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total != len(word) {
		t.Fatalf("chunks should cover the whole word, got total length %d", total)
	}
}

func TestRequiredSubstringsRejectsPartitionWithAnyChunkBelowMin(t *testing.T) {
	word := toSymbols("ab")
	chunks := RequiredSubstrings(word, 2, 2, 0)
	if chunks != nil {
		t.Fatalf("expected nil when a chunk falls below min, got %v", chunks)
	}
}

func TestRequiredSubstringsShortWordDoesNotDropTheSurvivingChunk(t *testing.T) {
	// Regression for a prefilter that filtered on an incomplete partition:
	// "abc" at distance 1 splits into 2 chunks, "ab" and "c". With
	// min=2 the 1-length chunk "c" would have been silently dropped,
	// leaving only "ab" as "required" — but a real match like "xbc"
	// survives precisely because its untouched chunk "c" is the one that
	// would have been dropped. The whole partition must be rejected
	// instead of filtering on the remaining chunk alone.
	word := toSymbols("abc")
	chunks := RequiredSubstrings(word, 1, 2, 0)
	if chunks != nil {
		t.Fatalf("expected nil (incomplete partition), got %v", chunks)
	}
}

func TestRequiredSubstringsSkipsWhenPartitionExceedsMax(t *testing.T) {
	// n=2 needs 3 chunks to keep the pigeonhole guarantee; capping at 2
	// would mean dropping one, so the whole partition must be rejected
	// rather than filtered on a strict subset.
	word := toSymbols("abcdefghij")
	if chunks := RequiredSubstrings(word, 2, 1, 2); chunks != nil {
		t.Fatalf("expected nil when max forces a dropped chunk, got %v", chunks)
	}
}

func TestRequiredSubstringsReturnsFullPartitionWhenMaxPermits(t *testing.T) {
	word := toSymbols("abcdefghij")
	chunks := RequiredSubstrings(word, 2, 1, 4)
	if len(chunks) != 3 {
		t.Fatalf("expected all 3 chunks for n=2, got %d: %v", len(chunks), chunks)
	}
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total != len(word) {
		t.Fatalf("chunks should cover the whole word, got total length %d", total)
	}
}

func TestRequiredSubstringsZeroDistanceIsWholeWord(t *testing.T) {
	word := toSymbols("needle")
	chunks := RequiredSubstrings(word, 0, 1, 0)
	if len(chunks) != 1 || !reflect.DeepEqual(chunks[0], word) {
		t.Fatalf("expected a single chunk equal to the whole word at n=0, got %v", chunks)
	}
}

func TestRequiredSubstringsEmptyWordYieldsNoChunks(t *testing.T) {
	if got := RequiredSubstrings(nil, 1, 1, 0); got != nil {
		t.Fatalf("expected nil for an empty word, got %v", got)
	}
}
