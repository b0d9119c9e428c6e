package prefilter

import "testing"

func TestEmptyRequiredSetAlwaysMaybeMatches(t *testing.T) {
	p, err := Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !p.MayMatch([]byte("anything")) {
		t.Fatal("expected an empty required set to never rule out a candidate")
	}
	if !p.MayMatch(nil) {
		t.Fatal("expected an empty required set to never rule out the empty candidate")
	}
}

func TestMayMatchRejectsCandidateMissingEveryRequiredSubstring(t *testing.T) {
	p, err := Build([][]byte{[]byte("cat"), []byte("dog")})
	if err != nil {
		t.Fatal(err)
	}
	if p.MayMatch([]byte("a bird in a tree")) {
		t.Fatal("expected rejection: candidate contains neither required substring")
	}
}

func TestMayMatchAcceptsCandidateContainingARequiredSubstring(t *testing.T) {
	p, err := Build([][]byte{[]byte("cat"), []byte("dog")})
	if err != nil {
		t.Fatal(err)
	}
	if !p.MayMatch([]byte("I have a cat")) {
		t.Fatal("expected acceptance: candidate contains one required substring")
	}
	if !p.MayMatch([]byte("walking the dog")) {
		t.Fatal("expected acceptance: candidate contains the other required substring")
	}
}

func TestEncodeRequiredRejectsSymbolsAboveByteRange(t *testing.T) {
	_, ok := EncodeRequired([][]int32{{'a', 'b', 0x1F600}})
	if ok {
		t.Fatal("expected encoding to fail for a symbol outside [0, 0xFF]")
	}
}

func TestEncodeRequiredPassesThroughByteRangeSymbols(t *testing.T) {
	got, ok := EncodeRequired([][]int32{{'a', 'b', 'c'}, {'x'}})
	if !ok {
		t.Fatal("expected encoding to succeed for symbols within [0, 0xFF]")
	}
	if string(got[0]) != "abc" || string(got[1]) != "x" {
		t.Fatalf("unexpected encoding: %v", got)
	}
}
