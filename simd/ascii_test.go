package simd

import "testing"

func toSyms(s string) []int32 {
	out := make([]int32, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int32(s[i])
	}
	return out
}

func TestClassifyASCIIShortBatch(t *testing.T) {
	if !ClassifyASCII(toSyms("abc")) {
		t.Fatal("expected a short all-ASCII batch classified true")
	}
	if ClassifyASCII([]int32{'a', 'b', 0x80}) {
		t.Fatal("expected a short batch with a non-ASCII symbol classified false")
	}
}

func TestClassifyASCIILongBatch(t *testing.T) {
	if !ClassifyASCII(toSyms("the quick brown fox jumps over the lazy dog")) {
		t.Fatal("expected a long all-ASCII batch classified true")
	}
}

func TestClassifyASCIILongBatchWithNonASCIITail(t *testing.T) {
	syms := toSyms("aaaaaaaa")
	syms = append(syms, 0x100)
	if ClassifyASCII(syms) {
		t.Fatal("expected a batch with a symbol above 0xFF classified false")
	}
}

func TestClassifyASCIILongBatchWithHighByteInPackedChunk(t *testing.T) {
	syms := toSyms("aaaaaaa")
	syms = append(syms, 0x80)
	if ClassifyASCII(syms) {
		t.Fatal("expected a packed 8-symbol chunk containing a high byte classified false")
	}
}

func TestClassifyASCIIEmptyBatch(t *testing.T) {
	if !ClassifyASCII(nil) {
		t.Fatal("expected an empty batch classified true")
	}
}

func TestHasAVX2IsStable(t *testing.T) {
	if HasAVX2() != HasAVX2() {
		t.Fatal("expected HasAVX2 to be stable across calls")
	}
}

func TestClassifyASCIIAgreesRegardlessOfAVX2Gate(t *testing.T) {
	// ClassifyASCII's own batched-vs-scalar dispatch is gated on hasAVX2,
	// but both paths must agree: force each explicitly and compare.
	saved := hasAVX2
	defer func() { hasAVX2 = saved }()

	long := toSyms("the quick brown fox jumps over the lazy dog")
	hasAVX2 = true
	withAVX2 := ClassifyASCII(long)
	hasAVX2 = false
	withoutAVX2 := ClassifyASCII(long)
	if withAVX2 != withoutAVX2 {
		t.Fatalf("ClassifyASCII disagreed across the AVX2 gate: %v vs %v", withAVX2, withoutAVX2)
	}

	withHighByte := append(append([]int32{}, long...), 0x100)
	hasAVX2 = true
	gotAVX2 := ClassifyASCII(withHighByte)
	hasAVX2 = false
	gotScalar := ClassifyASCII(withHighByte)
	if gotAVX2 || gotScalar {
		t.Fatal("expected a batch with a symbol above 0xFF classified false under either gate")
	}
}
