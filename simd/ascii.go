// Package simd provides CPU-feature-gated fast classification of symbol
// batches. Unlike the regex engine this package is modeled on, no hand
// written assembly is included here: Go symbols are already decoded into
// []int32 by the time they reach this package, and an AVX2 kernel would
// need to operate over 4-byte lanes with gather/compare sequences that
// don't pay for themselves at the batch sizes a query word or a streamed
// document chunk produces. Instead the AVX2 probe gates a pure-Go SWAR
// (SIMD-within-a-register) fast path: on CPUs without AVX2 the batching
// overhead isn't worth it even as plain Go, so ClassifyASCII falls back
// to a scalar loop.
package simd

import "golang.org/x/sys/cpu"

// hasAVX2 reports whether the running CPU supports AVX2, read once at
// package initialization.
var hasAVX2 = cpu.X86.HasAVX2

// HasAVX2 reports whether the running CPU supports AVX2 instructions.
func HasAVX2() bool { return hasAVX2 }

const asciiMax = int32(0x7F)

// ClassifyASCII reports whether every symbol in the batch is < 0x80. It
// packs symbols eight at a time into a uint64 and tests all eight with a
// single comparison, falling back to a scalar loop for batches too short
// to amortize the packing overhead, or when the running CPU lacks AVX2:
// without wide vector registers the byte-packing loop itself costs more
// than the branches it replaces, so it's only worth taking on hardware
// that could, in principle, run a vectorized classifier.
func ClassifyASCII(symbols []int32) bool {
	n := len(symbols)
	if n < 8 || !hasAVX2 {
		for _, s := range symbols {
			if s < 0 || s > asciiMax {
				return false
			}
		}
		return true
	}

	const hi8 = uint64(0x8080808080808080)
	i := 0
	for ; i+8 <= n; i += 8 {
		var packed uint64
		for j := 0; j < 8; j++ {
			s := symbols[i+j]
			if s < 0 || s > 0xFF {
				return false
			}
			packed |= uint64(byte(s)) << (8 * uint(j))
		}
		if packed&hi8 != 0 {
			return false
		}
	}
	for ; i < n; i++ {
		if symbols[i] < 0 || symbols[i] > asciiMax {
			return false
		}
	}
	return true
}
