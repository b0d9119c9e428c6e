// Package prefilter rejects obvious non-matches before the expensive
// compiled-automaton walk, using an Aho-Corasick scan over a small set of
// substrings any match must contain.
package prefilter

import "github.com/coregx/ahocorasick"

// Prefilter cheaply answers "could candidate possibly be within the edit
// budget", never "is candidate a match" — a true result must still be
// confirmed by the real automaton.
type Prefilter struct {
	auto *ahocorasick.Automaton
}

// Build constructs a Prefilter requiring at least one of required's
// substrings to occur in any candidate that could match. required is the
// output of literal.RequiredSubstrings, already byte-encoded (symbols
// above 0xFF have no representation here; the caller is responsible for
// leaving the required set empty rather than passing one of those).
//
// An empty required set builds a Prefilter whose MayMatch always returns
// true: no substring is required, so nothing can be ruled out.
func Build(required [][]byte) (*Prefilter, error) {
	if len(required) == 0 {
		return &Prefilter{}, nil
	}
	builder := ahocorasick.NewBuilder()
	for _, r := range required {
		builder.AddPattern(r)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Prefilter{auto: auto}, nil
}

// EncodeRequired byte-encodes a set of required symbol sequences for
// Build. It returns ok=false if any symbol falls outside [0, 0xFF]: wider
// alphabets have no single-byte encoding here, and the caller should skip
// building a Prefilter entirely rather than construct one over a lossy
// encoding (Aho-Corasick here is a pure accelerator, never a correctness
// requirement, so skipping it is always safe).
func EncodeRequired(chunks [][]int32) (encoded [][]byte, ok bool) {
	encoded = make([][]byte, len(chunks))
	for i, c := range chunks {
		b := make([]byte, len(c))
		for j, sym := range c {
			if sym < 0 || sym > 0xFF {
				return nil, false
			}
			b[j] = byte(sym)
		}
		encoded[i] = b
	}
	return encoded, true
}

// MayMatch reports whether candidate might be within the edit budget.
// false is certain: no required substring occurs in candidate, so no
// match is possible. true is a "maybe" and must be followed by the real
// automaton walk.
func (p *Prefilter) MayMatch(candidate []byte) bool {
	if p.auto == nil {
		return true
	}
	return p.auto.IsMatch(candidate)
}
