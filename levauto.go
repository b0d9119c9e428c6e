// Package levauto builds fast fuzzy-string matchers: given a query word
// and a maximum edit distance, it compiles a deterministic, minimized
// automaton that accepts every string within that distance (optionally
// counting an adjacent-character transposition as a single edit), and
// wraps it with a cheap Aho-Corasick prefilter so most non-matching
// candidates never reach the automaton walk at all.
//
// Callers normally only need this package: New builds a Matcher, and
// MatchString/MatchSymbols test candidates against it. The lower-level
// automaton, determinize, minimize, runauto, and levenshtein packages are
// exported for callers building their own automaton pipelines.
package levauto

import (
	"unicode/utf16"

	"github.com/levauto/levauto/determinize"
	"github.com/levauto/levauto/levenshtein"
	"github.com/levauto/levauto/literal"
	"github.com/levauto/levauto/minimize"
	"github.com/levauto/levauto/prefilter"
	"github.com/levauto/levauto/runauto"
	"github.com/levauto/levauto/simd"
)

// Symbol is the unit the automaton packages operate on: one UTF-16 code
// unit, not one Unicode code point (surrogate pairs are two symbols, by
// design — see DESIGN.md's Open Question decision).
type Symbol = int32

// Matcher tests candidate strings against a compiled fuzzy-match
// automaton. A Matcher is immutable after New returns and is safe for
// concurrent use.
type Matcher struct {
	compiled   *runauto.CompiledAutomaton
	prefix     []Symbol
	prefilter  *prefilter.Prefilter
	usePrefilt bool
}

// New compiles a Matcher accepting every string within edit distance n of
// word (0 <= n <= levenshtein.MaxSupportedDistance; n = 0 matches the word
// exactly), applying opts on top of DefaultConfig.
func New(word string, n int, opts ...Option) (*Matcher, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewWithConfig(word, n, cfg)
}

// NewWithConfig compiles a Matcher using an explicit Config rather than
// functional options.
func NewWithConfig(word string, n int, cfg Config) (*Matcher, error) {
	if n < 0 || n > levenshtein.MaxSupportedDistance {
		return nil, newError(InvalidInput, "distance %d outside [0, %d]", n, levenshtein.MaxSupportedDistance)
	}

	wordSyms := encodeUTF16(word)
	builder := levenshtein.New(wordSyms, cfg.AlphaMax, cfg.Transpositions)
	var prefixSyms []Symbol
	if cfg.Prefix != "" {
		prefixSyms = encodeUTF16(cfg.Prefix)
		builder = builder.WithPrefix(prefixSyms)
	}

	nfa, err := builder.ToAutomaton(n)
	if err != nil {
		return nil, wrapError(err)
	}
	dfa, err := determinize.Determinize(nfa)
	if err != nil {
		return nil, wrapError(err)
	}
	minimized, err := minimize.Minimize(dfa, cfg.AlphaMax)
	if err != nil {
		return nil, wrapError(err)
	}
	compiled, err := runauto.Compile(minimized, cfg.AlphaMax)
	if err != nil {
		return nil, wrapError(err)
	}

	m := &Matcher{
		compiled: compiled,
		prefix:   literal.CommonPrefix(minimized),
	}

	// A transposition across a chunk boundary spoils two chunks at once,
	// so the pigeonhole partition gives no guarantee with transpositions.
	if cfg.EnablePrefilter && !cfg.Transpositions {
		required := literal.RequiredSubstrings(wordSyms, n, cfg.MinRequiredSubstring, cfg.MaxRequiredSubstrings)
		if encoded, ok := prefilter.EncodeRequired(required); ok {
			pf, err := prefilter.Build(encoded)
			if err != nil {
				return nil, wrapError(err)
			}
			m.prefilter = pf
			m.usePrefilt = true
		}
	}

	return m, nil
}

// MatchString reports whether s is within the configured edit distance of
// the query word. The prefilter, if enabled, is consulted first.
func (m *Matcher) MatchString(s string) bool {
	return m.MatchSymbols(encodeUTF16(s))
}

// MatchSymbols reports whether the UTF-16-code-unit sequence s is within
// the configured edit distance of the query word.
func (m *Matcher) MatchSymbols(s []Symbol) bool {
	if m.usePrefilt {
		if !m.prefilter.MayMatch(symbolsToFilterBytes(s)) {
			return false
		}
	}
	return m.compiled.Matches(s)
}

// CommonPrefix returns the longest symbol sequence every accepted string
// must start with, useful for pruning a sorted index before testing
// individual candidates with MatchString/MatchSymbols.
func (m *Matcher) CommonPrefix() []Symbol {
	out := make([]Symbol, len(m.prefix))
	copy(out, m.prefix)
	return out
}

// encodeUTF16 converts s into its UTF-16 code units, matching the
// automaton's native symbol model: no surrogate-pair coalescing into a
// single code point. For the common pure-ASCII case, s's raw bytes are
// already identical to both its UTF-16 code units and its rune values,
// so simd.ClassifyASCII lets this skip the []rune/utf16.Encode round
// trip entirely; any string containing a multi-byte UTF-8 sequence fails
// that check (continuation and lead bytes are always >= 0x80) and falls
// back to the general decode.
func encodeUTF16(s string) []Symbol {
	raw := make([]Symbol, len(s))
	for i := 0; i < len(s); i++ {
		raw[i] = Symbol(s[i])
	}
	if simd.ClassifyASCII(raw) {
		return raw
	}

	units := utf16.Encode([]rune(s))
	out := make([]Symbol, len(units))
	for i, u := range units {
		out[i] = Symbol(u)
	}
	return out
}

// symbolsToFilterBytes encodes symbols for the prefilter scan. Unlike
// prefilter.EncodeRequired, which refuses symbols above 0xFF, it maps
// out-of-range symbols to 0xFF; a collision with a required 0xFF byte can
// only turn a rejection into a "maybe", never the reverse, since the
// prefilter is only ever built when every required substring is itself in
// [0, 0xFF]. simd.ClassifyASCII
// lets an all-ASCII candidate, the common case, skip the per-symbol range
// check and go straight to the byte cast.
func symbolsToFilterBytes(s []Symbol) []byte {
	out := make([]byte, len(s))
	if simd.ClassifyASCII(s) {
		for i, sym := range s {
			out[i] = byte(sym)
		}
		return out
	}
	for i, sym := range s {
		if sym < 0 || sym > 0xFF {
			out[i] = 0xFF
		} else {
			out[i] = byte(sym)
		}
	}
	return out
}
