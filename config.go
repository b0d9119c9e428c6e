package levauto

// Config controls how New builds a Matcher: the alphabet width the
// automaton is built over, whether adjacent-transposition counts as one
// edit, an optional exact-match prefix, and whether the Aho-Corasick
// prefilter is built at all.
//
// Example:
//
//	cfg := levauto.DefaultConfig()
//	cfg.Transpositions = true
//	m, err := levauto.NewWithConfig("kitten", 2, cfg)
type Config struct {
	// AlphaMax is the largest symbol value the built automaton can
	// transition on (inclusive). Default: 0xFFFF, one 16-bit code unit.
	AlphaMax int32

	// Transpositions enables Damerau-style matching: swapping two
	// adjacent symbols counts as a single edit instead of two.
	// Default: false.
	Transpositions bool

	// Prefix is matched exactly before fuzzy matching begins on the
	// query word; edits are never permitted inside it. Default: none.
	Prefix string

	// EnablePrefilter builds the Aho-Corasick required-substring
	// prefilter ahead of the compiled automaton walk. It has no effect
	// when Transpositions is set: no prefilter is built then. Default: true.
	EnablePrefilter bool

	// MinRequiredSubstring is the shortest chunk literal.RequiredSubstrings
	// will accept in its n+1 pigeonhole partition. If any chunk in the
	// partition would fall short of this, the prefilter is skipped for
	// that query entirely rather than built over an incomplete partition
	// (which would make it reject genuine matches). Default: 2.
	MinRequiredSubstring int

	// MaxRequiredSubstrings is the most chunks the n+1 pigeonhole
	// partition is allowed to have. If the partition needs more than
	// this, the prefilter is skipped for that query entirely, since
	// dropping any chunk to fit under the cap would break soundness.
	// Default: 4.
	MaxRequiredSubstrings int
}

// DefaultConfig returns the configuration New uses absent any Option.
func DefaultConfig() Config {
	return Config{
		AlphaMax:              0xFFFF,
		Transpositions:        false,
		EnablePrefilter:       true,
		MinRequiredSubstring:  2,
		MaxRequiredSubstrings: 4,
	}
}

// Option configures a Matcher at construction time.
type Option func(*Config)

// WithTranspositions enables Damerau-style adjacent-transposition edits.
func WithTranspositions() Option {
	return func(c *Config) { c.Transpositions = true }
}

// WithPrefix requires prefix to match exactly before fuzzy matching
// begins on the query word.
func WithPrefix(prefix string) Option {
	return func(c *Config) { c.Prefix = prefix }
}

// WithAlphaMax overrides the default 16-bit-code-unit alphabet ceiling.
func WithAlphaMax(alphaMax int) Option {
	return func(c *Config) { c.AlphaMax = int32(alphaMax) }
}

// WithPrefilter enables or disables the Aho-Corasick prefilter.
func WithPrefilter(enabled bool) Option {
	return func(c *Config) { c.EnablePrefilter = enabled }
}
