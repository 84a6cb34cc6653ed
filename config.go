package epsnfa

import "fmt"

// Strategy selects how the per-pattern automata are combined.
type Strategy int

const (
	// StrategyEager materializes the union into one self-contained
	// automaton at compile time.
	StrategyEager Strategy = iota

	// StrategyLazy keeps the per-pattern automata and searches through a
	// union view that copies nothing.
	StrategyLazy
)

// String returns "eager" or "lazy".
func (s Strategy) String() string {
	switch s {
	case StrategyEager:
		return "eager"
	case StrategyLazy:
		return "lazy"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "eager" and "lazy" to their Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "eager":
		return StrategyEager, nil
	case "lazy":
		return StrategyLazy, nil
	}
	return 0, &ConfigError{
		Field:   "Strategy",
		Message: fmt.Sprintf("unknown strategy %q (want eager or lazy)", name),
	}
}

// Config controls how a Searcher is built.
//
// Example:
//
//	config := epsnfa.DefaultConfig()
//	config.Strategy = epsnfa.StrategyLazy
//	s, err := epsnfa.CompileWithConfig(config, "he", "she", "his")
type Config struct {
	// Strategy selects eager or lazy union of the pattern automata.
	// Default: StrategyEager
	Strategy Strategy

	// EnablePrefilter lets Search skip text in which no pattern occurs.
	// It is ignored when a pattern is empty.
	// Default: true
	EnablePrefilter bool

	// MaxPatterns bounds the number of patterns a Searcher accepts.
	// Default: 10,000
	MaxPatterns int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Strategy:        StrategyEager,
		EnablePrefilter: true,
		MaxPatterns:     10_000,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Strategy != StrategyEager && c.Strategy != StrategyLazy {
		return &ConfigError{
			Field:   "Strategy",
			Message: "must be StrategyEager or StrategyLazy",
		}
	}
	if c.MaxPatterns < 1 || c.MaxPatterns > 1_000_000 {
		return &ConfigError{
			Field:   "MaxPatterns",
			Message: "must be between 1 and 1,000,000",
		}
	}
	return nil
}
