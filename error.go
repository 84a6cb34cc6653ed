package epsnfa

import "errors"

var (
	// ErrNoPatterns is returned when a Searcher is compiled without patterns.
	ErrNoPatterns = errors.New("epsnfa: no patterns")

	// ErrTooManyPatterns is returned when the pattern count exceeds
	// Config.MaxPatterns.
	ErrTooManyPatterns = errors.New("epsnfa: too many patterns")
)

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "epsnfa: invalid config: " + e.Field + ": " + e.Message
}
