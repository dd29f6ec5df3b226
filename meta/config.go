package meta

// Config controls dispatcher behavior: prefilter enablement and limits,
// plus the recursion and step bounds passed through to the parser, NFA
// compiler, and bounded backtracker.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // force full NFA scan, no literal skip
//	engine, err := meta.CompileWithConfig(pattern, flags, config)
type Config struct {
	// EnablePrefilter enables literal-based prefiltering. When false, no
	// prefilter is built even if literals are available.
	EnablePrefilter bool

	// MaxLiterals limits the number of literals extracted for
	// prefiltering; alternations with more branches than this extract no
	// usable literal set.
	MaxLiterals int

	// MinLiteralLen is the minimum literal length eligible for
	// prefiltering; shorter literals have too high a false-positive rate
	// to be worth scanning for.
	MinLiteralLen int

	// MaxRecursionDepth bounds parser and NFA-compiler recursion, guarding
	// against stack exhaustion on deeply nested patterns.
	MaxRecursionDepth int

	// StepBudget bounds the bounded backtracker's recursive step count per
	// candidate start position. Zero disables the check.
	StepBudget int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:   true,
		MaxLiterals:       64,
		MinLiteralLen:     1,
		MaxRecursionDepth: 1000,
		StepBudget:        1_000_000,
	}
}

// Validate checks the configuration's numeric fields are within usable
// ranges.
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{Field: "MinLiteralLen", Message: "must be between 1 and 64"}
		}
		if c.MaxLiterals < 1 || c.MaxLiterals > 1000 {
			return &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 1,000"}
		}
	}
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 10_000 {
		return &ConfigError{Field: "MaxRecursionDepth", Message: "must be between 10 and 10,000"}
	}
	if c.StepBudget < 0 {
		return &ConfigError{Field: "StepBudget", Message: "must be >= 0"}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "meta: invalid config: " + e.Field + ": " + e.Message
}
