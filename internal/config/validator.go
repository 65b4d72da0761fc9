package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate checks the configuration and returns every problem found, or nil.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Bench.Producers < 1 {
		errs = append(errs, ValidationError{"bench.producers", c.Bench.Producers, "must be at least 1"})
	}
	if c.Bench.Items < 1 {
		errs = append(errs, ValidationError{"bench.items", c.Bench.Items, "must be at least 1"})
	}
	if c.Bench.Readers < 0 {
		errs = append(errs, ValidationError{"bench.readers", c.Bench.Readers, "must not be negative"})
	}
	if c.Bench.Rounds < 1 {
		errs = append(errs, ValidationError{"bench.rounds", c.Bench.Rounds, "must be at least 1"})
	}
	if len(c.Bench.Impls) == 0 {
		errs = append(errs, ValidationError{"bench.impls", c.Bench.Impls, "must name at least one implementation"})
	}
	for _, impl := range c.Bench.Impls {
		if !slices.Contains(Implementations, impl) {
			errs = append(errs, ValidationError{"bench.impls", impl, "unknown implementation, valid: " + strings.Join(Implementations, ", ")})
		}
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level, "must be one of debug, info, warn, error"})
	}
	if !slices.Contains([]string{"text", "json"}, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, ValidationError{"logging.format", c.Logging.Format, "must be text or json"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
