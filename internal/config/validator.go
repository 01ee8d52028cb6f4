package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // config key, e.g. "batch.parallel"
	Value   any    // offending value
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
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

// ValidOutputFormats returns the accepted output.format values.
func ValidOutputFormats() []string {
	return []string{"text", "json"}
}

// ValidLogLevels returns the accepted logging.level values.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks c and returns every problem found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Engine.MaxIterations < -1 {
		errs = append(errs, ValidationError{
			Field:   "engine.max_iterations",
			Value:   c.Engine.MaxIterations,
			Message: "must be -1 (automatic) or non-negative",
		})
	}
	if c.Engine.MaxAlternatingPasses < 0 {
		errs = append(errs, ValidationError{
			Field:   "engine.max_alternating_passes",
			Value:   c.Engine.MaxAlternatingPasses,
			Message: "must be non-negative",
		})
	}
	if !slices.Contains(ValidOutputFormats(), c.Output.Format) {
		errs = append(errs, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: fmt.Sprintf("must be one of %v", ValidOutputFormats()),
		})
	}
	if c.Batch.Parallel < 1 {
		errs = append(errs, ValidationError{
			Field:   "batch.parallel",
			Value:   c.Batch.Parallel,
			Message: "must be at least 1",
		})
	}
	if c.Server.Addr == "" {
		errs = append(errs, ValidationError{
			Field:   "server.addr",
			Value:   c.Server.Addr,
			Message: "must not be empty",
		})
	}
	if c.Server.ReadTimeoutSeconds < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.read_timeout_seconds",
			Value:   c.Server.ReadTimeoutSeconds,
			Message: "must be non-negative",
		})
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, ValidationError{
			Field:   "server.max_body_bytes",
			Value:   c.Server.MaxBodyBytes,
			Message: "must be positive",
		})
	}
	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of %v", ValidLogLevels()),
		})
	}

	return errs
}
