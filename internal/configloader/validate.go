package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/blockmark/pkg/config"
	"github.com/yaklabco/blockmark/pkg/runner"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.extension").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: text, json", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if ext := cfg.Output.Extension; ext != "" {
		if err := checkExtension(ext); err != "" {
			result.addError("output.extension", ext, "%s", err)
		} else if slices.ContainsFunc(cfg.Extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
			result.addWarning("output.extension", ext,
				"%q is also a source extension; files with it cannot be rendered in place", ext)
		}
	}

	if cfg.Extensions != nil && len(cfg.Extensions) == 0 {
		result.addWarning("extensions", cfg.Extensions, "no source extensions; directories will yield no files")
	}
	for i, ext := range cfg.Extensions {
		if err := checkExtension(ext); err != "" {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext, "%s", err)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := runner.CompileGlobs([]string{pattern}); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

// checkExtension returns a message describing what is wrong with ext, or an
// empty string.
func checkExtension(ext string) string {
	switch {
	case !strings.HasPrefix(ext, "."):
		return fmt.Sprintf("extension %q must start with a dot", ext)
	case len(ext) == 1:
		return "extension must not be empty"
	case strings.ContainsAny(ext, `/\`):
		return fmt.Sprintf("extension %q must not contain path separators", ext)
	default:
		return ""
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
