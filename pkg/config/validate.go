package config

import (
	"fmt"
	"strings"
)

// FieldError is a validation error for one configuration field.
type FieldError struct {
	// Field is the dotted path, e.g. "limits.max_key_length".
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found by Validate.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate returns a ValidationError listing every invalid field, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateLog(&cfg.Log)...)
	errs = append(errs, validateLimits(&cfg.Limits)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateLog(l *LogConfig) []FieldError {
	var errs []FieldError
	if !contains(validLogLevels, l.Level) {
		errs = append(errs, FieldError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(validLogLevels, ", "), l.Level),
		})
	}
	if !contains(validLogFormats, l.Format) {
		errs = append(errs, FieldError{
			Field:   "log.format",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(validLogFormats, ", "), l.Format),
		})
	}
	return errs
}

func validateLimits(l *LimitsConfig) []FieldError {
	fields := []struct {
		name  string
		value int
	}{
		{"max_input_length", l.MaxInputLength},
		{"max_string_length", l.MaxStringLength},
		{"max_byte_sequence_length", l.MaxByteSequenceLength},
		{"max_display_string_length", l.MaxDisplayStringLength},
		{"max_list_members", l.MaxListMembers},
		{"max_dictionary_members", l.MaxDictionaryMembers},
		{"max_inner_list_members", l.MaxInnerListMembers},
		{"max_parameters", l.MaxParameters},
		{"max_token_length", l.MaxTokenLength},
		{"max_key_length", l.MaxKeyLength},
	}

	var errs []FieldError
	for _, f := range fields {
		if f.value < Unlimited {
			errs = append(errs, FieldError{
				Field:   "limits." + f.name,
				Message: fmt.Sprintf("must be positive or %d for no limit, got %d", Unlimited, f.value),
			})
		}
	}
	return errs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
