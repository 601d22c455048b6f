package errors

import "maps"

// ErrorCategory selects the exit code and the wording the CLI uses.
type ErrorCategory string

const (
	// Problems the user fixes in the configuration file or on the command line.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryPlugin     ErrorCategory = "plugin"

	// Problems with the content tree or the output directory.
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInventory  ErrorCategory = "inventory"
	CategorySettings   ErrorCategory = "settings"

	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity tells whether the run can go on after the error.
type ErrorSeverity string

const (
	SeverityFatal ErrorSeverity = "fatal" // aborts the generation run
	SeverityError ErrorSeverity = "error" // fails one operation
)

// RetryStrategy tells whether running the same command again could succeed.
type RetryStrategy string

const (
	RetryNever      RetryStrategy = "never"
	RetryUserAction RetryStrategy = "user" // after the user fixes config or permissions
)

// ErrorContext carries structured fields such as the offending path.
type ErrorContext map[string]any

// with returns a copy of c holding key.
func (c ErrorContext) with(key string, value any) ErrorContext {
	out := maps.Clone(c)
	if out == nil {
		out = make(ErrorContext, 1)
	}
	out[key] = value
	return out
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}
