package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	err := NewError(CategoryConfig, "invalid configuration").
		Fatal().
		WithContext("file", "siteconf.yaml").
		Build()

	assert.Equal(t, CategoryConfig, err.Category())
	assert.Equal(t, SeverityFatal, err.Severity())
	assert.Equal(t, RetryNever, err.RetryStrategy())
	assert.Equal(t, "invalid configuration", err.Message())
	file, ok := err.Context().GetString("file")
	require.True(t, ok)
	assert.Equal(t, "siteconf.yaml", file)
}

func TestBuilder_ReuseDoesNotShareContext(t *testing.T) {
	b := NewError(CategoryInventory, "walk failed")
	first := b.WithContext("path", "a").Build()
	second := b.WithContext("path", "b").Build()

	p, _ := first.Context().GetString("path")
	assert.Equal(t, "a", p)
	p, _ = second.Context().GetString("path")
	assert.Equal(t, "b", p)
}

func TestClassifiedError_Wrapping(t *testing.T) {
	inner := NewError(CategoryFileSystem, "content root missing").Fatal().WithContext("path", "content").Build()
	wrapped := fmt.Errorf("assemble: %w", inner)

	c, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.True(t, c.IsFatal())
	assert.True(t, HasCategory(wrapped, CategoryFileSystem))
	assert.False(t, HasCategory(wrapped, CategoryConfig))
	assert.Equal(t, CategoryFileSystem, GetCategory(wrapped))
	assert.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	assert.False(t, HasCategory(errors.New("plain"), CategoryInternal))
}

func TestClassifiedError_MessageIncludesPathAndCause(t *testing.T) {
	err := WrapError(fs.ErrNotExist, CategoryFileSystem, "cannot read directory").
		WithContext("path", "content/pages").
		Build()

	assert.Equal(t, "[filesystem:error] cannot read directory (content/pages): file does not exist", err.Error())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestClassifiedError_WithContextDoesNotMutate(t *testing.T) {
	base := ConfigError("bad").Build()
	derived := base.WithContext("field", "site.timezone")

	_, ok := base.Context().Get("field")
	assert.False(t, ok)
	v, _ := derived.Context().GetString("field")
	assert.Equal(t, "site.timezone", v)
	assert.Equal(t, []string{"field"}, derived.ContextKeys())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
		retry    RetryStrategy
	}{
		{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal, RetryUserAction},
		{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal, RetryUserAction},
		{"PluginError", PluginError("test"), CategoryPlugin, SeverityFatal, RetryUserAction},
		{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal, RetryNever},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			assert.Equal(t, tt.category, err.Category())
			assert.Equal(t, tt.severity, err.Severity())
			assert.Equal(t, tt.retry, err.RetryStrategy())
			assert.Equal(t, tt.retry == RetryUserAction, err.NeedsUser())
		})
	}
}
