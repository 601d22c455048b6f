// Package normalization turns loosely written config strings into typed enum values.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer provides type-safe string-to-enum normalization with error handling.
type Normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
	validKeys    []string // Cached for error messages
}

// NewNormalizer creates a normalizer for the named setting. Keys are matched
// case-insensitively after trimming; '-' and '_' are interchangeable.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:         name,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize converts raw to the enum type, returning the default for empty or
// unrecognized input.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, ok := n.validValues[clean(raw)]; ok {
		return value
	}
	return n.defaultValue
}

// NormalizeWithError converts raw to the enum type. Empty input yields the
// default; anything else unrecognized is an error.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	cleaned := clean(raw)
	if cleaned == "" {
		return n.defaultValue, nil
	}
	if value, ok := n.validValues[cleaned]; ok {
		return value, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %v", n.name, raw, n.validKeys)
}

// Result is the outcome of NormalizeWithWarning.
type Result[T comparable] struct {
	Value   T
	Changed bool
	// Unknown is set when raw matched no valid key and Value is the default.
	Unknown bool
	Warning string
}

// NormalizeWithWarning normalizes raw and explains any rewrite, including a
// fallback to the default for unknown values.
func (n *Normalizer[T]) NormalizeWithWarning(raw string) Result[T] {
	cleaned := clean(raw)
	value, ok := n.validValues[cleaned]
	switch {
	case cleaned == "":
		return Result[T]{Value: n.defaultValue}
	case !ok:
		return Result[T]{
			Value:   n.defaultValue,
			Changed: true,
			Unknown: true,
			Warning: fmt.Sprintf("unknown %s %q, using %v", n.name, raw, n.defaultValue),
		}
	case cleaned != raw:
		return Result[T]{
			Value:   value,
			Changed: true,
			Warning: fmt.Sprintf("normalized %s from %q to %q", n.name, raw, cleaned),
		}
	default:
		return Result[T]{Value: value}
	}
}

// ValidKeys returns all valid normalized keys.
func (n *Normalizer[T]) ValidKeys() []string {
	result := make([]string, len(n.validKeys))
	copy(result, n.validKeys)
	return result
}

func clean(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}
