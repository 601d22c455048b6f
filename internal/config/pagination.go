package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Pagination is the default page size. Zero disables pagination; the YAML
// value false is accepted as zero.
type Pagination int

// Enabled reports whether pagination is on.
func (p Pagination) Enabled() bool { return p > 0 }

// UnmarshalYAML accepts false or a non-negative integer.
func (p *Pagination) UnmarshalYAML(node *yaml.Node) error {
	var b bool
	if node.ShortTag() == "!!bool" {
		if err := node.Decode(&b); err != nil {
			return err
		}
		if b {
			return fmt.Errorf("line %d: default_pagination must be false or a page size", node.Line)
		}
		*p = 0
		return nil
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("line %d: default_pagination must be false or a page size: %w", node.Line, err)
	}
	if n < 0 {
		return fmt.Errorf("line %d: default_pagination cannot be negative", node.Line)
	}
	*p = Pagination(n)
	return nil
}

// MarshalYAML writes false for disabled pagination.
func (p Pagination) MarshalYAML() (any, error) {
	if !p.Enabled() {
		return false, nil
	}
	return int(p), nil
}

// MarshalJSON writes false for disabled pagination.
func (p Pagination) MarshalJSON() ([]byte, error) {
	if !p.Enabled() {
		return []byte("false"), nil
	}
	return json.Marshal(int(p))
}
