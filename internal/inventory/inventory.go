package inventory

import (
	"bytes"
	"encoding/json"
	"slices"

	"gopkg.in/yaml.v3"
)

// Inventory maps relative subfolder paths to their single-level listings.
// Keys are unique and kept in ascending order. An Inventory is never mutated
// after Build returns; accessors hand out copies.
type Inventory struct {
	keys    []string
	entries map[string][]string
}

func newInventory(entries map[string][]string) *Inventory {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return &Inventory{keys: keys, entries: entries}
}

// Len returns the number of subfolders.
func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.keys)
}

// Keys returns the subfolder paths in ascending order.
func (inv *Inventory) Keys() []string {
	if inv == nil {
		return nil
	}
	return slices.Clone(inv.keys)
}

// Entries returns the listing for key and whether the key exists.
func (inv *Inventory) Entries(key string) ([]string, bool) {
	if inv == nil {
		return nil, false
	}
	e, ok := inv.entries[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(e), true
}

// Each calls fn for every subfolder in key order. It stops early when fn returns false.
func (inv *Inventory) Each(fn func(key string, entries []string) bool) {
	if inv == nil {
		return
	}
	for _, k := range inv.keys {
		if !fn(k, slices.Clone(inv.entries[k])) {
			return
		}
	}
}

// Map returns a copy of the inventory as a plain map. Templates ranging over a
// map get sorted keys, which keeps rendered output in inventory order.
func (inv *Inventory) Map() map[string][]string {
	out := make(map[string][]string, inv.Len())
	inv.Each(func(k string, e []string) bool {
		out[k] = e
		return true
	})
	return out
}

// EntryCount returns the total number of listed entries across all subfolders.
func (inv *Inventory) EntryCount() int {
	n := 0
	inv.Each(func(_ string, e []string) bool {
		n += len(e)
		return true
	})
	return n
}

// MarshalJSON emits an object whose keys appear in inventory order.
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range inv.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(inv.entries[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits a mapping node whose keys appear in inventory order.
func (inv *Inventory) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range inv.Keys() {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, name := range inv.entries[k] {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			seq,
		)
	}
	return node, nil
}
