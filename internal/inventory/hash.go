package inventory

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns a stable hex digest of keys and listings. Two inventories
// built from the same tree always share a digest.
func (inv *Inventory) Digest() string {
	h := sha256.New()
	inv.Each(func(k string, entries []string) bool {
		h.Write([]byte(k))
		h.Write([]byte{0})
		for _, e := range entries {
			h.Write([]byte(e))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
		return true
	})
	return hex.EncodeToString(h.Sum(nil))
}
