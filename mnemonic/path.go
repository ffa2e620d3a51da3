package mnemonic

import (
	"fmt"
	"strconv"
	"strings"
)

// hardenedOffset is added to a path component to mark it as hardened (BIP-32/SLIP-0010).
const hardenedOffset = uint32(0x80000000)

// DerivationPath is a parsed BIP-32 style path such as m/44'/637'/0'/0'/0'.
// Each element is the raw index with the hardened offset already applied
// when the component carried a trailing apostrophe.
type DerivationPath []uint32

// ParsePath parses a derivation path string of the form m/44'/637'/0'/0'/0'.
// A trailing "'" or "h" marks a component as hardened.
func ParsePath(path string) (DerivationPath, error) {
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("mnemonic: path must start with \"m\": %q", path)
	}

	out := make(DerivationPath, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := false
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") || strings.HasSuffix(part, "H") {
			hardened = true
			part = part[:len(part)-1]
		}
		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("mnemonic: invalid path component %q: %w", part, err)
		}
		if index >= uint64(hardenedOffset) {
			return nil, fmt.Errorf("mnemonic: path component %d out of range", index)
		}
		if hardened {
			out = append(out, uint32(index)+hardenedOffset)
		} else {
			out = append(out, uint32(index))
		}
	}
	return out, nil
}

// IsHardened returns true if a raw path component carries the hardened bit.
func IsHardened(component uint32) bool {
	return component >= hardenedOffset
}
