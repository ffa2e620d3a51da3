package mnemonic

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"fmt"

	"github.com/movecraft-labs/aptos-sdk/internal/crypto"
)

// ed25519SeedKey is the HMAC key used to derive the SLIP-0010 master node
// for the Ed25519 curve, per the SLIP-0010 specification.
var ed25519SeedKey = []byte("ed25519 seed")

// ErrNonHardenedEd25519 indicates a non-hardened path component was used with
// the Ed25519 curve. SLIP-0010 only defines hardened derivation for Ed25519
// because the curve has no public child-key derivation.
var ErrNonHardenedEd25519 = errors.New("mnemonic: ed25519 derivation requires all path components to be hardened")

// ed25519Node is an intermediate SLIP-0010 extended key: a 32-byte private
// key and its 32-byte chain code.
type ed25519Node struct {
	key       [32]byte
	chainCode [32]byte
}

// DeriveEd25519 derives an Ed25519 private key from a BIP-39 seed following
// SLIP-0010, using the given hardened-only derivation path
// (e.g. "m/44'/637'/0'/0'/0'" for Aptos accounts).
func DeriveEd25519(seed []byte, path string) (*crypto.Ed25519PrivateKey, error) {
	components, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	node := masterEd25519Node(seed)
	for _, component := range components {
		if !IsHardened(component) {
			return nil, ErrNonHardenedEd25519
		}
		node, err = node.deriveChild(component)
		if err != nil {
			return nil, err
		}
	}

	priv, err := crypto.NewEd25519PrivateKeyFromSeed(node.key[:])
	if err != nil {
		return nil, fmt.Errorf("mnemonic: build ed25519 key: %w", err)
	}
	return priv, nil
}

func masterEd25519Node(seed []byte) ed25519Node {
	mac := hmac.New(sha512.New, ed25519SeedKey)
	mac.Write(seed)
	sum := mac.Sum(nil)

	var node ed25519Node
	copy(node.key[:], sum[:32])
	copy(node.chainCode[:], sum[32:])
	return node
}

// deriveChild computes the hardened child at the given index (already
// carrying the hardened offset). Non-hardened derivation is undefined for
// Ed25519 under SLIP-0010 and is rejected by the caller before this runs.
func (n ed25519Node) deriveChild(index uint32) (ed25519Node, error) {
	var buf bytes.Buffer
	buf.WriteByte(0x00)
	buf.Write(n.key[:])
	buf.WriteByte(byte(index >> 24))
	buf.WriteByte(byte(index >> 16))
	buf.WriteByte(byte(index >> 8))
	buf.WriteByte(byte(index))

	mac := hmac.New(sha512.New, n.chainCode[:])
	mac.Write(buf.Bytes())
	sum := mac.Sum(nil)

	var child ed25519Node
	copy(child.key[:], sum[:32])
	copy(child.chainCode[:], sum[32:])
	return child, nil
}
