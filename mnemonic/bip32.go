package mnemonic

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"fmt"

	"github.com/movecraft-labs/aptos-sdk/internal/crypto"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// secp256k1SeedKey is the HMAC key used to derive the BIP-32 master node.
var secp256k1SeedKey = []byte("Bitcoin seed")

// ErrInvalidChildKey indicates a derived child key was the identity element
// (probability effectively zero); BIP-32 specifies skipping to the next index.
var ErrInvalidChildKey = errors.New("mnemonic: derived child key is invalid, retry with next index")

// secp256k1Node is an intermediate BIP-32 extended key.
type secp256k1Node struct {
	key       secp256k1.ModNScalar
	chainCode [32]byte
}

// DeriveSecp256k1 derives a Secp256k1 private key from a BIP-39 seed
// following BIP-32, using the given derivation path. Both hardened
// (index') and non-hardened components are supported.
func DeriveSecp256k1(seed []byte, path string) (*crypto.Secp256k1PrivateKey, error) {
	components, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	node, err := masterSecp256k1Node(seed)
	if err != nil {
		return nil, err
	}
	for _, component := range components {
		node, err = node.deriveChild(component)
		if err != nil {
			return nil, err
		}
	}

	keyBytes := node.key.Bytes()
	priv := &crypto.Secp256k1PrivateKey{Inner: secp256k1.PrivKeyFromBytes(keyBytes[:])}
	return priv, nil
}

func masterSecp256k1Node(seed []byte) (secp256k1Node, error) {
	mac := hmac.New(sha512.New, secp256k1SeedKey)
	mac.Write(seed)
	sum := mac.Sum(nil)
	return newSecp256k1Node(sum)
}

func newSecp256k1Node(sum []byte) (secp256k1Node, error) {
	var node secp256k1Node
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(sum[:32]); overflow {
		return secp256k1Node{}, ErrInvalidChildKey
	}
	if scalar.IsZero() {
		return secp256k1Node{}, ErrInvalidChildKey
	}
	node.key = scalar
	copy(node.chainCode[:], sum[32:])
	return node, nil
}

// deriveChild computes the child node at the given index. Hardened indices
// (carrying the offset applied by ParsePath) use the private key in the
// HMAC data per BIP-32; non-hardened indices use the compressed public key.
func (n secp256k1Node) deriveChild(index uint32) (secp256k1Node, error) {
	var buf bytes.Buffer
	if IsHardened(index) {
		buf.WriteByte(0x00)
		keyBytes := n.key.Bytes()
		buf.Write(keyBytes[:])
	} else {
		pub := secp256k1.NewPrivateKey(&n.key).PubKey()
		buf.Write(pub.SerializeCompressed())
	}
	buf.WriteByte(byte(index >> 24))
	buf.WriteByte(byte(index >> 16))
	buf.WriteByte(byte(index >> 8))
	buf.WriteByte(byte(index))

	mac := hmac.New(sha512.New, n.chainCode[:])
	mac.Write(buf.Bytes())
	sum := mac.Sum(nil)

	var il secp256k1.ModNScalar
	if overflow := il.SetByteSlice(sum[:32]); overflow {
		return secp256k1Node{}, fmt.Errorf("%w: index %d", ErrInvalidChildKey, index)
	}

	var childKey secp256k1.ModNScalar
	childKey.Add2(&il, &n.key)
	if childKey.IsZero() {
		return secp256k1Node{}, fmt.Errorf("%w: index %d", ErrInvalidChildKey, index)
	}

	var child secp256k1Node
	child.key = childKey
	copy(child.chainCode[:], sum[32:])
	return child, nil
}
