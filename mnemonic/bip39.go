package mnemonic

import (
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// Entropy bit-lengths supported for mnemonic generation, indexed by word count.
const (
	WordCount12 = 128
	WordCount15 = 160
	WordCount18 = 192
	WordCount21 = 224
	WordCount24 = 256
)

// ErrInvalidMnemonic indicates a mnemonic phrase failed checksum validation.
var ErrInvalidMnemonic = errors.New("mnemonic: invalid phrase or checksum")

// Mnemonic is a validated BIP-39 mnemonic phrase.
type Mnemonic struct {
	phrase string
}

// Generate creates a new random mnemonic with the given entropy size in bits.
// Use one of the WordCountN constants; 128 bits yields a 12-word phrase.
func Generate(entropyBits int) (*Mnemonic, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, fmt.Errorf("mnemonic: generate entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("mnemonic: generate phrase: %w", err)
	}
	return &Mnemonic{phrase: phrase}, nil
}

// Parse validates an existing mnemonic phrase against the BIP-39 English
// wordlist and checksum.
func Parse(phrase string) (*Mnemonic, error) {
	if !bip39.IsMnemonicValid(phrase) {
		return nil, ErrInvalidMnemonic
	}
	return &Mnemonic{phrase: phrase}, nil
}

// String returns the space-separated phrase.
func (m *Mnemonic) String() string {
	return m.phrase
}

// Seed derives the 64-byte BIP-39 seed from the mnemonic and an optional
// passphrase, via PBKDF2-HMAC-SHA512 with 2048 iterations over
// "mnemonic"+passphrase as salt.
func (m *Mnemonic) Seed(passphrase string) []byte {
	return bip39.NewSeed(m.phrase, passphrase)
}
