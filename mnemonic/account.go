package mnemonic

import (
	"fmt"

	"github.com/movecraft-labs/aptos-sdk/account"
	"github.com/movecraft-labs/aptos-sdk/internal/crypto"
)

// AptosEd25519Path is the standard Aptos coin-type derivation path template
// (SLIP-44 coin type 637), with the account index substituted in.
const AptosEd25519Path = "m/44'/637'/%d'/0'/0'"

// DeriveAccount derives an Ed25519 Aptos account from a mnemonic phrase using
// the standard Aptos derivation path for the given account index.
func DeriveAccount(m *Mnemonic, passphrase string, accountIndex uint32) (*account.Account, error) {
	path := fmt.Sprintf(AptosEd25519Path, accountIndex)
	return DeriveAccountAtPath(m, passphrase, path)
}

// DeriveAccountAtPath derives an Ed25519 Aptos account from a mnemonic
// phrase at an explicit SLIP-0010 derivation path.
func DeriveAccountAtPath(m *Mnemonic, passphrase string, path string) (*account.Account, error) {
	seed := m.Seed(passphrase)
	key, err := DeriveEd25519(seed, path)
	if err != nil {
		return nil, fmt.Errorf("mnemonic: derive account: %w", err)
	}
	return account.FromSigner(key)
}

// DeriveSecp256k1Account derives a Secp256k1 Aptos account (SingleKeyScheme)
// from a mnemonic phrase at the given BIP-32 derivation path.
func DeriveSecp256k1Account(m *Mnemonic, passphrase string, path string) (*account.Account, error) {
	seed := m.Seed(passphrase)
	key, err := DeriveSecp256k1(seed, path)
	if err != nil {
		return nil, fmt.Errorf("mnemonic: derive account: %w", err)
	}
	signer := crypto.NewSingleSigner(key)
	return account.FromSigner(signer)
}
