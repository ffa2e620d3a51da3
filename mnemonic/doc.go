// Package mnemonic implements BIP-39 mnemonic phrases and hierarchical
// deterministic key derivation (SLIP-0010 for Ed25519, BIP-32 for Secp256k1)
// used to derive Aptos accounts from a single seed phrase.
package mnemonic
