// Package keyless provides Keyless (Zero-Knowledge) authentication for Aptos.
//
// Keyless authentication allows users to authenticate using their existing
// OpenID Connect (OIDC) identities from providers like Google, Apple, and others,
// without needing to manage private keys directly.
//
// # Overview
//
// The keyless flow consists of several steps:
//
//  1. Generate an ephemeral key pair for the session
//  2. User authenticates with their OIDC provider (Google, Apple, etc.)
//  3. Get the JWT token from the authentication
//  4. Fetch a pepper and derive the keyless account address from the JWT
//  5. Fetch a ZK proof from the prover service for transaction signing
//  6. Sign and submit transactions
//
// # Basic Usage
//
//	// 1. Generate an ephemeral key pair valid for one hour
//	ephemeralKeyPair, err := keyless.GenerateEphemeralKeyPair(time.Hour)
//	if err != nil {
//		return err
//	}
//
//	// 2. Get nonce for OIDC redirect
//	nonce := ephemeralKeyPair.Nonce()
//
//	// 3. After OIDC authentication, parse the JWT and fetch a pepper
//	claims, err := keyless.ParseJWT(jwtToken)
//	pepperResp, err := keyless.NewPepperClient("").GetPepper(ctx, &keyless.PepperRequest{
//		JWT:                jwtToken,
//		EphemeralPublicKey: ephemeralKeyPair.PublicKey(),
//		ExpiryDateSecs:     uint64(ephemeralKeyPair.ExpiresAt().Unix()),
//	})
//
//	// 4. Derive the account address
//	address, err := keyless.DeriveAddress(claims, "sub", pepperResp.Pepper)
//
//	// 5. Fetch a proof from the prover service
//	proofResp, err := keyless.NewProverClient("").GetProof(ctx, &keyless.ProveRequest{
//		JWT:                jwtToken,
//		EphemeralPublicKey: ephemeralKeyPair.PublicKey(),
//		ExpiryDateSecs:     uint64(ephemeralKeyPair.ExpiresAt().Unix()),
//		Pepper:             pepperResp.Pepper,
//	})
//
// The package has no exported constructor for [KeylessAccount]; its Sign and
// SignWithProof methods produce the transaction authenticator.
//
// # Ephemeral Keys
//
// Ephemeral keys are temporary key pairs used to generate zero-knowledge proofs.
// They should be:
//   - Generated fresh for each session
//   - Stored securely during the session
//   - Discarded after expiration
//
// # Supported OIDC Providers
//
// Currently supported providers:
//   - Google
//   - Apple
//   - Facebook
//   - Discord
//
// # Security Considerations
//
//   - JWTs have expiration times; accounts derived from them will also expire
//   - Ephemeral keys should not be persisted long-term
//   - Use secure storage for ephemeral keys during sessions
//   - The prover service must be trusted
package keyless
