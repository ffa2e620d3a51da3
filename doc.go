// Package aptos provides a fully idiomatic Go SDK for interacting with the Aptos blockchain.
//
// This is version 2 of the Aptos Go SDK, featuring:
//   - context.Context on all client methods for cancellation and timeouts
//   - Functional options pattern for configuration
//   - Comprehensive error types with sentinel errors and rich context
//   - Go 1.23 iterators for streaming data
//   - Builder patterns for complex transaction construction
//   - Full support for Keyless authentication and Aptos Names Service (ANS)
//
// # Quick Start
//
// Create a client and interact with the Aptos blockchain:
//
//	client, err := aptos.NewClient(aptos.Testnet)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Get account info
//	ctx := context.Background()
//	info, err := client.Account(ctx, myAddress)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Transaction Building
//
// Use the builder pattern for constructing transactions:
//
//	txn, err := transaction.New().
//	    Sender(sender.Address()).
//	    EntryFunction("0x1::aptos_account::transfer", nil, recipient.Bytes(), amount).
//	    MaxGas(10000).
//	    Build(ctx, client)
//
// # Keyless Authentication
//
// Authenticate users with OpenID Connect providers:
//
//	ephemeralKey, err := keyless.GenerateEphemeralKeyPair(time.Hour)
//	claims, err := keyless.ParseJWT(jwt)
//	address, err := keyless.DeriveAddress(claims, "sub", pepper)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Aptos Names Service
//
// Resolve human-readable names to addresses:
//
//	ansClient := ans.NewClient(client)
//	addr, err := ansClient.Resolve(ctx, "alice.apt")
//
// # Testing
//
// Use the testutil package for unit testing:
//
//	fake := testutil.NewFakeClient().
//	    WithAccount(addr, &aptos.AccountInfo{SequenceNumber: 42})
//
// For more information, see the package documentation for each sub-package.
package aptos
