// Package codegen provides code generation utilities for generating type-safe Go bindings
// from Move module ABIs.
//
// The code generator can produce:
//   - Go structs from Move structs
//   - Type-safe entry function wrappers
//   - View function helpers
//
// # Usage
//
// GenerateModule takes a module ABI as an api.MoveModule from the v1 SDK
// package github.com/aptos-labs/aptos-go-sdk/api, for example one loaded
// from a local JSON file. The *aptos.ModuleABI returned (inside
// *aptos.ModuleBytecode) by this SDK's Client.AccountModule is a different
// type and is not accepted directly.
//
//	// From local file
//	data, _ := os.ReadFile("coin_abi.json")
//	var module api.MoveModule
//	json.Unmarshal(data, &module)
//	code, _ := codegen.GenerateModule(&module, codegen.Options{PackageName: "coin"})
package codegen
