// Package hooks builds and deploys compiled ledger hooks.
//
// A hook is a small compiled WebAssembly program that runs inside the
// transaction-processing pipeline of a Hooks-enabled ledger. This library
// covers the full path from a compiled hook project to an installed hook:
//   - Drive the external build toolchain (compile, flatten/optimize,
//     clean, guard-check) over a working directory
//   - Assemble the SetHook payload with deterministic field encoding
//   - Estimate the network fee for the resulting transaction
//   - Submit it with a bounded retry policy
//
// # Basic Usage
//
// Build a hook project and deploy the resulting payload:
//
//	pipeline := hooks.NewPipeline("./my-hook")
//
//	payload, err := pipeline.Build(ctx, "my_hook")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := hooks.Dial(ctx, "http://localhost:5005")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := hooks.NewDeployer(client).Deploy(ctx, walletSeed, payload)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.TxHash)
//
// # Payloads
//
// Payloads can also be assembled directly, without running the toolchain,
// for example when installing a pre-built hook binary:
//
//	payload := hooks.BuildPayload(hooks.BuildOptions{
//	    APIVersion:    hooks.Uint16(0),
//	    NamespaceSeed: "my_hooknamespace",
//	    Parameters: []hooks.Parameter{
//	        {Name: "threshold", Value: "0A"},
//	    },
//	})
//	payload = payload.WithCode(codeHex)
//
// The namespace is always stored as a 64-character uppercase hex digest of
// the seed, never as the raw seed. Parameter names and values are
// hex-normalized on the way in.
//
// # Toolchain
//
// The pipeline invokes the compiler, wasm-opt, hook-cleaner, wasm2wat, and
// the guard checker as external processes through a CommandRunner, which is
// injectable for testing. Control-flow flattening is mandatory: the
// deployment target rejects hooks whose control-flow nesting exceeds 16
// levels, so the optimizer always runs with --flatten.
//
// # Network
//
// All network interaction goes through the Client interface. Dial returns
// the JSON-RPC implementation; tests supply fakes. Key derivation and
// transaction signing are delegated to the node, never performed locally.
package hooks
