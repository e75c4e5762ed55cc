// Package kv is the local key/value persistence medium of the client.
//
// It backs the token stores (plain and sealed) and keeps per-installation
// values such as the installation id and the sealing salt. Values are opaque
// byte slices; callers own their encoding.
//
// Contract:
//   - Get returns (nil, nil) when the key is absent.
//   - Set upserts; writing the same value twice is a no-op in effect.
//   - Delete of a missing key is not an error.
//   - GetOrCreate atomically returns the existing value or stores a new one.
package kv
