// Package crypto wraps the cryptographic primitives the wallet and note
// layers are built on.
//
// Overview:
//   - One-time primitive initialization gate (Initialize), guarding the
//     Poseidon and babyjubjub entry points
//   - Poseidon hashing (circom-compatible, via go-iden3-crypto)
//   - Babyjubjub EdDSA public-key derivation for spending keys
//   - Ed25519 scalar/point operations: viewing public keys, X25519-style
//     clamping, shared symmetric keys, and reversible key blinding
//   - AES-256-GCM encryption of note payloads with 16-byte nonces
//
// Security model:
//   - All randomness comes from crypto/rand
//   - Shared-key derivation and unblinding are probe operations: a key that
//     does not match is reported as an explicit "no result", never an error
//   - Key material passed in is never mutated; outputs are freshly allocated
package crypto
