// poseidon.go - Poseidon hashing over the BN254 scalar field.

package crypto

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/iden3/go-iden3-crypto/poseidon"
)

// fieldPrime is the BN254 scalar field modulus Poseidon operates over.
var fieldPrime = fr.Modulus()

// Poseidon hashes the inputs with the circom-compatible Poseidon permutation.
// Inputs are reduced into the BN254 scalar field first, matching the implicit
// reduction of the circom reference implementation; wider values such as raw
// 256-bit chain keys hash as their field residue. Inputs are not mutated.
func Poseidon(inputs ...*big.Int) (*big.Int, error) {
	if err := ensureReady(); err != nil {
		return nil, err
	}
	reduced := make([]*big.Int, len(inputs))
	for i, input := range inputs {
		reduced[i] = new(big.Int).Mod(input, fieldPrime)
	}
	out, err := poseidon.Hash(reduced)
	if err != nil {
		return nil, fmt.Errorf("poseidon hash failed: %w", err)
	}
	return out, nil
}
