package crypto

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoseidonReducesInputs(t *testing.T) {
	require.NoError(t, Initialize())

	small := big.NewInt(7)
	large := new(big.Int).Add(fieldPrime, small)

	a, err := Poseidon(small)
	require.NoError(t, err)
	b, err := Poseidon(large)
	require.NoError(t, err)
	assert.Equal(t, a, b, "inputs congruent mod the field prime must hash identically")

	// Raw 256-bit key material, above the modulus with high probability,
	// must hash without error.
	wide := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	_, err = Poseidon(wide)
	require.NoError(t, err)

	// Inputs are not mutated by the reduction.
	assert.Equal(t, new(big.Int).Add(fieldPrime, big.NewInt(7)), large)
}
