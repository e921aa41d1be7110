// eddsa.go - Babyjubjub EdDSA public-key derivation for spending keys.

package crypto

import (
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/babyjub"

	"zkwallet/internal/bytesutil"
)

// SpendingPublicKey derives the babyjubjub EdDSA public key for a 32-byte
// spending private key. The point is returned as two fixed-width 32-byte
// big-endian field elements; this is the one canonical representation used
// everywhere, with conversion to big integers only at the Poseidon boundary.
func SpendingPublicKey(privateKey []byte) (x, y []byte, err error) {
	if err := ensureReady(); err != nil {
		return nil, nil, err
	}
	return spendingPublicKey(privateKey)
}

func spendingPublicKey(privateKey []byte) (x, y []byte, err error) {
	if len(privateKey) != 32 {
		return nil, nil, fmt.Errorf("%w: spending private key must be 32 bytes, got %d",
			bytesutil.ErrInvalidLength, len(privateKey))
	}
	var k babyjub.PrivateKey
	copy(k[:], privateKey)
	pub := k.Public()
	x, err = bytesutil.BigIntToBytes(pub.X, 32)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding spending pubkey X: %w", err)
	}
	y, err = bytesutil.BigIntToBytes(pub.Y, 32)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding spending pubkey Y: %w", err)
	}
	return x, y, nil
}

// SpendingPointToInts converts the canonical byte representation back to the
// two field elements Poseidon consumes.
func SpendingPointToInts(x, y []byte) (*big.Int, *big.Int) {
	return bytesutil.BigIntFromBytes(x), bytesutil.BigIntFromBytes(y)
}
