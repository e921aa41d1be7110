// keys.go - Ed25519 viewing keys, shared symmetric keys, and note-key blinding.
//
// Viewing keys live in the ed25519 key space: the public key is the clamped
// SHA-512 scalar times the basepoint. Blinding multiplies both parties'
// public keys by one mutually-derivable scalar so the blinded keys are
// unlinkable to third parties yet invertible by anyone holding the two
// 16-byte randoms.

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"
	"math/big"

	"filippo.io/edwards25519"

	"zkwallet/internal/bytesutil"
)

// Endian selects which end of a 32-byte scalar holds the low-order byte.
type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

// scalarOrder is the ed25519 group order L = 2^252 + 27742317777372353535851937790883648493.
var scalarOrder, _ = new(big.Int).SetString(
	"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// RandomBytes returns n bytes from crypto/rand. Use this for all protocol
// randomness.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return b
}

// AdjustBytes25519 clamps a 32-byte scalar to standard X25519 form: the low
// 3 bits of the low-order byte cleared, the top bit of the high-order byte
// cleared, and the second-highest bit of the high-order byte set.
func AdjustBytes25519(b []byte, endian Endian) ([]byte, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: scalar must be 32 bytes, got %d", bytesutil.ErrInvalidLength, len(b))
	}
	out := bytesutil.Copy(b)
	switch endian {
	case LittleEndian:
		out[0] &= 0xf8
		out[31] &= 0x7f
		out[31] |= 0x40
	case BigEndian:
		out[31] &= 0xf8
		out[0] &= 0x7f
		out[0] |= 0x40
	}
	return out, nil
}

// PrivateScalarFromPrivateKey expands a 32-byte private key to its point
// multiplication scalar: SHA-512, clamp the first half little-endian, reverse
// to big-endian, reduce mod L. A reduction to exactly zero substitutes L
// itself so the returned integer is never zero; L is congruent to zero, so
// point multiplication still maps that scalar to the identity. The
// substitution keeps the integer form non-zero, nothing more.
func PrivateScalarFromPrivateKey(privateKey []byte) (*big.Int, error) {
	if len(privateKey) != 32 {
		return nil, fmt.Errorf("%w: private key must be 32 bytes, got %d",
			bytesutil.ErrInvalidLength, len(privateKey))
	}
	digest := sha512.Sum512(privateKey)
	clamped, err := AdjustBytes25519(digest[:32], LittleEndian)
	if err != nil {
		return nil, err
	}
	scalar := bytesutil.BigIntFromBytes(bytesutil.Reverse(clamped))
	scalar.Mod(scalar, scalarOrder)
	if scalar.Sign() == 0 {
		scalar.Set(scalarOrder)
	}
	return scalar, nil
}

// ViewingPublicKey derives the ed25519 public key (compressed point) for a
// 32-byte viewing private key.
func ViewingPublicKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != 32 {
		return nil, fmt.Errorf("%w: viewing private key must be 32 bytes, got %d",
			bytesutil.ErrInvalidLength, len(privateKey))
	}
	digest := sha512.Sum512(privateKey)
	scalar, err := edwards25519.NewScalar().SetBytesWithClamping(digest[:32])
	if err != nil {
		return nil, fmt.Errorf("clamping viewing scalar: %w", err)
	}
	return new(edwards25519.Point).ScalarBaseMult(scalar).Bytes(), nil
}

// SharedSymmetricKey derives the 32-byte symmetric key shared between the
// holder of privateKey and the holder of the scalar behind publicKey. The
// false return means "this key does not open that ciphertext" and is an
// expected outcome during trial decryption, not an error.
func SharedSymmetricKey(privateKey, publicKey []byte) ([]byte, bool) {
	scalar, err := PrivateScalarFromPrivateKey(privateKey)
	if err != nil {
		return nil, false
	}
	shared, ok := multiplyPoint(publicKey, scalar)
	if !ok {
		return nil, false
	}
	key := sha256.Sum256(shared)
	return key[:], true
}

// BlindingScalar derives the scalar both blinded keys are multiplied by:
// SHA-512 of sharedRandom XOR senderRandom, reduced mod L. XOR makes a zero
// sender-random an exact identity no-op on the shared random. The reduction
// is a plain mod; a zero scalar is possible and kept for bit-compatibility
// with issued notes.
func BlindingScalar(sharedRandom, senderRandom []byte) (*big.Int, error) {
	seed, err := bytesutil.XOR(sharedRandom, senderRandom)
	if err != nil {
		return nil, fmt.Errorf("combining blinding randoms: %w", err)
	}
	digest := sha512.Sum512(seed)
	scalar := bytesutil.BigIntFromBytes(digest[:])
	return scalar.Mod(scalar, scalarOrder), nil
}

// NoteBlindingKeys multiplies the sender and receiver viewing public keys by
// the blinding scalar for (sharedRandom, senderRandom), producing the two
// blinded keys carried by a note.
func NoteBlindingKeys(senderPublicKey, receiverPublicKey, sharedRandom, senderRandom []byte) (blindedSender, blindedReceiver []byte, err error) {
	scalar, err := BlindingScalar(sharedRandom, senderRandom)
	if err != nil {
		return nil, nil, err
	}
	blindedSender, ok := multiplyPoint(senderPublicKey, scalar)
	if !ok {
		return nil, nil, fmt.Errorf("invalid sender viewing public key")
	}
	blindedReceiver, ok = multiplyPoint(receiverPublicKey, scalar)
	if !ok {
		return nil, nil, fmt.Errorf("invalid receiver viewing public key")
	}
	return blindedSender, blindedReceiver, nil
}

// UnblindNoteKey inverts the blinding of a note key. The false return covers
// a malformed point, and a zero blinding scalar, which has no inverse; both
// mean the key cannot be recovered with these randoms.
func UnblindNoteKey(blindedKey, sharedRandom, senderRandom []byte) ([]byte, bool) {
	scalar, err := BlindingScalar(sharedRandom, senderRandom)
	if err != nil {
		return nil, false
	}
	inverse := new(big.Int).ModInverse(scalar, scalarOrder)
	if inverse == nil {
		return nil, false
	}
	return multiplyPoint(blindedKey, inverse)
}

// multiplyPoint multiplies a compressed ed25519 point by a scalar, returning
// the compressed result. false means the point encoding was invalid.
func multiplyPoint(publicKey []byte, scalar *big.Int) ([]byte, bool) {
	point, err := new(edwards25519.Point).SetBytes(publicKey)
	if err != nil {
		return nil, false
	}
	s, err := scalarFromBigInt(scalar)
	if err != nil {
		return nil, false
	}
	return new(edwards25519.Point).ScalarMult(s, point).Bytes(), true
}

// scalarFromBigInt converts a big integer to an edwards25519 scalar, reducing
// mod L first so the canonical little-endian encoding is always accepted.
// Multiples of L, including the zero-substitute L itself, reduce to the zero
// scalar here.
func scalarFromBigInt(n *big.Int) (*edwards25519.Scalar, error) {
	reduced := new(big.Int).Mod(n, scalarOrder)
	be, err := bytesutil.BigIntToBytes(reduced, 32)
	if err != nil {
		return nil, err
	}
	return edwards25519.NewScalar().SetCanonicalBytes(bytesutil.Reverse(be))
}
