// bytesutil.go - Byte and scalar conversion helpers shared by the key and note layers.
//
// All conversions are big-endian unless a function name says otherwise; the
// ed25519 scalar code is the only caller that needs little-endian forms and
// obtains them via Reverse.

package bytesutil

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidLength is returned when an input slice does not have the exact
// length an operation requires.
var ErrInvalidLength = errors.New("invalid byte length")

// FromHex decodes a hex string into bytes. A leading "0x" prefix is accepted
// and odd-length strings are left-padded with a zero nibble.
func FromHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string: %w", err)
	}
	return b, nil
}

// ToHex encodes bytes as a lowercase hex string without a prefix.
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// BigIntToBytes converts a non-negative integer to a fixed-width big-endian
// byte slice, left-padded with zeros. It fails if the integer does not fit.
func BigIntToBytes(n *big.Int, width int) ([]byte, error) {
	b := n.Bytes()
	if len(b) > width {
		return nil, fmt.Errorf("%w: integer needs %d bytes, width is %d", ErrInvalidLength, len(b), width)
	}
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out, nil
}

// BigIntFromBytes interprets a byte slice as a big-endian unsigned integer.
func BigIntFromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// PadToLength left-pads b with zero bytes to the requested width.
// It fails if b is already longer than width.
func PadToLength(b []byte, width int) ([]byte, error) {
	if len(b) > width {
		return nil, fmt.Errorf("%w: have %d bytes, want at most %d", ErrInvalidLength, len(b), width)
	}
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out, nil
}

// XOR combines two equal-length byte slices element-wise.
func XOR(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrInvalidLength, len(a), len(b))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// Reverse returns a reversed copy of b. Used to move 32-byte scalars between
// the big-endian form the derivation code uses and the little-endian form
// ed25519 expects.
func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[len(b)-1-i]
	}
	return out
}

// Copy returns an independent copy of b. Key material handed across package
// boundaries is always copied so no caller can mutate another's state.
func Copy(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
