package bytesutil

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHex(t *testing.T) {
	b, err := FromHex("0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	b, err = FromHex("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0xbc}, b)

	_, err = FromHex("0xzz")
	assert.Error(t, err)
}

func TestToHexRoundTrip(t *testing.T) {
	b := []byte{0x00, 0x01, 0xff}
	out, err := FromHex(ToHex(b))
	require.NoError(t, err)
	assert.Equal(t, b, out)
}

func TestBigIntToBytes(t *testing.T) {
	b, err := BigIntToBytes(big.NewInt(0x0102), 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x02}, b)

	_, err = BigIntToBytes(big.NewInt(0x010203), 2)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestBigIntFromBytes(t *testing.T) {
	n := BigIntFromBytes([]byte{0x01, 0x00})
	assert.Equal(t, int64(256), n.Int64())
	assert.Equal(t, int64(0), BigIntFromBytes(nil).Int64())
}

func TestPadToLength(t *testing.T) {
	b, err := PadToLength([]byte{0xaa}, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0xaa}, b)

	_, err = PadToLength([]byte{1, 2, 3, 4}, 3)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestXOR(t *testing.T) {
	out, err := XOR([]byte{0xf0, 0x0f}, []byte{0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0f, 0xf0}, out)

	// XOR with zeros is the identity; this property is what makes a zero
	// sender-random a provable no-op in the blinding scheme.
	in := []byte{1, 2, 3}
	out, err = XOR(in, []byte{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = XOR([]byte{1}, []byte{1, 2})
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestReverse(t *testing.T) {
	assert.Equal(t, []byte{3, 2, 1}, Reverse([]byte{1, 2, 3}))
	orig := []byte{1, 2, 3}
	Reverse(orig)
	assert.Equal(t, []byte{1, 2, 3}, orig, "Reverse must not mutate its input")
}
