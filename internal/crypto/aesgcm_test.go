package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptGCM(t *testing.T) {
	key := RandomBytes(32)
	blocks := [][]byte{
		RandomBytes(16),
		RandomBytes(32),
		RandomBytes(101),
	}

	ct, err := EncryptGCM(blocks, key)
	require.NoError(t, err)
	require.Len(t, ct.IV, GCMNonceSize)
	require.Len(t, ct.Tag, 16)
	require.Len(t, ct.Data, len(blocks))
	for i := range blocks {
		assert.Len(t, ct.Data[i], len(blocks[i]), "block boundaries must be preserved")
		assert.NotEqual(t, blocks[i], ct.Data[i])
	}

	plain, err := DecryptGCM(ct, key)
	require.NoError(t, err)
	assert.Equal(t, blocks, plain)
}

func TestDecryptGCMWrongKey(t *testing.T) {
	key := RandomBytes(32)
	ct, err := EncryptGCM([][]byte{RandomBytes(48)}, key)
	require.NoError(t, err)

	_, err = DecryptGCM(ct, RandomBytes(32))
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestDecryptGCMTamperedTag(t *testing.T) {
	key := RandomBytes(32)
	ct, err := EncryptGCM([][]byte{RandomBytes(48)}, key)
	require.NoError(t, err)

	ct.Tag[0] ^= 0x01
	_, err = DecryptGCM(ct, key)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestDecryptGCMTamperedData(t *testing.T) {
	key := RandomBytes(32)
	ct, err := EncryptGCM([][]byte{RandomBytes(48)}, key)
	require.NoError(t, err)

	ct.Data[0][0] ^= 0x01
	_, err = DecryptGCM(ct, key)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestGCMKeyLength(t *testing.T) {
	_, err := EncryptGCM([][]byte{{1, 2, 3}}, RandomBytes(16))
	assert.Error(t, err)
}
