package note

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zkwallet/internal/crypto"
	"zkwallet/internal/token"
)

func TestLegacyRoundTrip(t *testing.T) {
	receiver, _ := testAddressData(t)
	n, err := NewTransact(receiver, nil, crypto.RandomBytes(RandomSize), big.NewInt(4200), erc20Token())
	require.NoError(t, err)

	sharedKey := crypto.RandomBytes(32)
	s, err := SerializeLegacy(n, sharedKey)
	require.NoError(t, err)

	// Legacy blobs are recognized structurally, by encryptedRandom presence.
	require.Len(t, s.EncryptedRandom, 2)
	assert.Empty(t, s.Random, "legacy blobs never carry a plaintext random")
	_, err = Deserialize(s)
	assert.ErrorIs(t, err, ErrLegacyFormat)

	back, err := DeserializeLegacy(s, sharedKey)
	require.NoError(t, err)
	assert.Equal(t, n.NotePublicKey, back.NotePublicKey)
	assert.Equal(t, n.Value, back.Value)
	assert.Equal(t, n.Random, back.Random)
	assert.Equal(t, n.Token, back.Token)
	assert.Equal(t, n.Transact.Hash, back.Transact.Hash)
	assert.Equal(t, n.Transact.Receiver.MasterPublicKey, back.Transact.Receiver.MasterPublicKey)
	assert.Equal(t, n.Transact.Receiver.ViewingPublicKey, back.Transact.Receiver.ViewingPublicKey)
	assert.Nil(t, back.Transact.Sender)
}

func TestLegacyWrongKey(t *testing.T) {
	receiver, _ := testAddressData(t)
	n, err := NewTransact(receiver, nil, crypto.RandomBytes(RandomSize), big.NewInt(1), erc20Token())
	require.NoError(t, err)

	s, err := SerializeLegacy(n, crypto.RandomBytes(32))
	require.NoError(t, err)

	_, err = DeserializeLegacy(s, crypto.RandomBytes(32))
	assert.Error(t, err)
}

func TestSerializeLegacyRestrictions(t *testing.T) {
	receiver, _ := testAddressData(t)
	sender, _ := testAddressData(t)
	sharedKey := crypto.RandomBytes(32)
	random := crypto.RandomBytes(RandomSize)

	// Legacy notes never carry sender address data.
	withSender, err := NewTransact(receiver, &sender, random, big.NewInt(1), erc20Token())
	require.NoError(t, err)
	_, err = SerializeLegacy(withSender, sharedKey)
	assert.ErrorIs(t, err, ErrMalformedNote)

	// Legacy notes are always ERC20.
	nft := token.Data{TokenType: token.ERC1155, TokenAddress: testTokenAddress, TokenSubID: "0x01"}
	nftNote, err := NewTransact(receiver, nil, random, big.NewInt(3), nft)
	require.NoError(t, err)
	_, err = SerializeLegacy(nftNote, sharedKey)
	assert.ErrorIs(t, err, ErrMalformedNote)

	// Only transact notes exist in the legacy format.
	shield, err := NewShield(receiver.MasterPublicKey, random, big.NewInt(1), erc20Token())
	require.NoError(t, err)
	_, err = SerializeLegacy(shield, sharedKey)
	assert.ErrorIs(t, err, ErrMalformedNote)
}

func TestDeserializeLegacyMalformed(t *testing.T) {
	sharedKey := crypto.RandomBytes(32)

	_, err := DeserializeLegacy(&SerializedNote{EncryptedRandom: []string{"00"}}, sharedKey)
	assert.ErrorIs(t, err, ErrMalformedNote)

	_, err = DeserializeLegacy(&SerializedNote{
		EncryptedRandom: []string{"0011", "2233"},
	}, sharedKey)
	assert.ErrorIs(t, err, ErrMalformedNote, "short iv/tag must be rejected")
}
