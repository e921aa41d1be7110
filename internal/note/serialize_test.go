package note

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zkwallet/internal/crypto"
	"zkwallet/internal/wallet"
)

func TestSerializeRoundTripShield(t *testing.T) {
	addr, _ := testAddressData(t)
	n, err := NewShield(addr.MasterPublicKey, crypto.RandomBytes(RandomSize), big.NewInt(500), erc20Token())
	require.NoError(t, err)

	s, err := Serialize(n)
	require.NoError(t, err)
	back, err := Deserialize(s)
	require.NoError(t, err)
	assert.Equal(t, n, back)
}

func TestSerializeRoundTripTransact(t *testing.T) {
	receiver, _ := testAddressData(t)
	sender, _ := testAddressData(t)
	receiver.Chain = &wallet.Chain{Type: 0, ID: 1}
	receiver.Version = 1

	n, err := NewTransact(receiver, &sender, crypto.RandomBytes(RandomSize), big.NewInt(123456), erc20Token())
	require.NoError(t, err)

	outputType := uint8(2)
	blockNumber := uint64(18_000_000)
	n.Transact.OutputType = &outputType
	n.Transact.WalletSource = "zkwallet"
	n.Transact.SenderRandom = crypto.RandomBytes(15)
	n.Transact.MemoText = "coffee"
	n.Transact.ShieldFee = big.NewInt(25)
	n.Transact.BlockNumber = &blockNumber

	s, err := Serialize(n)
	require.NoError(t, err)
	back, err := Deserialize(s)
	require.NoError(t, err)
	assert.Equal(t, n, back)
}

func TestSerializeRoundTripUnshield(t *testing.T) {
	require.NoError(t, crypto.Initialize())
	n, err := NewUnshield("0x00112233445566778899aabbccddeeff00112233", big.NewInt(9), erc20Token(), false)
	require.NoError(t, err)

	s, err := Serialize(n)
	require.NoError(t, err)
	back, err := Deserialize(s)
	require.NoError(t, err)
	assert.Equal(t, n, back)
}

func TestBinaryRoundTrip(t *testing.T) {
	receiver, _ := testAddressData(t)
	n, err := NewTransact(receiver, nil, crypto.RandomBytes(RandomSize), big.NewInt(42), erc20Token())
	require.NoError(t, err)

	s, err := Serialize(n)
	require.NoError(t, err)
	blob, err := EncodeBinary(s)
	require.NoError(t, err)

	decoded, err := DecodeBinary(blob)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)

	back, err := Deserialize(decoded)
	require.NoError(t, err)
	assert.Equal(t, n, back)
}

func TestDeserializeRejectsIncomplete(t *testing.T) {
	addr, _ := testAddressData(t)
	n, err := NewShield(addr.MasterPublicKey, crypto.RandomBytes(RandomSize), big.NewInt(5), erc20Token())
	require.NoError(t, err)
	good, err := Serialize(n)
	require.NoError(t, err)

	cases := map[string]func(*SerializedNote){
		"missing npk":      func(s *SerializedNote) { s.NPK = "" },
		"missing value":    func(s *SerializedNote) { s.Value = "" },
		"missing token":    func(s *SerializedNote) { s.TokenAddress = "" },
		"no variant":       func(s *SerializedNote) { s.MasterPublicKey = "" },
		"bad value":        func(s *SerializedNote) { s.Value = "not-a-number" },
		"bad npk hex":      func(s *SerializedNote) { s.NPK = "zz" },
		"npk not binding":  func(s *SerializedNote) { s.Random = "00000000000000000000000000000000" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			bad := *good
			mutate(&bad)
			_, err := Deserialize(&bad)
			assert.ErrorIs(t, err, ErrMalformedNote)
		})
	}
}

func TestDeserializeDetectsLegacy(t *testing.T) {
	s := &SerializedNote{
		NPK:             "0a",
		Value:           "1",
		TokenAddress:    testTokenAddress,
		EncryptedRandom: []string{"00", "11"},
	}
	_, err := Deserialize(s)
	assert.ErrorIs(t, err, ErrLegacyFormat)
}

func TestSerializeRejectsBrokenVariant(t *testing.T) {
	addr, _ := testAddressData(t)
	n, err := NewShield(addr.MasterPublicKey, crypto.RandomBytes(RandomSize), big.NewInt(5), erc20Token())
	require.NoError(t, err)

	n.Shield = nil
	_, err = Serialize(n)
	assert.ErrorIs(t, err, ErrMalformedNote)

	n.Kind = Kind(9)
	_, err = Serialize(n)
	assert.ErrorIs(t, err, ErrMalformedNote)
}
