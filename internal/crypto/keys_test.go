package crypto

import (
	"bytes"
	stded25519 "crypto/ed25519"
	"math/big"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeIdempotent(t *testing.T) {
	require.NoError(t, Initialize())
	require.NoError(t, Initialize())

	out, err := Poseidon(big.NewInt(1), big.NewInt(2))
	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestAdjustBytes25519(t *testing.T) {
	ones := bytes.Repeat([]byte{0xff}, 32)

	le, err := AdjustBytes25519(ones, LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, byte(0xf8), le[0])
	assert.Equal(t, byte(0x7f), le[31])

	be, err := AdjustBytes25519(ones, BigEndian)
	require.NoError(t, err)
	assert.Equal(t, byte(0xf8), be[31])
	assert.Equal(t, byte(0x7f), be[0])

	zeros := make([]byte, 32)
	le, err = AdjustBytes25519(zeros, LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, byte(0x40), le[31], "second-highest bit must be set")

	// Input must not be mutated.
	assert.Equal(t, bytes.Repeat([]byte{0xff}, 32), ones)

	_, err = AdjustBytes25519(make([]byte, 31), LittleEndian)
	assert.Error(t, err)
}

func TestPrivateScalarFromPrivateKey(t *testing.T) {
	key := RandomBytes(32)

	scalar, err := PrivateScalarFromPrivateKey(key)
	require.NoError(t, err)
	assert.True(t, scalar.Sign() > 0, "scalar must never be zero")
	assert.True(t, scalar.Cmp(scalarOrder) <= 0, "scalar must be in (0, L]")

	again, err := PrivateScalarFromPrivateKey(key)
	require.NoError(t, err)
	assert.Equal(t, scalar, again)

	_, err = PrivateScalarFromPrivateKey(make([]byte, 16))
	assert.Error(t, err)
}

func TestViewingPublicKeyMatchesEd25519(t *testing.T) {
	seed := RandomBytes(32)
	pub, err := ViewingPublicKey(seed)
	require.NoError(t, err)

	expected := stded25519.NewKeyFromSeed(seed).Public().(stded25519.PublicKey)
	assert.Equal(t, []byte(expected), pub)
}

func TestSharedSymmetricKeySymmetry(t *testing.T) {
	privA := RandomBytes(32)
	privB := RandomBytes(32)
	pubA, err := ViewingPublicKey(privA)
	require.NoError(t, err)
	pubB, err := ViewingPublicKey(privB)
	require.NoError(t, err)

	keyAB, ok := SharedSymmetricKey(privA, pubB)
	require.True(t, ok)
	keyBA, ok := SharedSymmetricKey(privB, pubA)
	require.True(t, ok)
	assert.Equal(t, keyAB, keyBA)
	assert.Len(t, keyAB, 32)
}

func TestSharedSymmetricKeySoftFailure(t *testing.T) {
	priv := RandomBytes(32)

	_, ok := SharedSymmetricKey(priv, make([]byte, 31))
	assert.False(t, ok, "truncated point must be a soft failure")

	_, ok = SharedSymmetricKey(make([]byte, 31), make([]byte, 32))
	assert.False(t, ok, "bad private key length must be a soft failure")
}

func TestBlindingRoundTrip(t *testing.T) {
	priv := RandomBytes(32)
	senderPub, err := ViewingPublicKey(priv)
	require.NoError(t, err)
	receiverPub, err := ViewingPublicKey(RandomBytes(32))
	require.NoError(t, err)

	sharedRandom := RandomBytes(16)
	senderRandom := RandomBytes(16)

	blindedSender, blindedReceiver, err := NoteBlindingKeys(senderPub, receiverPub, sharedRandom, senderRandom)
	require.NoError(t, err)
	assert.NotEqual(t, senderPub, blindedSender)
	assert.NotEqual(t, receiverPub, blindedReceiver)

	unblindedSender, ok := UnblindNoteKey(blindedSender, sharedRandom, senderRandom)
	require.True(t, ok)
	assert.Equal(t, senderPub, unblindedSender)

	unblindedReceiver, ok := UnblindNoteKey(blindedReceiver, sharedRandom, senderRandom)
	require.True(t, ok)
	assert.Equal(t, receiverPub, unblindedReceiver)
}

func TestUnblindWithWrongRandoms(t *testing.T) {
	pub, err := ViewingPublicKey(RandomBytes(32))
	require.NoError(t, err)

	sharedRandom := RandomBytes(16)
	senderRandom := RandomBytes(16)
	blinded, _, err := NoteBlindingKeys(pub, pub, sharedRandom, senderRandom)
	require.NoError(t, err)

	wrong, ok := UnblindNoteKey(blinded, RandomBytes(16), senderRandom)
	if ok {
		assert.NotEqual(t, pub, wrong)
	}
}

// The zero-substitute L in PrivateScalarFromPrivateKey is congruent to zero
// mod L, so it multiplies every point to the identity, same as a true zero
// scalar. This pins that equivalence as intended behavior.
func TestScalarOrderMultipliesToIdentity(t *testing.T) {
	pub, err := ViewingPublicKey(RandomBytes(32))
	require.NoError(t, err)

	atOrder, ok := multiplyPoint(pub, scalarOrder)
	require.True(t, ok)
	atZero, ok := multiplyPoint(pub, big.NewInt(0))
	require.True(t, ok)
	assert.Equal(t, atZero, atOrder)
	assert.Equal(t, edwards25519.NewIdentityPoint().Bytes(), atOrder)
}

func TestBlindingScalar(t *testing.T) {
	sharedRandom := RandomBytes(16)
	senderRandom := RandomBytes(16)

	a, err := BlindingScalar(sharedRandom, senderRandom)
	require.NoError(t, err)
	b, err := BlindingScalar(sharedRandom, senderRandom)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, a.Cmp(scalarOrder) < 0)

	_, err = BlindingScalar(sharedRandom, RandomBytes(15))
	assert.Error(t, err, "mismatched random lengths must fail")
}

func TestNoteBlindingKeysRejectsBadPoint(t *testing.T) {
	pub, err := ViewingPublicKey(RandomBytes(32))
	require.NoError(t, err)

	_, _, err = NoteBlindingKeys(make([]byte, 31), pub, RandomBytes(16), RandomBytes(16))
	assert.Error(t, err)
}
