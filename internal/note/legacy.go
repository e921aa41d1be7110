// legacy.go - The byte-exact legacy wire format for transact notes.
//
// Legacy blobs predate plaintext note randoms: the random travels AES-GCM
// encrypted under the shared symmetric key as an (iv‖tag, data) hex pair, and
// the receiver is a single flat recipientAddress field instead of structured
// address data. Legacy notes are always ERC20 and never carry sender address
// data. The format has no version tag; the presence of encryptedRandom is
// what marks a blob as legacy, and it must remain decodable forever because
// issued notes reference it.

package note

import (
	"fmt"
	"math/big"

	"zkwallet/internal/bytesutil"
	"zkwallet/internal/crypto"
	"zkwallet/internal/token"
	"zkwallet/internal/wallet"
)

// legacyIVTagSize is the length of the concatenated IV and GCM tag.
const legacyIVTagSize = crypto.GCMNonceSize + 16

// SerializeLegacy converts a transact note to the legacy wire form,
// encrypting its random under sharedKey. Only sender-less ERC20 transact
// notes exist in the legacy format; anything else is rejected.
func SerializeLegacy(n *Note, sharedKey []byte) (*SerializedNote, error) {
	if n.Kind != KindTransact || n.Transact == nil {
		return nil, fmt.Errorf("%w: legacy format only encodes transact notes", ErrMalformedNote)
	}
	if n.Token.TokenType != token.ERC20 {
		return nil, fmt.Errorf("%w: legacy notes are always ERC20", ErrMalformedNote)
	}
	if n.Transact.Sender != nil {
		return nil, fmt.Errorf("%w: legacy notes carry no sender address data", ErrMalformedNote)
	}

	ct, err := crypto.EncryptGCM([][]byte{n.Random}, sharedKey)
	if err != nil {
		return nil, fmt.Errorf("encrypting note random: %w", err)
	}
	ivTag := append(bytesutil.Copy(ct.IV), ct.Tag...)

	npkHex, err := hexFromBigInt(n.NotePublicKey)
	if err != nil {
		return nil, err
	}
	return &SerializedNote{
		NPK:          npkHex,
		Value:        n.Value.String(),
		TokenType:    uint8(token.ERC20),
		TokenAddress: n.Token.TokenAddress,
		TokenSubID:   n.Token.TokenSubID,
		EncryptedRandom: []string{
			bytesutil.ToHex(ivTag),
			bytesutil.ToHex(ct.Data[0]),
		},
		RecipientAddress: encodeRecipientAddress(&n.Transact.Receiver),
	}, nil
}

// DeserializeLegacy rebuilds a transact note from a legacy blob, decrypting
// its random with sharedKey.
func DeserializeLegacy(s *SerializedNote, sharedKey []byte) (*Note, error) {
	if len(s.EncryptedRandom) != 2 {
		return nil, fmt.Errorf("%w: legacy note requires an (iv‖tag, data) encrypted random pair", ErrMalformedNote)
	}
	ivTag, err := bytesutil.FromHex(s.EncryptedRandom[0])
	if err != nil {
		return nil, fmt.Errorf("%w: encrypted random iv/tag: %v", ErrMalformedNote, err)
	}
	if len(ivTag) != legacyIVTagSize {
		return nil, fmt.Errorf("%w: encrypted random iv/tag must be %d bytes, got %d",
			ErrMalformedNote, legacyIVTagSize, len(ivTag))
	}
	data, err := bytesutil.FromHex(s.EncryptedRandom[1])
	if err != nil {
		return nil, fmt.Errorf("%w: encrypted random data: %v", ErrMalformedNote, err)
	}

	blocks, err := crypto.DecryptGCM(&crypto.Ciphertext{
		IV:   ivTag[:crypto.GCMNonceSize],
		Tag:  ivTag[crypto.GCMNonceSize:],
		Data: [][]byte{data},
	}, sharedKey)
	if err != nil {
		return nil, fmt.Errorf("decrypting note random: %w", err)
	}
	random := blocks[0]

	receiver, err := decodeRecipientAddress(s.RecipientAddress)
	if err != nil {
		return nil, err
	}

	value, ok := new(big.Int).SetString(s.Value, 10)
	if !ok {
		return nil, fmt.Errorf("%w: value %q", ErrMalformedNote, s.Value)
	}
	tokenData := token.Data{
		TokenType:    token.ERC20,
		TokenAddress: s.TokenAddress,
		TokenSubID:   s.TokenSubID,
	}
	n, err := NewTransact(*receiver, nil, random, value, tokenData)
	if err != nil {
		return nil, err
	}
	npkBytes, err := bytesutil.FromHex(s.NPK)
	if err != nil {
		return nil, fmt.Errorf("%w: npk: %v", ErrMalformedNote, err)
	}
	if n.NotePublicKey.Cmp(bytesutil.BigIntFromBytes(npkBytes)) != 0 {
		return nil, fmt.Errorf("%w: note public key does not commit to recipient and random", ErrMalformedNote)
	}
	return n, nil
}

// encodeRecipientAddress flattens address data to the legacy single-field
// form: hex of masterPublicKey(32) ‖ viewingPublicKey(32).
func encodeRecipientAddress(a *wallet.AddressData) string {
	mpk, err := bytesutil.BigIntToBytes(a.MasterPublicKey, 32)
	if err != nil {
		return ""
	}
	return bytesutil.ToHex(append(mpk, a.ViewingPublicKey...))
}

func decodeRecipientAddress(s string) (*wallet.AddressData, error) {
	raw, err := bytesutil.FromHex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient address: %v", ErrMalformedNote, err)
	}
	if len(raw) != 64 {
		return nil, fmt.Errorf("%w: recipient address must be 64 bytes, got %d", ErrMalformedNote, len(raw))
	}
	return &wallet.AddressData{
		MasterPublicKey:  bytesutil.BigIntFromBytes(raw[:32]),
		ViewingPublicKey: bytesutil.Copy(raw[32:]),
	}, nil
}
