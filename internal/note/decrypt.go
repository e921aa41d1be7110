// decrypt.go - Commitment encryption and trial decryption.
//
// A commitment ciphertext is probed with candidate blinded viewing keys while
// scanning the chain. Failure to decrypt is the common case and is a soft
// outcome: every parse or authentication failure means "not for this wallet",
// never an error. The two role attempts (receiver first, then sender) are
// the only retries made.

package note

import (
	"fmt"

	"zkwallet/internal/bytesutil"
	"zkwallet/internal/crypto"
	"zkwallet/internal/token"
)

// Commitment plaintext layout:
// random(16) ‖ npk(32) ‖ value(32) ‖ tokenAddress(20) ‖ tokenType(1) ‖ tokenSubID(32).
// The trailing sub-ID may be absent, in which case it is zero.
const (
	commitmentSize         = RandomSize + 32 + 32 + 20 + 1 + 32
	commitmentSizeNoSubID  = RandomSize + 32 + 32 + 20 + 1
	commitmentTokenAddrLen = 20
)

// Role identifies which of a wallet's two blinded keys opened a commitment.
type Role uint8

const (
	RoleUnrecognized Role = iota
	RoleReceiver
	RoleSender
)

// EncryptCommitment seals a note into the commitment ciphertext format under
// sharedKey. The layout only fits 20-byte token addresses.
func EncryptCommitment(n *Note, sharedKey []byte) (*crypto.Ciphertext, error) {
	address, err := bytesutil.FromHex(n.Token.TokenAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: token address: %v", ErrMalformedNote, err)
	}
	if len(address) != commitmentTokenAddrLen {
		return nil, fmt.Errorf("%w: commitment token address must be %d bytes, got %d",
			ErrMalformedNote, commitmentTokenAddrLen, len(address))
	}
	npkBytes, err := bytesutil.BigIntToBytes(n.NotePublicKey, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: npk: %v", ErrMalformedNote, err)
	}
	valueBytes, err := bytesutil.BigIntToBytes(n.Value, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: value: %v", ErrMalformedNote, err)
	}
	subID, err := bytesutil.FromHex(n.Token.TokenSubID)
	if err != nil {
		return nil, fmt.Errorf("%w: token sub-ID: %v", ErrMalformedNote, err)
	}
	subIDBytes, err := bytesutil.PadToLength(subID, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: token sub-ID: %v", ErrMalformedNote, err)
	}

	plaintext := make([]byte, 0, commitmentSize)
	plaintext = append(plaintext, n.Random...)
	plaintext = append(plaintext, npkBytes...)
	plaintext = append(plaintext, valueBytes...)
	plaintext = append(plaintext, address...)
	plaintext = append(plaintext, byte(n.Token.TokenType))
	plaintext = append(plaintext, subIDBytes...)

	return crypto.EncryptGCM([][]byte{plaintext}, sharedKey)
}

// DecryptCommitment probes a commitment ciphertext with one candidate blinded
// viewing key. The false return means the ciphertext is not addressed to the
// holder of viewingPrivateKey under that blinded key.
func DecryptCommitment(ct *crypto.Ciphertext, viewingPrivateKey, blindedKey []byte) (*Note, bool) {
	sharedKey, ok := crypto.SharedSymmetricKey(viewingPrivateKey, blindedKey)
	if !ok {
		return nil, false
	}
	blocks, err := crypto.DecryptGCM(ct, sharedKey)
	if err != nil {
		return nil, false
	}
	var plaintext []byte
	for _, block := range blocks {
		plaintext = append(plaintext, block...)
	}
	return parseCommitment(plaintext)
}

// DecryptCommitmentAsReceiverOrSender attempts the receiver role first, then
// the sender role: a wallet must recognize its own notes whether it was payee
// or payer. The shared key pairs cross-wise, so the receiver attempt combines
// the wallet's viewing key with the sender's blinded key and vice versa. Both
// attempts failing is terminal for this ciphertext.
func DecryptCommitmentAsReceiverOrSender(ct *crypto.Ciphertext, viewingPrivateKey, blindedSenderKey, blindedReceiverKey []byte) (*Note, Role) {
	if n, ok := DecryptCommitment(ct, viewingPrivateKey, blindedSenderKey); ok {
		return n, RoleReceiver
	}
	if n, ok := DecryptCommitment(ct, viewingPrivateKey, blindedReceiverKey); ok {
		return n, RoleSender
	}
	return nil, RoleUnrecognized
}

// parseCommitment decodes the fixed plaintext layout into a transact-shaped
// note. The commitment does not carry receiver address data, so the receiver
// field stays zero; derived fields are recomputed from the decoded values.
func parseCommitment(plaintext []byte) (*Note, bool) {
	if len(plaintext) != commitmentSize && len(plaintext) != commitmentSizeNoSubID {
		return nil, false
	}
	random := bytesutil.Copy(plaintext[0:16])
	npk := bytesutil.BigIntFromBytes(plaintext[16:48])
	value := bytesutil.BigIntFromBytes(plaintext[48:80])
	address := plaintext[80:100]
	tokenType := token.Type(plaintext[100])

	subID := make([]byte, 32)
	if len(plaintext) == commitmentSize {
		copy(subID, plaintext[101:])
	}

	if tokenType != token.ERC20 && tokenType != token.ERC721 && tokenType != token.ERC1155 {
		return nil, false
	}
	tokenData := token.Data{
		TokenType:    tokenType,
		TokenAddress: "0x" + bytesutil.ToHex(address),
		TokenSubID:   "0x" + bytesutil.ToHex(subID),
	}
	tokenHash, err := token.Hash(tokenData)
	if err != nil {
		return nil, false
	}
	hash, err := NoteHash(npk, tokenData, value)
	if err != nil {
		return nil, false
	}
	return &Note{
		Kind:          KindTransact,
		NotePublicKey: npk,
		Value:         value,
		Token:         tokenData,
		TokenHash:     tokenHash,
		Random:        random,
		Transact:      &TransactFields{Hash: hash},
	}, true
}
