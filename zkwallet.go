// zkwallet.go - Public surface of the shielded wallet engine.
//
// Re-exports the construction entry points from the internal packages so
// callers import one package. Key derivation, note construction, the codec
// and the trial-decryption flow all live in internal/; this file only
// aliases them.

// Package zkwallet implements the key hierarchy and confidential note codec
// of a shielded-balance wallet.
//
// Overview:
//   - Deterministic key hierarchy from a BIP-39 mnemonic: babyjubjub spending
//     keys at m/44'/1984'/0'/0'/{index}', ed25519 viewing keys at
//     m/420'/1984'/0'/0'/{index}', Poseidon-derived nullifying and master
//     public keys
//   - Confidential notes (shield, transact, unshield) with Poseidon hashing,
//     ephemeral key blinding, AES-256-GCM commitment encryption and
//     role-aware trial decryption
//   - Current and legacy serialization formats with structural detection and
//     a msgpack binary encoding
//
// Call Initialize once before any key or note operation; every primitive
// entry point reports ErrNotInitialized until it has run.
package zkwallet

import (
	"math/big"

	"zkwallet/internal/crypto"
	"zkwallet/internal/mnemonic"
	"zkwallet/internal/note"
	"zkwallet/internal/token"
	"zkwallet/internal/wallet"
)

// Primitive gate.

// ErrNotInitialized is returned by key and note operations before a
// successful Initialize.
var ErrNotInitialized = crypto.ErrNotInitialized

// Initialize runs the one-time known-answer self-check of the underlying
// primitives. It is idempotent and safe for concurrent use.
func Initialize() error { return crypto.Initialize() }

// Mnemonics.

// GenerateMnemonic produces a fresh BIP-39 phrase with the given entropy
// strength in bits (128 for 12 words, 256 for 24).
func GenerateMnemonic(strength int) (string, error) { return mnemonic.Generate(strength) }

// ValidateMnemonic reports whether phrase is a well-formed BIP-39 mnemonic.
func ValidateMnemonic(phrase string) bool { return mnemonic.Validate(phrase) }

// MnemonicToSeed stretches a validated phrase (plus optional password) into
// the 64-byte derivation seed.
func MnemonicToSeed(phrase, password string) ([]byte, error) {
	return mnemonic.ToSeed(phrase, password)
}

// MnemonicToEntropy recovers the entropy a phrase encodes.
func MnemonicToEntropy(phrase string) ([]byte, error) { return mnemonic.ToEntropy(phrase) }

// EntropyToMnemonic is the inverse of MnemonicToEntropy.
func EntropyToMnemonic(entropy []byte) (string, error) { return mnemonic.FromEntropy(entropy) }

// Wallet key hierarchy.

type (
	Wallet          = wallet.Wallet
	SpendingKeyPair = wallet.SpendingKeyPair
	ViewingKeyPair  = wallet.ViewingKeyPair
	Chain           = wallet.Chain
	AddressData     = wallet.AddressData
)

// NewWallet derives the full key hierarchy for one account index from a
// BIP-39 mnemonic.
func NewWallet(mnemonicPhrase string, index uint32) (*Wallet, error) {
	return wallet.New(mnemonicPhrase, index)
}

// Viewing key blinding and shared secrets.

// RandomBytes returns n bytes from crypto/rand. It panics if the system
// source fails.
func RandomBytes(n int) []byte { return crypto.RandomBytes(n) }

// NoteBlindingKeys blinds both parties' viewing public keys with the scalar
// derived from sharedRandom and senderRandom.
func NoteBlindingKeys(senderPublicKey, receiverPublicKey, sharedRandom, senderRandom []byte) (blindedSender, blindedReceiver []byte, err error) {
	return crypto.NoteBlindingKeys(senderPublicKey, receiverPublicKey, sharedRandom, senderRandom)
}

// UnblindNoteKey inverts the blinding of NoteBlindingKeys. The false return
// means the key or the randomness does not unblind to a valid point.
func UnblindNoteKey(blindedKey, sharedRandom, senderRandom []byte) ([]byte, bool) {
	return crypto.UnblindNoteKey(blindedKey, sharedRandom, senderRandom)
}

// SharedSymmetricKey derives the AES key both sides of a note agree on. The
// false return means publicKey is not a valid curve point.
func SharedSymmetricKey(privateKey, publicKey []byte) ([]byte, bool) {
	return crypto.SharedSymmetricKey(privateKey, publicKey)
}

// Tokens.

type (
	TokenType = token.Type
	TokenData = token.Data
)

const (
	ERC20   = token.ERC20
	ERC721  = token.ERC721
	ERC1155 = token.ERC1155
)

var (
	ErrUnrecognizedTokenType = token.ErrUnrecognizedTokenType
	ErrInvalidToken          = token.ErrInvalidToken
)

// TokenHash maps token data to its 32-byte field representation.
func TokenHash(data TokenData) ([]byte, error) { return token.Hash(data) }

// AssertValidNoteToken checks the token shape rules for a note carrying
// value.
func AssertValidNoteToken(data TokenData, value *big.Int) error {
	return token.AssertValidNoteToken(data, value)
}

// Notes.

type (
	Note           = note.Note
	NoteKind       = note.Kind
	ShieldFields   = note.ShieldFields
	TransactFields = note.TransactFields
	UnshieldFields = note.UnshieldFields
	SerializedNote = note.SerializedNote
	Ciphertext     = crypto.Ciphertext
	Role           = note.Role
)

const (
	KindShield   = note.KindShield
	KindTransact = note.KindTransact
	KindUnshield = note.KindUnshield

	RoleUnrecognized = note.RoleUnrecognized
	RoleReceiver     = note.RoleReceiver
	RoleSender       = note.RoleSender

	// NoteRandomSize is the byte length of a note's random field.
	NoteRandomSize = note.RandomSize
)

var (
	ErrMalformedNote = note.ErrMalformedNote
	ErrLegacyFormat  = note.ErrLegacyFormat
)

// NewShieldNote builds a shield note addressed to masterPublicKey.
func NewShieldNote(masterPublicKey *big.Int, random []byte, value *big.Int, tokenData TokenData) (*Note, error) {
	return note.NewShield(masterPublicKey, random, value, tokenData)
}

// NewTransactNote builds a transact note to receiver, optionally tagged with
// sender address data.
func NewTransactNote(receiver AddressData, sender *AddressData, random []byte, value *big.Int, tokenData TokenData) (*Note, error) {
	return note.NewTransact(receiver, sender, random, value, tokenData)
}

// NewUnshieldNote builds an unshield note paying out to toAddress.
func NewUnshieldNote(toAddress string, value *big.Int, tokenData TokenData, allowOverride bool) (*Note, error) {
	return note.NewUnshield(toAddress, value, tokenData, allowOverride)
}

// SerializeNote encodes a note in the current format.
func SerializeNote(n *Note) (*SerializedNote, error) { return note.Serialize(n) }

// DeserializeNote decodes a current-format note. Legacy payloads are
// rejected with ErrLegacyFormat; decrypt those with DeserializeLegacyNote.
func DeserializeNote(s *SerializedNote) (*Note, error) { return note.Deserialize(s) }

// SerializeLegacyNote encodes a transact note in the legacy format,
// encrypting its random under sharedKey.
func SerializeLegacyNote(n *Note, sharedKey []byte) (*SerializedNote, error) {
	return note.SerializeLegacy(n, sharedKey)
}

// DeserializeLegacyNote decodes and decrypts a legacy-format note.
func DeserializeLegacyNote(s *SerializedNote, sharedKey []byte) (*Note, error) {
	return note.DeserializeLegacy(s, sharedKey)
}

// EncodeNoteBinary marshals a serialized note to msgpack bytes.
func EncodeNoteBinary(s *SerializedNote) ([]byte, error) { return note.EncodeBinary(s) }

// DecodeNoteBinary unmarshals msgpack bytes produced by EncodeNoteBinary.
func DecodeNoteBinary(data []byte) (*SerializedNote, error) { return note.DecodeBinary(data) }

// EncryptCommitment seals a note into the on-chain commitment ciphertext
// under sharedKey.
func EncryptCommitment(n *Note, sharedKey []byte) (*Ciphertext, error) {
	return note.EncryptCommitment(n, sharedKey)
}

// DecryptCommitment probes a commitment ciphertext with one candidate
// blinded key. The false return means the note is not addressed to this
// viewing key.
func DecryptCommitment(ct *Ciphertext, viewingPrivateKey, blindedKey []byte) (*Note, bool) {
	return note.DecryptCommitment(ct, viewingPrivateKey, blindedKey)
}

// DecryptCommitmentAsReceiverOrSender tries both wallet roles against a
// commitment ciphertext and reports which one, if either, opened it.
func DecryptCommitmentAsReceiverOrSender(ct *Ciphertext, viewingPrivateKey, blindedSenderKey, blindedReceiverKey []byte) (*Note, Role) {
	return note.DecryptCommitmentAsReceiverOrSender(ct, viewingPrivateKey, blindedSenderKey, blindedReceiverKey)
}
