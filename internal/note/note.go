// note.go - The note type hierarchy and commitment hash formula.
//
// A note is a value object representing one unit of shielded value. The three
// kinds form a closed set: shield (value entering the pool), transact (value
// moving inside the pool), unshield (value leaving the pool). Notes are
// immutable once constructed and hold no key material.

package note

import (
	"errors"
	"fmt"
	"math/big"

	"zkwallet/internal/bytesutil"
	"zkwallet/internal/crypto"
	"zkwallet/internal/token"
	"zkwallet/internal/wallet"
)

// Kind tags the note variant.
type Kind uint8

const (
	KindShield Kind = iota
	KindTransact
	KindUnshield
)

// RandomSize is the length of the per-note random.
const RandomSize = 16

// maxValueBits bounds note values to what the 16-byte commitment field holds.
const maxValueBits = 128

// ErrMalformedNote is returned when a serialized note is structurally
// incomplete or a field fails to parse.
var ErrMalformedNote = errors.New("malformed note")

// Note is the tagged-variant note record. The base fields are always set;
// exactly the variant field matching Kind is non-nil.
type Note struct {
	Kind          Kind
	NotePublicKey *big.Int
	Value         *big.Int
	Token         token.Data
	TokenHash     []byte // always recomputed from Token, never trusted from input
	Random        []byte

	Shield   *ShieldFields
	Transact *TransactFields
	Unshield *UnshieldFields
}

// ShieldFields carries the data specific to a shield note.
type ShieldFields struct {
	MasterPublicKey *big.Int
}

// TransactFields carries the data specific to a transact note. Sender address
// data and the output metadata are optional.
type TransactFields struct {
	Hash     *big.Int
	Receiver wallet.AddressData
	Sender   *wallet.AddressData

	OutputType   *uint8
	WalletSource string
	SenderRandom []byte
	MemoText     string
	ShieldFee    *big.Int
	BlockNumber  *uint64
}

// UnshieldFields carries the data specific to an unshield note. The note
// public key equals the integer form of ToAddress.
type UnshieldFields struct {
	ToAddress     string
	Hash          *big.Int
	AllowOverride bool
}

// NoteHash computes the binding commitment Poseidon(npk, tokenHash, value),
// with the value framed as a 16-byte big-endian integer.
func NoteHash(npk *big.Int, tokenData token.Data, value *big.Int) (*big.Int, error) {
	tokenHash, err := token.Hash(tokenData)
	if err != nil {
		return nil, err
	}
	valueBytes, err := bytesutil.BigIntToBytes(value, RandomSize)
	if err != nil {
		return nil, fmt.Errorf("note value out of range: %w", err)
	}
	return crypto.Poseidon(npk, bytesutil.BigIntFromBytes(tokenHash), bytesutil.BigIntFromBytes(valueBytes))
}

// NewShield builds a shield note. The note public key commits to the owner's
// master public key and the note random: Poseidon(masterPublicKey, random).
func NewShield(masterPublicKey *big.Int, random []byte, value *big.Int, tokenData token.Data) (*Note, error) {
	base, err := newBase(random, value, tokenData)
	if err != nil {
		return nil, err
	}
	npk, err := notePublicKey(masterPublicKey, random)
	if err != nil {
		return nil, err
	}
	base.Kind = KindShield
	base.NotePublicKey = npk
	base.Shield = &ShieldFields{MasterPublicKey: new(big.Int).Set(masterPublicKey)}
	return base, nil
}

// NewTransact builds a transact note addressed to receiver. The note public
// key commits to the receiver's master public key and the note random.
func NewTransact(receiver wallet.AddressData, sender *wallet.AddressData, random []byte, value *big.Int, tokenData token.Data) (*Note, error) {
	base, err := newBase(random, value, tokenData)
	if err != nil {
		return nil, err
	}
	npk, err := notePublicKey(receiver.MasterPublicKey, random)
	if err != nil {
		return nil, err
	}
	hash, err := NoteHash(npk, tokenData, value)
	if err != nil {
		return nil, err
	}
	base.Kind = KindTransact
	base.NotePublicKey = npk
	base.Transact = &TransactFields{Hash: hash, Receiver: receiver, Sender: sender}
	return base, nil
}

// NewUnshield builds an unshield note paying out to a public address. The
// note public key is the address itself, so npk == toAddress by construction.
func NewUnshield(toAddress string, value *big.Int, tokenData token.Data, allowOverride bool) (*Note, error) {
	base, err := newBase(make([]byte, RandomSize), value, tokenData)
	if err != nil {
		return nil, err
	}
	addressBytes, err := bytesutil.FromHex(toAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: to-address: %v", ErrMalformedNote, err)
	}
	npk := bytesutil.BigIntFromBytes(addressBytes)
	hash, err := NoteHash(npk, tokenData, value)
	if err != nil {
		return nil, err
	}
	base.Kind = KindUnshield
	base.NotePublicKey = npk
	base.Unshield = &UnshieldFields{ToAddress: toAddress, Hash: hash, AllowOverride: allowOverride}
	return base, nil
}

// newBase validates and assembles the fields every variant shares.
func newBase(random []byte, value *big.Int, tokenData token.Data) (*Note, error) {
	if len(random) != RandomSize {
		return nil, fmt.Errorf("%w: note random must be %d bytes, got %d",
			bytesutil.ErrInvalidLength, RandomSize, len(random))
	}
	if value == nil || value.Sign() < 0 || value.BitLen() > maxValueBits {
		return nil, fmt.Errorf("%w: note value must be an unsigned %d-bit integer", ErrMalformedNote, maxValueBits)
	}
	if err := token.AssertValidNoteToken(tokenData, value); err != nil {
		return nil, err
	}
	tokenHash, err := token.Hash(tokenData)
	if err != nil {
		return nil, err
	}
	return &Note{
		Value:     new(big.Int).Set(value),
		Token:     tokenData,
		TokenHash: tokenHash,
		Random:    bytesutil.Copy(random),
	}, nil
}

// notePublicKey commits a master public key and note random into the npk.
func notePublicKey(masterPublicKey *big.Int, random []byte) (*big.Int, error) {
	return crypto.Poseidon(masterPublicKey, bytesutil.BigIntFromBytes(random))
}
