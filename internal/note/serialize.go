// serialize.go - The current wire format for notes.
//
// Every variant serializes to one fixed key-value structure with big integers
// stringified in decimal and byte arrays hex-encoded; the binary encoding of
// that structure is msgpack. Deserialization is the exact left inverse and
// recomputes every derived field (token hash, note hash) rather than trusting
// the input. The legacy transact format is recognized structurally by the
// presence of encryptedRandom (see legacy.go).

package note

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vmihailenco/msgpack/v5"

	"zkwallet/internal/bytesutil"
	"zkwallet/internal/token"
	"zkwallet/internal/wallet"
)

// ErrLegacyFormat is returned when Deserialize meets a legacy blob; legacy
// notes carry an encrypted random and need the shared key, so they go through
// DeserializeLegacy instead.
var ErrLegacyFormat = errors.New("legacy note format: use DeserializeLegacy with a shared key")

// SerializedAddress is the wire form of wallet.AddressData.
type SerializedAddress struct {
	MasterPublicKey  string  `msgpack:"masterPublicKey"`
	ViewingPublicKey string  `msgpack:"viewingPublicKey"`
	ChainType        *uint8  `msgpack:"chainType,omitempty"`
	ChainID          *uint64 `msgpack:"chainID,omitempty"`
	Version          *uint8  `msgpack:"version,omitempty"`
}

// SerializedNote is the wire form of a note. Exactly the fields of one
// variant are populated; the legacy fields appear only in blobs produced by
// SerializeLegacy.
type SerializedNote struct {
	NPK          string `msgpack:"npk"`
	Value        string `msgpack:"value"`
	TokenType    uint8  `msgpack:"tokenType"`
	TokenAddress string `msgpack:"tokenAddress"`
	TokenSubID   string `msgpack:"tokenSubID"`
	Random       string `msgpack:"random,omitempty"`

	// Shield.
	MasterPublicKey string `msgpack:"masterPublicKey,omitempty"`

	// Transact.
	Hash         string             `msgpack:"hash,omitempty"`
	Receiver     *SerializedAddress `msgpack:"receiverAddress,omitempty"`
	Sender       *SerializedAddress `msgpack:"senderAddress,omitempty"`
	OutputType   *uint8             `msgpack:"outputType,omitempty"`
	WalletSource string             `msgpack:"walletSource,omitempty"`
	SenderRandom string             `msgpack:"senderRandom,omitempty"`
	MemoText     string             `msgpack:"memoText,omitempty"`
	ShieldFee    string             `msgpack:"shieldFee,omitempty"`
	BlockNumber  *uint64            `msgpack:"blockNumber,omitempty"`

	// Unshield.
	ToAddress     string `msgpack:"toAddress,omitempty"`
	AllowOverride *bool  `msgpack:"allowOverride,omitempty"`

	// Legacy transact only.
	EncryptedRandom  []string `msgpack:"encryptedRandom,omitempty"`
	RecipientAddress string   `msgpack:"recipientAddress,omitempty"`
}

// Serialize converts a note to its wire form. The match over the kind tag is
// exhaustive; an unknown tag is a constructed-by-hand note and rejected.
func Serialize(n *Note) (*SerializedNote, error) {
	base, err := serializeBase(n)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case KindShield:
		if n.Shield == nil {
			return nil, fmt.Errorf("%w: shield note missing shield fields", ErrMalformedNote)
		}
		base.MasterPublicKey = n.Shield.MasterPublicKey.String()
		return base, nil

	case KindTransact:
		if n.Transact == nil {
			return nil, fmt.Errorf("%w: transact note missing transact fields", ErrMalformedNote)
		}
		hashHex, err := hexFromBigInt(n.Transact.Hash)
		if err != nil {
			return nil, err
		}
		base.Hash = hashHex
		base.Receiver = serializeAddress(&n.Transact.Receiver)
		base.Sender = serializeAddress(n.Transact.Sender)
		base.OutputType = n.Transact.OutputType
		base.WalletSource = n.Transact.WalletSource
		if len(n.Transact.SenderRandom) > 0 {
			base.SenderRandom = bytesutil.ToHex(n.Transact.SenderRandom)
		}
		base.MemoText = n.Transact.MemoText
		if n.Transact.ShieldFee != nil {
			base.ShieldFee = n.Transact.ShieldFee.String()
		}
		base.BlockNumber = n.Transact.BlockNumber
		return base, nil

	case KindUnshield:
		if n.Unshield == nil {
			return nil, fmt.Errorf("%w: unshield note missing unshield fields", ErrMalformedNote)
		}
		hashHex, err := hexFromBigInt(n.Unshield.Hash)
		if err != nil {
			return nil, err
		}
		base.Hash = hashHex
		base.ToAddress = n.Unshield.ToAddress
		allowOverride := n.Unshield.AllowOverride
		base.AllowOverride = &allowOverride
		return base, nil

	default:
		return nil, fmt.Errorf("%w: unknown note kind %d", ErrMalformedNote, n.Kind)
	}
}

// Deserialize rebuilds a note from its wire form, recomputing all derived
// fields. Structurally incomplete input fails with ErrMalformedNote.
func Deserialize(s *SerializedNote) (*Note, error) {
	if len(s.EncryptedRandom) > 0 {
		return nil, ErrLegacyFormat
	}

	npk, value, tokenData, random, err := deserializeBase(s)
	if err != nil {
		return nil, err
	}

	switch {
	case s.MasterPublicKey != "":
		masterPublicKey, ok := new(big.Int).SetString(s.MasterPublicKey, 10)
		if !ok {
			return nil, fmt.Errorf("%w: master public key %q", ErrMalformedNote, s.MasterPublicKey)
		}
		n, err := NewShield(masterPublicKey, random, value, tokenData)
		if err != nil {
			return nil, err
		}
		if n.NotePublicKey.Cmp(npk) != 0 {
			return nil, fmt.Errorf("%w: note public key does not commit to master public key and random", ErrMalformedNote)
		}
		return n, nil

	case s.ToAddress != "":
		if s.AllowOverride == nil {
			return nil, fmt.Errorf("%w: unshield note missing allowOverride", ErrMalformedNote)
		}
		n, err := NewUnshield(s.ToAddress, value, tokenData, *s.AllowOverride)
		if err != nil {
			return nil, err
		}
		if n.NotePublicKey.Cmp(npk) != 0 {
			return nil, fmt.Errorf("%w: unshield note public key does not match to-address", ErrMalformedNote)
		}
		return n, nil

	case s.Receiver != nil:
		receiver, err := deserializeAddress(s.Receiver)
		if err != nil {
			return nil, err
		}
		var sender *wallet.AddressData
		if s.Sender != nil {
			sender, err = deserializeAddress(s.Sender)
			if err != nil {
				return nil, err
			}
		}
		n, err := NewTransact(*receiver, sender, random, value, tokenData)
		if err != nil {
			return nil, err
		}
		if n.NotePublicKey.Cmp(npk) != 0 {
			return nil, fmt.Errorf("%w: note public key does not commit to receiver and random", ErrMalformedNote)
		}
		if err := applyOutputData(n, s); err != nil {
			return nil, err
		}
		return n, nil

	default:
		return nil, fmt.Errorf("%w: no variant fields present", ErrMalformedNote)
	}
}

// EncodeBinary produces the msgpack encoding of a serialized note.
func EncodeBinary(s *SerializedNote) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding note: %w", err)
	}
	return data, nil
}

// DecodeBinary parses a msgpack-encoded serialized note.
func DecodeBinary(data []byte) (*SerializedNote, error) {
	var s SerializedNote
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNote, err)
	}
	return &s, nil
}

func serializeBase(n *Note) (*SerializedNote, error) {
	npkHex, err := hexFromBigInt(n.NotePublicKey)
	if err != nil {
		return nil, err
	}
	return &SerializedNote{
		NPK:          npkHex,
		Value:        n.Value.String(),
		TokenType:    uint8(n.Token.TokenType),
		TokenAddress: n.Token.TokenAddress,
		TokenSubID:   n.Token.TokenSubID,
		Random:       bytesutil.ToHex(n.Random),
	}, nil
}

func deserializeBase(s *SerializedNote) (npk, value *big.Int, tokenData token.Data, random []byte, err error) {
	if s.NPK == "" || s.Value == "" || s.TokenAddress == "" {
		return nil, nil, token.Data{}, nil, fmt.Errorf("%w: missing base fields", ErrMalformedNote)
	}
	npkBytes, err := bytesutil.FromHex(s.NPK)
	if err != nil {
		return nil, nil, token.Data{}, nil, fmt.Errorf("%w: npk: %v", ErrMalformedNote, err)
	}
	npk = bytesutil.BigIntFromBytes(npkBytes)
	value, ok := new(big.Int).SetString(s.Value, 10)
	if !ok {
		return nil, nil, token.Data{}, nil, fmt.Errorf("%w: value %q", ErrMalformedNote, s.Value)
	}
	tokenData = token.Data{
		TokenType:    token.Type(s.TokenType),
		TokenAddress: s.TokenAddress,
		TokenSubID:   s.TokenSubID,
	}
	random, err = bytesutil.FromHex(s.Random)
	if err != nil {
		return nil, nil, token.Data{}, nil, fmt.Errorf("%w: random: %v", ErrMalformedNote, err)
	}
	return npk, value, tokenData, random, nil
}

func applyOutputData(n *Note, s *SerializedNote) error {
	n.Transact.OutputType = s.OutputType
	n.Transact.WalletSource = s.WalletSource
	if s.SenderRandom != "" {
		senderRandom, err := bytesutil.FromHex(s.SenderRandom)
		if err != nil {
			return fmt.Errorf("%w: sender random: %v", ErrMalformedNote, err)
		}
		n.Transact.SenderRandom = senderRandom
	}
	n.Transact.MemoText = s.MemoText
	if s.ShieldFee != "" {
		fee, ok := new(big.Int).SetString(s.ShieldFee, 10)
		if !ok {
			return fmt.Errorf("%w: shield fee %q", ErrMalformedNote, s.ShieldFee)
		}
		n.Transact.ShieldFee = fee
	}
	n.Transact.BlockNumber = s.BlockNumber
	return nil
}

func serializeAddress(a *wallet.AddressData) *SerializedAddress {
	if a == nil {
		return nil
	}
	out := &SerializedAddress{
		MasterPublicKey:  a.MasterPublicKey.String(),
		ViewingPublicKey: bytesutil.ToHex(a.ViewingPublicKey),
	}
	if a.Chain != nil {
		chainType := a.Chain.Type
		chainID := a.Chain.ID
		out.ChainType = &chainType
		out.ChainID = &chainID
	}
	if a.Version != 0 {
		version := a.Version
		out.Version = &version
	}
	return out
}

func deserializeAddress(s *SerializedAddress) (*wallet.AddressData, error) {
	if s.MasterPublicKey == "" || s.ViewingPublicKey == "" {
		return nil, fmt.Errorf("%w: incomplete address data", ErrMalformedNote)
	}
	masterPublicKey, ok := new(big.Int).SetString(s.MasterPublicKey, 10)
	if !ok {
		return nil, fmt.Errorf("%w: address master public key %q", ErrMalformedNote, s.MasterPublicKey)
	}
	viewingPub, err := bytesutil.FromHex(s.ViewingPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: address viewing public key: %v", ErrMalformedNote, err)
	}
	out := &wallet.AddressData{
		MasterPublicKey:  masterPublicKey,
		ViewingPublicKey: viewingPub,
	}
	if s.ChainType != nil && s.ChainID != nil {
		out.Chain = &wallet.Chain{Type: *s.ChainType, ID: *s.ChainID}
	}
	if s.Version != nil {
		out.Version = *s.Version
	}
	return out, nil
}

// hexFromBigInt renders a field-sized integer as 32-byte zero-padded hex.
func hexFromBigInt(n *big.Int) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%w: missing integer field", ErrMalformedNote)
	}
	b, err := bytesutil.BigIntToBytes(n, 32)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedNote, err)
	}
	return bytesutil.ToHex(b), nil
}
