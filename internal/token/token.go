// token.go - Token identity hashing and shape validation.
//
// The token hash is the fixed-size commitment to a token carried inside note
// commitments. ERC20 tokens hash by identity-preserving padding of the
// contract address; NFT types hash the (type, address, subID) triple with
// keccak256 reduced into the BN254 scalar field so the result is always a
// valid circuit input.

package token

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"

	"zkwallet/internal/bytesutil"
)

// Type discriminates the supported token standards.
type Type uint8

const (
	ERC20 Type = iota
	ERC721
	ERC1155
)

// Errors returned by hashing and validation.
var (
	ErrUnrecognizedTokenType = errors.New("unrecognized token type")
	ErrInvalidToken          = errors.New("invalid token")
)

// snarkPrime is the BN254 scalar field modulus; token hashes must lie below it.
var snarkPrime = fr.Modulus()

// Data identifies one token: its standard, contract address, and sub-ID
// (the collection item for ERC721/1155). Address and SubID are hex strings.
type Data struct {
	TokenType    Type
	TokenAddress string
	TokenSubID   string
}

// Hash computes the 32-byte token hash for data.
func Hash(data Data) ([]byte, error) {
	switch data.TokenType {
	case ERC20:
		address, err := bytesutil.FromHex(data.TokenAddress)
		if err != nil {
			return nil, fmt.Errorf("%w: token address: %v", ErrInvalidToken, err)
		}
		padded, err := bytesutil.PadToLength(address, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: token address: %v", ErrInvalidToken, err)
		}
		return padded, nil

	case ERC721, ERC1155:
		preimage, err := hashPreimage(data)
		if err != nil {
			return nil, err
		}
		keccak := sha3.NewLegacyKeccak256()
		keccak.Write(preimage)
		digest := bytesutil.BigIntFromBytes(keccak.Sum(nil))
		digest.Mod(digest, snarkPrime)
		return bytesutil.BigIntToBytes(digest, 32)

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnrecognizedTokenType, data.TokenType)
	}
}

// hashPreimage lays out pad32(tokenType) || pad32(tokenAddress) || pad32(tokenSubID).
func hashPreimage(data Data) ([]byte, error) {
	typeBytes, err := bytesutil.BigIntToBytes(big.NewInt(int64(data.TokenType)), 32)
	if err != nil {
		return nil, fmt.Errorf("%w: token type: %v", ErrInvalidToken, err)
	}
	address, err := bytesutil.FromHex(data.TokenAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: token address: %v", ErrInvalidToken, err)
	}
	addressBytes, err := bytesutil.PadToLength(address, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: token address: %v", ErrInvalidToken, err)
	}
	subID, err := bytesutil.FromHex(data.TokenSubID)
	if err != nil {
		return nil, fmt.Errorf("%w: token sub-ID: %v", ErrInvalidToken, err)
	}
	subIDBytes, err := bytesutil.PadToLength(subID, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: token sub-ID: %v", ErrInvalidToken, err)
	}
	preimage := make([]byte, 0, 96)
	preimage = append(preimage, typeBytes...)
	preimage = append(preimage, addressBytes...)
	preimage = append(preimage, subIDBytes...)
	return preimage, nil
}

// AssertValidNoteToken enforces the per-standard shape rules for a token that
// is about to be committed into a note of the given value.
func AssertValidNoteToken(data Data, value *big.Int) error {
	switch data.TokenType {
	case ERC20:
		address, err := bytesutil.FromHex(data.TokenAddress)
		if err != nil {
			return fmt.Errorf("%w: token address: %v", ErrInvalidToken, err)
		}
		if len(address) != 20 && len(address) != 32 {
			return fmt.Errorf("%w: ERC20 address must be 20 or 32 bytes, got %d", ErrInvalidToken, len(address))
		}
		zero, err := subIDIsZero(data.TokenSubID)
		if err != nil {
			return err
		}
		if !zero {
			return fmt.Errorf("%w: ERC20 token sub-ID must be zero", ErrInvalidToken)
		}
		return nil

	case ERC721:
		zero, err := subIDIsZero(data.TokenSubID)
		if err != nil {
			return err
		}
		if zero {
			return fmt.Errorf("%w: ERC721 token requires a sub-ID", ErrInvalidToken)
		}
		if value == nil || value.Cmp(big.NewInt(1)) != 0 {
			return fmt.Errorf("%w: ERC721 note value must be 1", ErrInvalidToken)
		}
		return nil

	case ERC1155:
		zero, err := subIDIsZero(data.TokenSubID)
		if err != nil {
			return err
		}
		if zero {
			return fmt.Errorf("%w: ERC1155 token requires a sub-ID", ErrInvalidToken)
		}
		return nil

	default:
		return fmt.Errorf("%w: %d", ErrUnrecognizedTokenType, data.TokenType)
	}
}

func subIDIsZero(subID string) (bool, error) {
	b, err := bytesutil.FromHex(subID)
	if err != nil {
		return false, fmt.Errorf("%w: token sub-ID: %v", ErrInvalidToken, err)
	}
	return bytesutil.BigIntFromBytes(b).Sign() == 0, nil
}
