// aesgcm.go - AES-256-GCM encryption of note payloads.
//
// The protocol uses 16-byte GCM nonces, not the default 12, and transports
// the authentication tag as a separate field. Plaintext block boundaries are
// preserved across encrypt and decrypt because the note codec addresses
// individual blocks.

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"zkwallet/internal/bytesutil"
)

const (
	// GCMNonceSize is the protocol's nonce length.
	GCMNonceSize = 16
	gcmTagSize   = 16
)

// ErrAuthenticationFailed is returned when the GCM tag does not verify; the
// ciphertext was not produced under the given key or has been altered.
var ErrAuthenticationFailed = errors.New("aes-gcm authentication failed")

// Ciphertext is an AES-GCM sealed payload: 16-byte IV, 16-byte tag, and the
// encrypted blocks in their original order and sizes.
type Ciphertext struct {
	IV   []byte
	Tag  []byte
	Data [][]byte
}

// EncryptGCM seals the plaintext blocks under a 32-byte key with a fresh
// random nonce. Block boundaries are preserved in the output.
func EncryptGCM(blocks [][]byte, key []byte) (*Ciphertext, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	iv := RandomBytes(GCMNonceSize)

	var plaintext []byte
	for _, block := range blocks {
		plaintext = append(plaintext, block...)
	}
	sealed := aead.Seal(nil, iv, plaintext, nil)
	tag := sealed[len(plaintext):]

	data := make([][]byte, len(blocks))
	offset := 0
	for i, block := range blocks {
		data[i] = bytesutil.Copy(sealed[offset : offset+len(block)])
		offset += len(block)
	}
	return &Ciphertext{IV: iv, Tag: tag, Data: data}, nil
}

// DecryptGCM opens a sealed payload, returning the plaintext blocks with the
// boundaries of the ciphertext blocks. Tag mismatch is reported as
// ErrAuthenticationFailed, distinct from structural errors.
func DecryptGCM(ct *Ciphertext, key []byte) ([][]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ct.IV) != GCMNonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d",
			bytesutil.ErrInvalidLength, GCMNonceSize, len(ct.IV))
	}
	if len(ct.Tag) != gcmTagSize {
		return nil, fmt.Errorf("%w: tag must be %d bytes, got %d",
			bytesutil.ErrInvalidLength, gcmTagSize, len(ct.Tag))
	}

	var sealed []byte
	for _, block := range ct.Data {
		sealed = append(sealed, block...)
	}
	sealed = append(sealed, ct.Tag...)

	plaintext, err := aead.Open(nil, ct.IV, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	blocks := make([][]byte, len(ct.Data))
	offset := 0
	for i, block := range ct.Data {
		blocks[i] = bytesutil.Copy(plaintext[offset : offset+len(block)])
		offset += len(block)
	}
	return blocks, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: key must be 32 bytes, got %d", bytesutil.ErrInvalidLength, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating aes cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, GCMNonceSize)
	if err != nil {
		return nil, fmt.Errorf("creating gcm: %w", err)
	}
	return aead, nil
}
