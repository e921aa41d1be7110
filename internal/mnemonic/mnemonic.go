// mnemonic.go - Thin wrapper over BIP-39 mnemonic phrases.

package mnemonic

import (
	"fmt"

	bip39 "github.com/tyler-smith/go-bip39"
)

// Generate creates a fresh mnemonic phrase from the given entropy strength in
// bits (128, 192 or 256).
func Generate(strength int) (string, error) {
	entropy, err := bip39.NewEntropy(strength)
	if err != nil {
		return "", fmt.Errorf("generating entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("building mnemonic: %w", err)
	}
	return phrase, nil
}

// Validate reports whether the phrase is a well-formed BIP-39 mnemonic with a
// valid checksum.
func Validate(phrase string) bool {
	return bip39.IsMnemonicValid(phrase)
}

// ToSeed stretches a mnemonic and optional password to the 64-byte seed that
// roots key derivation.
func ToSeed(phrase, password string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(phrase, password)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	return seed, nil
}

// ToEntropy recovers the entropy a mnemonic encodes.
func ToEntropy(phrase string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	return entropy, nil
}

// FromEntropy encodes raw entropy as a mnemonic phrase.
func FromEntropy(entropy []byte) (string, error) {
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("invalid entropy: %w", err)
	}
	return phrase, nil
}
