// wallet.go - The wallet key hierarchy: spending, viewing, nullifying, and
// master-public keys derived from one mnemonic and account index.
//
// Construction is single-phase: New computes the full hierarchy before
// returning, so an initialized-but-keyless wallet is unrepresentable and
// every accessor is total. Key material is derived once and read-only for
// the wallet's lifetime.

package wallet

import (
	"fmt"
	"math/big"

	"zkwallet/internal/bip32"
	"zkwallet/internal/bytesutil"
	"zkwallet/internal/crypto"
	"zkwallet/internal/mnemonic"
)

// Fixed hardened derivation paths. Spending and viewing trees branch at the
// purpose level, so their chain keys never collide despite the shared seed.
const (
	spendingKeyPathFormat = "m/44'/1984'/0'/0'/%d'"
	viewingKeyPathFormat  = "m/420'/1984'/0'/0'/%d'"
)

// SpendingKeyPair is a babyjubjub EdDSA key pair. The public point is held in
// the canonical form of two 32-byte big-endian field elements.
type SpendingKeyPair struct {
	PrivateKey []byte
	PubkeyX    []byte
	PubkeyY    []byte
}

// ViewingKeyPair is an ed25519 key pair; the public key is the compressed
// 32-byte point.
type ViewingKeyPair struct {
	PrivateKey []byte
	Pubkey     []byte
}

// Chain tags an address with the network it was issued for.
type Chain struct {
	Type uint8
	ID   uint64
}

// AddressData identifies one logical wallet endpoint.
type AddressData struct {
	MasterPublicKey  *big.Int
	ViewingPublicKey []byte
	Chain            *Chain
	Version          uint8
}

// Wallet holds the four derived key materials. It is immutable after New.
type Wallet struct {
	spendingKeyPair SpendingKeyPair
	viewingKeyPair  ViewingKeyPair
	nullifyingKey   *big.Int
	masterPublicKey *big.Int
}

// New derives the complete key hierarchy for a mnemonic and account index.
// crypto.Initialize must have completed; otherwise ErrNotInitialized
// propagates from the Poseidon calls.
func New(mnemonicPhrase string, index uint32) (*Wallet, error) {
	seed, err := mnemonic.ToSeed(mnemonicPhrase, "")
	if err != nil {
		return nil, err
	}

	spendingNode, err := bip32.DeriveNodeFromPath(seed, fmt.Sprintf(spendingKeyPathFormat, index))
	if err != nil {
		return nil, fmt.Errorf("deriving spending node: %w", err)
	}
	viewingNode, err := bip32.DeriveNodeFromPath(seed, fmt.Sprintf(viewingKeyPathFormat, index))
	if err != nil {
		return nil, fmt.Errorf("deriving viewing node: %w", err)
	}

	pubX, pubY, err := crypto.SpendingPublicKey(spendingNode.ChainKey)
	if err != nil {
		return nil, fmt.Errorf("deriving spending public key: %w", err)
	}

	viewingPub, err := crypto.ViewingPublicKey(viewingNode.ChainKey)
	if err != nil {
		return nil, fmt.Errorf("deriving viewing public key: %w", err)
	}

	// The nullifying key is a one-way commitment to the viewing private key.
	// It reuses the viewing node's chain key with no further domain
	// separation; changing that would change every issued address.
	// TODO: derive a dedicated child chain key for the nullifying key when
	// the coordinated protocol upgrade for new address formats lands.
	nullifyingKey, err := crypto.Poseidon(bytesutil.BigIntFromBytes(viewingNode.ChainKey))
	if err != nil {
		return nil, fmt.Errorf("deriving nullifying key: %w", err)
	}

	x, y := crypto.SpendingPointToInts(pubX, pubY)
	masterPublicKey, err := crypto.Poseidon(x, y, nullifyingKey)
	if err != nil {
		return nil, fmt.Errorf("deriving master public key: %w", err)
	}

	return &Wallet{
		spendingKeyPair: SpendingKeyPair{
			PrivateKey: spendingNode.ChainKey,
			PubkeyX:    pubX,
			PubkeyY:    pubY,
		},
		viewingKeyPair: ViewingKeyPair{
			PrivateKey: viewingNode.ChainKey,
			Pubkey:     viewingPub,
		},
		nullifyingKey:   nullifyingKey,
		masterPublicKey: masterPublicKey,
	}, nil
}

// SpendingKeyPair returns a copy of the wallet's spending key pair.
func (w *Wallet) SpendingKeyPair() SpendingKeyPair {
	return SpendingKeyPair{
		PrivateKey: bytesutil.Copy(w.spendingKeyPair.PrivateKey),
		PubkeyX:    bytesutil.Copy(w.spendingKeyPair.PubkeyX),
		PubkeyY:    bytesutil.Copy(w.spendingKeyPair.PubkeyY),
	}
}

// ViewingKeyPair returns a copy of the wallet's viewing key pair.
func (w *Wallet) ViewingKeyPair() ViewingKeyPair {
	return ViewingKeyPair{
		PrivateKey: bytesutil.Copy(w.viewingKeyPair.PrivateKey),
		Pubkey:     bytesutil.Copy(w.viewingKeyPair.Pubkey),
	}
}

// NullifyingKey returns the Poseidon commitment to the viewing private key.
func (w *Wallet) NullifyingKey() *big.Int {
	return new(big.Int).Set(w.nullifyingKey)
}

// MasterPublicKey returns the wallet's externally-visible identity.
func (w *Wallet) MasterPublicKey() *big.Int {
	return new(big.Int).Set(w.masterPublicKey)
}

// AddressData assembles the address record for this wallet on a chain.
func (w *Wallet) AddressData(chain *Chain, version uint8) AddressData {
	return AddressData{
		MasterPublicKey:  w.MasterPublicKey(),
		ViewingPublicKey: bytesutil.Copy(w.viewingKeyPair.Pubkey),
		Chain:            chain,
		Version:          version,
	}
}
