// derivation.go - BIP32-style hardened key derivation over HMAC-SHA512.
//
// The tree derives 32-byte chain keys rather than EC private keys: the chain
// key is used directly as derived key material by the wallet layer, and the
// chain code seeds the next derivation step. Only hardened children exist, so
// every step depends exclusively on the parent's private material.

package bip32

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
)

// masterSecret is the HMAC key for master-node derivation. It domain-separates
// this tree from the standard "Bitcoin seed" BIP32 tree.
const masterSecret = "babyjubjub seed"

// hardenedOffset marks an index as hardened, mirroring BIP32.
const hardenedOffset uint32 = 0x80000000

// KeyNode is one node of the derivation tree: 32 bytes of derived key
// material plus 32 bytes of chain code seeding the next step.
type KeyNode struct {
	ChainKey  []byte
	ChainCode []byte
}

// MasterKeyFromSeed computes the root node of the tree from a seed.
func MasterKeyFromSeed(seed []byte) KeyNode {
	mac := hmac.New(sha512.New, []byte(masterSecret))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return KeyNode{ChainKey: sum[:32], ChainCode: sum[32:]}
}

// ChildHardened derives the hardened child of n at index. The preimage is
// framed as 0x00 || chainKey || (index + 0x80000000) big-endian, matching the
// standard hardened-derivation layout even though the chain key is not raw EC
// scalar material; the leading zero byte keeps this domain-separated from any
// public-key-based derivation.
func (n KeyNode) ChildHardened(index uint32) KeyNode {
	var indexBytes [4]byte
	binary.BigEndian.PutUint32(indexBytes[:], index+hardenedOffset)

	mac := hmac.New(sha512.New, n.ChainCode)
	mac.Write([]byte{0x00})
	mac.Write(n.ChainKey)
	mac.Write(indexBytes[:])
	sum := mac.Sum(nil)
	return KeyNode{ChainKey: sum[:32], ChainCode: sum[32:]}
}

// DeriveNodeFromPath folds ChildHardened over the path's segments starting
// from the master node for seed.
func DeriveNodeFromPath(seed []byte, path string) (KeyNode, error) {
	segments, err := PathSegments(path)
	if err != nil {
		return KeyNode{}, err
	}
	node := MasterKeyFromSeed(seed)
	for _, index := range segments {
		node = node.ChildHardened(index)
	}
	return node, nil
}
