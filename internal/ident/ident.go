package ident

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Domain separation tags. Changing a tag changes every identity derived
// under it, so these are fixed for the life of the state.
const (
	tagPool  = "amm/pool/v1"
	tagVault = "amm/vault/v1"
	tagShare = "amm/share/v1"
)

// derive hashes the tag followed by each component prefixed with its
// big-endian uint32 length. The length prefixes keep distinct component
// splits from colliding.
func derive(tag string, components ...[]byte) common.Hash {
	buf := make([]byte, 0, len(tag)+len(components)*(4+32))
	buf = append(buf, tag...)
	for _, c := range components {
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(c)))
		buf = append(buf, size[:]...)
		buf = append(buf, c...)
	}
	return crypto.Keccak256Hash(buf)
}

// PoolID derives the identity of the pool for (seed, assetA, assetB).
// The pair order is part of the identity: (A, B) and (B, A) are distinct
// pools, and distinct seeds give independent pools over the same pair.
func PoolID(seed uint64, assetA, assetB common.Hash) common.Hash {
	var seedBytes [8]byte
	binary.BigEndian.PutUint64(seedBytes[:], seed)
	return derive(tagPool, seedBytes[:], assetA.Bytes(), assetB.Bytes())
}

// ShareAsset derives the identity of the pool's share asset.
func ShareAsset(poolID common.Hash) common.Hash {
	return derive(tagShare, poolID.Bytes())
}

// VaultAddress derives the custody account holding one side of a pool's
// reserves.
func VaultAddress(poolID, asset common.Hash) common.Address {
	return common.BytesToAddress(derive(tagVault, poolID.Bytes(), asset.Bytes()).Bytes()[12:])
}
