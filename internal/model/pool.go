package model

import "github.com/ethereum/go-ethereum/common"

// Pool is the persisted record of one pool instance. Reserves and share
// supply are not stored here; they live in the custody ledger's balance
// records so the two can never diverge.
type Pool struct {
	ID         common.Hash    `json:"id"`
	Seed       uint64         `json:"seed"`
	AssetA     common.Hash    `json:"asset_a"`
	AssetB     common.Hash    `json:"asset_b"`
	ShareAsset common.Hash    `json:"share_asset"`
	FeeBps     uint32         `json:"fee_bps"`
	Locked     bool           `json:"locked"`
	Authority  common.Address `json:"authority"`
	CreatedAt  string         `json:"created_at"`
}

// HasAuthority reports whether the pool was created with an administrative
// authority. Pools without one can never be locked.
func (p Pool) HasAuthority() bool {
	return p.Authority != (common.Address{})
}

// HasAsset reports whether the asset is one side of the pool's pair.
func (p Pool) HasAsset(asset common.Hash) bool {
	return asset == p.AssetA || asset == p.AssetB
}
