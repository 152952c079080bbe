package model

import "github.com/ethereum/go-ethereum/common"

// BalanceRecord is one ledger balance row for persistence.
type BalanceRecord struct {
	Asset  common.Hash    `json:"asset"`
	Holder common.Address `json:"holder"`
	Amount uint64         `json:"amount"`
}

// SupplyRecord is the outstanding supply of one asset for persistence.
type SupplyRecord struct {
	Asset  common.Hash `json:"asset"`
	Amount uint64      `json:"amount"`
}
