package entity

import "time"

// TransactionDigest points at a single transaction by hash and block time.
type TransactionDigest struct {
	SignedAt time.Time `json:"block_signed_at"`
	Hash     string    `json:"tx_hash"`
}

// TransactionSummary is the provider's per-chain roll-up of an address's
// transaction history.
type TransactionSummary struct {
	ChainName  string            `json:"-"`
	TotalCount int64             `json:"total_count"`
	Earliest   TransactionDigest `json:"earliest_transaction"`
	Latest     TransactionDigest `json:"latest_transaction"`
}

// TransactionItem is a single entry of the full transaction history stream.
// Only the block timestamp matters for day bucketing.
type TransactionItem struct {
	SignedAt time.Time `json:"block_signed_at"`
	Hash     string    `json:"tx_hash"`
}
