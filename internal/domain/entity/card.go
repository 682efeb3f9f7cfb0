package entity

import "time"

// CardStyle selects which card variant gets rendered.
type CardStyle string

const (
	StyleStandard     CardStyle = "standard"
	StyleTransactions CardStyle = "tx"
	StyleTokens       CardStyle = "tokens"
)

// AllChains is the chain selector value for cross-chain aggregation mode.
const AllChains = "all-chains"

// CardConfig is the validated per-request configuration. Immutable once
// parsed; every field has a default applied by the handler.
type CardConfig struct {
	Address    string
	Chain      string
	Currency   string
	FontFamily string
	FillColor  string
	Style      CardStyle
}

// AllChainsMode reports whether the request aggregates over every chain the
// address has been active on instead of a single named chain.
func (c CardConfig) AllChainsMode() bool {
	return c.Chain == AllChains
}

// ChainData is everything fetched for a single chain. A chain with no
// activity has an empty Balances slice and a nil Summary but still counts
// as queried.
type ChainData struct {
	Chain    ChainDescriptor
	Balances []BalanceRecord
	Summary  *TransactionSummary
	Daily    map[time.Time]int
}

// LatestActivity identifies the most recent transaction across all queried
// chains.
type LatestActivity struct {
	Time      time.Time
	ChainName string
	TxHash    string
}

// AggregatedView is the chain-agnostic model the renderer consumes. It is
// built once per request and never mutated afterwards.
type AggregatedView struct {
	SuppliedAddress   string
	ResolvedAddress   string
	ChainCount        int
	Chains            []ChainDescriptor
	TotalTransactions int64
	NetWorth          float64
	Latest            LatestActivity
	TopTokens         []BalanceRecord
	Logos             map[string]string
	Daily             map[time.Time]int
	WindowEnd         time.Time
}
