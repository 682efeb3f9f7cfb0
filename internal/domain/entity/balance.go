package entity

// BalanceRecord is one token held by the wallet on one chain, priced in the
// requested quote currency. ChainName is filled in by the fetcher, the rest
// comes straight from the provider payload.
type BalanceRecord struct {
	ChainName    string  `json:"-"`
	ContractName string  `json:"contract_name"`
	TickerSymbol string  `json:"contract_ticker_symbol"`
	Decimals     int     `json:"contract_decimals"`
	RawBalance   string  `json:"balance"`
	QuoteRate    float64 `json:"quote_rate"`
	QuoteValue   float64 `json:"quote"`
}
