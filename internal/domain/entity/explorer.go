package entity

// explorerURLs maps a chain name to its block explorer URL prefixes for the
// address and transaction views. Chains not listed here render without links.
type explorerURLs struct {
	AddressPrefix string
	TxPrefix      string
}

var explorersByChain = map[string]explorerURLs{
	"eth-mainnet":       {"https://etherscan.io/address/", "https://etherscan.io/tx/"},
	"eth-sepolia":       {"https://sepolia.etherscan.io/address/", "https://sepolia.etherscan.io/tx/"},
	"matic-mainnet":     {"https://polygonscan.com/address/", "https://polygonscan.com/tx/"},
	"bsc-mainnet":       {"https://bscscan.com/address/", "https://bscscan.com/tx/"},
	"avalanche-mainnet": {"https://snowtrace.io/address/", "https://snowtrace.io/tx/"},
	"arbitrum-mainnet":  {"https://arbiscan.io/address/", "https://arbiscan.io/tx/"},
	"optimism-mainnet":  {"https://optimistic.etherscan.io/address/", "https://optimistic.etherscan.io/tx/"},
	"fantom-mainnet":    {"https://ftmscan.com/address/", "https://ftmscan.com/tx/"},
	"base-mainnet":      {"https://basescan.org/address/", "https://basescan.org/tx/"},
	"gnosis-mainnet":    {"https://gnosisscan.io/address/", "https://gnosisscan.io/tx/"},
}

// ExplorerAddressURL returns the explorer page for an address on the given
// chain, or false when no explorer is known for it.
func ExplorerAddressURL(chainName, address string) (string, bool) {
	e, ok := explorersByChain[chainName]
	if !ok {
		return "", false
	}
	return e.AddressPrefix + address, true
}

// ExplorerTxURL returns the explorer page for a transaction hash on the
// given chain, or false when no explorer is known for it.
func ExplorerTxURL(chainName, txHash string) (string, bool) {
	e, ok := explorersByChain[chainName]
	if !ok {
		return "", false
	}
	return e.TxPrefix + txHash, true
}
