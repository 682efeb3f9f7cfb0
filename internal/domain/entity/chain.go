package entity

// ChainDescriptor describes one network known to the data provider.
// Chains are identified by Name throughout the pipeline.
type ChainDescriptor struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	LogoURL   string `json:"logo_url"`
	IsTestnet bool   `json:"is_testnet"`
}

// ChainActivityEvent is a catalog entry extended with the moment the
// address was last seen on that chain. Returned by the activity feed.
type ChainActivityEvent struct {
	ChainDescriptor
	LastSeenAt string `json:"last_seen_at"`
}
