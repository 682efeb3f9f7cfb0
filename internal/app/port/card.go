package port

import (
	"context"

	"wallet_card/internal/domain/entity"
)

// CardService defines the interface for generating wallet cards.
type CardService interface {
	// GenerateCard runs the full pipeline for one request: chain resolution,
	// per-chain data fetch, aggregation, logo inlining and SVG rendering.
	GenerateCard(ctx context.Context, cfg entity.CardConfig) (string, error)

	// ListChains returns the provider's chain catalog.
	ListChains(ctx context.Context) ([]entity.ChainDescriptor, error)
}
