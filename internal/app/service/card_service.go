package service

import (
	"context"
	"fmt"
	"time"

	"wallet_card/internal/app/port"
	"wallet_card/internal/client"
	"wallet_card/internal/domain/entity"
	"wallet_card/internal/pkg/metrics"
	"wallet_card/internal/render"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// cardServiceImpl implements port.CardService.
type cardServiceImpl struct {
	provider            client.ChainProviderClient
	logos               client.LogoResolver
	logger              *zap.Logger
	maxConcurrentChains int
}

// NewCardService creates a new instance of cardServiceImpl.
func NewCardService(provider client.ChainProviderClient, logos client.LogoResolver, logger *zap.Logger, maxConcurrentChains int) port.CardService {
	if maxConcurrentChains <= 0 {
		maxConcurrentChains = 1
	}
	return &cardServiceImpl{
		provider:            provider,
		logos:               logos,
		logger:              logger.Named("CardService"),
		maxConcurrentChains: maxConcurrentChains,
	}
}

// GenerateCard implements port.CardService. The pipeline runs in strict
// stages: chain resolution, then all per-chain fetches, then aggregation,
// then logo resolution, then rendering.
func (s *cardServiceImpl) GenerateCard(ctx context.Context, cfg entity.CardConfig) (string, error) {
	chains, resolvedAddress, err := s.resolveChains(ctx, cfg)
	if err != nil {
		return "", err
	}

	queryAddress := cfg.Address
	if resolvedAddress != "" {
		queryAddress = resolvedAddress
	}
	s.logger.Debug("Resolved chains for card",
		zap.String("address", queryAddress), zap.Int("chainCount", len(chains)), zap.String("style", string(cfg.Style)))

	// Results are slotted by chain index so aggregation sees a deterministic
	// chain order regardless of fetch completion order.
	perChain := make([]entity.ChainData, len(chains))
	balanceAddresses := make([]string, len(chains))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrentChains)
	for i, chain := range chains {
		g.Go(func() error {
			data, addr, err := s.fetchChainData(gctx, chain, queryAddress, cfg.Currency, cfg.Style == entity.StyleTransactions)
			if err != nil {
				return err
			}
			perChain[i] = data
			balanceAddresses[i] = addr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("Per-chain fetch failed", zap.String("address", queryAddress), zap.Error(err))
		return "", err
	}

	// Single-chain mode performs no normalization up front; take the
	// provider-normalized address from the balances payload instead.
	if resolvedAddress == "" {
		for _, addr := range balanceAddresses {
			if addr != "" {
				resolvedAddress = addr
				break
			}
		}
	}

	view := Aggregate(cfg, resolvedAddress, chains, perChain, time.Now().UTC())
	view.Logos = s.logos.Resolve(ctx, chains)

	svg := render.BuildCard(cfg, view)
	metrics.CardsGenerated.WithLabelValues(string(cfg.Style)).Inc()
	s.logger.Info("Card generated",
		zap.String("address", cfg.Address),
		zap.String("chain", cfg.Chain),
		zap.String("style", string(cfg.Style)),
		zap.Int("chainCount", view.ChainCount))
	return svg, nil
}

// ListChains implements port.CardService.
func (s *cardServiceImpl) ListChains(ctx context.Context) ([]entity.ChainDescriptor, error) {
	return s.provider.GetAllChains(ctx)
}

// resolveChains determines which chains to query and, in all-chains mode,
// the provider-normalized address.
func (s *cardServiceImpl) resolveChains(ctx context.Context, cfg entity.CardConfig) ([]entity.ChainDescriptor, string, error) {
	if cfg.AllChainsMode() {
		var (
			catalog  []entity.ChainDescriptor
			active   []entity.ChainDescriptor
			resolved string
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			catalog, err = s.provider.GetAllChains(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			resolved, active, err = s.provider.GetAddressActivity(gctx, cfg.Address)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, "", err
		}

		// The activity feed defines the chain set; the catalog only fills in
		// any label or logo metadata the feed omitted.
		byName := make(map[string]entity.ChainDescriptor, len(catalog))
		for _, c := range catalog {
			byName[c.Name] = c
		}
		for i := range active {
			if entry, ok := byName[active[i].Name]; ok {
				if active[i].Label == "" {
					active[i].Label = entry.Label
				}
				if active[i].LogoURL == "" {
					active[i].LogoURL = entry.LogoURL
				}
			}
		}
		return active, resolved, nil
	}

	catalog, err := s.provider.GetAllChains(ctx)
	if err != nil {
		return nil, "", err
	}
	for _, c := range catalog {
		if c.Name == cfg.Chain {
			return []entity.ChainDescriptor{c}, "", nil
		}
	}
	return nil, "", fmt.Errorf("%w: %q", entity.ErrUnknownChain, cfg.Chain)
}

// fetchChainData issues the independent calls for a single chain
// concurrently. Balances and summary are required: a hard failure of either
// aborts the chain and with it the whole request. The transaction history is
// only fetched for the transactions style and is a recoverable gap.
func (s *cardServiceImpl) fetchChainData(ctx context.Context, chain entity.ChainDescriptor, address, currency string, withHistory bool) (entity.ChainData, string, error) {
	data := entity.ChainData{Chain: chain}
	var resolvedAddress string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr, balances, err := s.provider.GetTokenBalances(gctx, chain.Name, address, currency)
		if err != nil {
			return err
		}
		resolvedAddress = addr
		data.Balances = balances
		return nil
	})
	g.Go(func() error {
		summary, err := s.provider.GetTransactionSummary(gctx, chain.Name, address)
		if err != nil {
			return err
		}
		data.Summary = summary
		return nil
	})
	if withHistory {
		g.Go(func() error {
			items, err := s.provider.GetTransactions(gctx, chain.Name, address)
			if err != nil {
				s.logger.Warn("Transaction history fetch failed, rendering heatmap without this chain",
					zap.String("chain", chain.Name), zap.Error(err))
				return nil
			}
			data.Daily = bucketByDay(items)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entity.ChainData{}, "", err
	}
	return data, resolvedAddress, nil
}
