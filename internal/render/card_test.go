package render

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"wallet_card/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() entity.CardConfig {
	return entity.CardConfig{
		Address:    "demo.eth",
		Chain:      "eth-mainnet",
		Currency:   "USD",
		FontFamily: "monospace",
		FillColor:  "white",
		Style:      entity.StyleStandard,
	}
}

func baseView() entity.AggregatedView {
	return entity.AggregatedView{
		SuppliedAddress:   "demo.eth",
		ResolvedAddress:   "0x1234567890abcdef1234567890abcdef12345678",
		ChainCount:        1,
		Chains:            []entity.ChainDescriptor{{Name: "eth-mainnet", Label: "Ethereum Mainnet"}},
		TotalTransactions: 12,
		NetWorth:          1234.56,
		Latest: entity.LatestActivity{
			Time:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			ChainName: "eth-mainnet",
			TxHash:    "0xdeadbeef",
		},
		Daily:     map[time.Time]int{},
		WindowEnd: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func requireWellFormedXML(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestBuildCardStandard(t *testing.T) {
	svg := BuildCard(baseConfig(), baseView())

	requireWellFormedXML(t, svg)
	assert.Contains(t, svg, "demo.eth")
	assert.Contains(t, svg, "1 Chain<")
	assert.NotContains(t, svg, "1 Chains")
	assert.Contains(t, svg, "$1,234.56")
	assert.Contains(t, svg, "12 Transactions")
	assert.Contains(t, svg, "Last activity: May 1, 2024")
	assert.Contains(t, svg, `height="300"`)
}

func TestBuildCardIdempotent(t *testing.T) {
	cfg := baseConfig()
	view := baseView()

	first := BuildCard(cfg, view)
	second := BuildCard(cfg, view)

	assert.Equal(t, first, second)
}

func TestBuildCardEmptyViewStillWellFormed(t *testing.T) {
	view := entity.AggregatedView{
		SuppliedAddress: "demo.eth",
		ResolvedAddress: "demo.eth",
		Daily:           map[time.Time]int{},
		WindowEnd:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	svg := BuildCard(baseConfig(), view)

	requireWellFormedXML(t, svg)
	assert.Contains(t, svg, "0 Chains")
	assert.Contains(t, svg, "$0.00")
}

func TestBuildCardResolvedAddressLine(t *testing.T) {
	cfg := baseConfig()
	view := baseView()
	svg := BuildCard(cfg, view)
	// Resolved hex differs from the supplied name, so both lines show up,
	// the hex one middle-truncated.
	assert.Contains(t, svg, "0x1234567890abc...0abcdef12345678")

	view.ResolvedAddress = "demo.eth"
	svg = BuildCard(cfg, view)
	assert.NotContains(t, svg, "...")
}

func TestBuildCardLongAddressShrinks(t *testing.T) {
	cfg := baseConfig()
	cfg.Address = "0x1234567890abcdef1234567890abcdef12345678"
	view := baseView()
	view.ResolvedAddress = strings.ToLower(cfg.Address)

	svg := BuildCard(cfg, view)

	assert.Contains(t, svg, `font-size="12"`)
}

func TestBuildCardTokensStyle(t *testing.T) {
	cfg := baseConfig()
	cfg.Style = entity.StyleTokens
	view := baseView()
	view.TopTokens = []entity.BalanceRecord{
		{ContractName: "Ether", TickerSymbol: "ETH", QuoteValue: 1000},
		{ContractName: "USD Coin", TickerSymbol: "USDC", QuoteValue: 200},
	}

	svg := BuildCard(cfg, view)

	requireWellFormedXML(t, svg)
	assert.Contains(t, svg, `height="450"`)
	assert.Contains(t, svg, "Ether")
	assert.Contains(t, svg, "USDC")
	assert.Contains(t, svg, "$200.00")
}

func TestBuildCardTokensStyleEmpty(t *testing.T) {
	cfg := baseConfig()
	cfg.Style = entity.StyleTokens
	view := baseView()
	view.TopTokens = nil

	svg := BuildCard(cfg, view)

	requireWellFormedXML(t, svg)
	// Token rows are the only centered text; none should appear.
	assert.NotContains(t, svg, `text-anchor="middle"`)
}

func TestBuildCardTransactionsStyleHeatmap(t *testing.T) {
	cfg := baseConfig()
	cfg.Style = entity.StyleTransactions
	view := baseView()
	busy := view.WindowEnd.AddDate(0, 0, -1)
	quiet := view.WindowEnd.AddDate(0, 0, -8)
	view.Daily = map[time.Time]int{busy: 10, quiet: 1}

	svg := BuildCard(cfg, view)

	requireWellFormedXML(t, svg)
	assert.Contains(t, svg, `height="450"`)
	// 224 cells, two of them active.
	assert.Equal(t, heatmapDays-2, strings.Count(svg, heatmapEmptyFill))
	assert.Equal(t, 2, strings.Count(svg, "fill-opacity"))
	// The busiest day is fully opaque, the single-transaction day dim but
	// above the visibility floor.
	assert.Contains(t, svg, `fill-opacity="1.00"`)
	assert.Contains(t, svg, `fill-opacity="0.23"`)
}

func TestBuildCardEscapesUserInput(t *testing.T) {
	cfg := baseConfig()
	cfg.Address = `<script>"evil"</script>`
	view := baseView()
	view.ResolvedAddress = cfg.Address

	svg := BuildCard(cfg, view)

	requireWellFormedXML(t, svg)
	assert.NotContains(t, svg, "<script>")
}

func TestBuildCardLogoLinks(t *testing.T) {
	cfg := baseConfig()
	view := baseView()
	view.Logos = map[string]string{"eth-mainnet": "data:image/svg+xml;base64,AAAA"}

	svg := BuildCard(cfg, view)

	requireWellFormedXML(t, svg)
	assert.Contains(t, svg, "data:image/svg+xml;base64,AAAA")
	assert.Contains(t, svg, "https://etherscan.io/address/"+view.ResolvedAddress)
	assert.Contains(t, svg, "https://etherscan.io/tx/0xdeadbeef")
}

func TestBuildCardUnknownChainNoLink(t *testing.T) {
	cfg := baseConfig()
	view := baseView()
	view.Chains = []entity.ChainDescriptor{{Name: "obscure-net"}}
	view.Logos = map[string]string{"obscure-net": "data:image/png;base64,BBBB"}
	view.Latest.ChainName = "obscure-net"

	svg := BuildCard(cfg, view)

	requireWellFormedXML(t, svg)
	assert.Contains(t, svg, "data:image/png;base64,BBBB")
	assert.NotContains(t, svg, "<a ")
}
