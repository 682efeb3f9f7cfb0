package render

import (
	"fmt"
	"strings"

	"wallet_card/internal/domain/entity"
)

const (
	cardWidth      = 450
	heightStandard = 300
	heightExtended = 450

	contentLeft  = 36.0
	contentTop   = 30.0
	contentWidth = cardWidth - 2*contentLeft

	// Address shrinks once it no longer fits at the large size.
	addressShrinkThreshold = 40

	maxLogos = 9
)

// BuildCard turns the aggregated view model into a complete SVG document.
// It is a pure function: identical inputs always produce byte-identical
// output, and it performs no I/O.
func BuildCard(cfg entity.CardConfig, view entity.AggregatedView) string {
	height := heightStandard
	if cfg.Style != entity.StyleStandard {
		height = heightExtended
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(
		`<svg id="visual" viewBox="0 0 %d %d" width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1">`,
		cardWidth, height, cardWidth, height))
	b.WriteString(background())
	b.WriteString(group(contentLeft, contentTop,
		addressBlock(cfg, view),
		group(234, 0, chainBlock(cfg, view)),
		group(0, 96, activityBlock(cfg, view)),
		group(0, 172, netWorthBlock(cfg, view)),
	))

	switch cfg.Style {
	case entity.StyleTokens:
		b.WriteString(group(contentLeft, 280,
			rule(contentWidth, cfg.FillColor),
			group(0, 14, tokensRows(cfg, view)...),
		))
	case entity.StyleTransactions:
		b.WriteString(group(contentLeft, 280,
			rule(contentWidth, cfg.FillColor),
			group(0, 14, heatmap(cfg, view)),
		))
	}

	b.WriteString(`</svg>`)
	return b.String()
}

// background draws the full-canvas rounded rectangle with a looping fill
// animation and the inset border rectangle.
func background() string {
	return `<rect x="0" y="0" width="100%" height="100%" rx="12" ry="12" fill="#151515">` +
		`<animate attributeName="fill" values="#808080; #151515; #808080" dur="3s" repeatCount="indefinite"/>` +
		`</rect>` +
		`<rect x="1%" y="1%" width="98%" height="98%" rx="10" ry="10" fill="#151515"/>`
}

// addressBlock shows the user-supplied address and, only when the provider
// normalized it to something different, a secondary resolved-address line.
func addressBlock(cfg entity.CardConfig, view entity.AggregatedView) string {
	size := 19
	if len(cfg.Address) >= addressShrinkThreshold {
		size = 12
	}
	parts := []string{
		textEl(0, 0, size, "start", cfg.FillColor, cfg.FontFamily, TruncateMiddle(cfg.Address)),
	}
	if view.ResolvedAddress != "" && view.ResolvedAddress != strings.ToLower(cfg.Address) {
		parts = append(parts,
			textEl(4, 24, 10, "start", cfg.FillColor, cfg.FontFamily, TruncateMiddle(view.ResolvedAddress)))
	}
	return strings.Join(parts, "")
}

// chainBlock shows the chain count and up to nine chain logos, each linked
// to a block explorer address page when one is known for the chain.
func chainBlock(cfg entity.CardConfig, view entity.AggregatedView) string {
	parts := []string{
		textEl(0, 0, 16, "start", cfg.FillColor, cfg.FontFamily, Pluralize(int64(view.ChainCount), "Chain")),
	}

	type inlinedLogo struct {
		chainName string
		dataURI   string
	}
	var logos []inlinedLogo
	for _, chain := range view.Chains {
		if uri, ok := view.Logos[chain.Name]; ok {
			logos = append(logos, inlinedLogo{chainName: chain.Name, dataURI: uri})
			if len(logos) == maxLogos {
				break
			}
		}
	}

	logoAt := func(l inlinedLogo, x, y, size float64) string {
		img := imageEl(l.dataURI, x, y, size)
		if href, ok := entity.ExplorerAddressURL(l.chainName, view.ResolvedAddress); ok {
			return linkEl(href, img)
		}
		return img
	}

	switch len(logos) {
	case 0:
	case 1:
		parts = append(parts, logoAt(logos[0], 0, 26, 48))
	case 2:
		parts = append(parts, logoAt(logos[0], 0, 26, 32), logoAt(logos[1], 40, 26, 32))
	default:
		for i, l := range logos {
			x := float64(i%3) * 26
			y := 26 + float64(i/3)*26
			parts = append(parts, logoAt(l, x, y, 20))
		}
	}
	return strings.Join(parts, "")
}

// activityBlock shows the total transaction count and the most recent
// activity across all chains, with the logo of the chain it happened on.
func activityBlock(cfg entity.CardConfig, view entity.AggregatedView) string {
	parts := []string{
		textEl(0, 0, 12, "start", cfg.FillColor, cfg.FontFamily, Pluralize(view.TotalTransactions, "Transaction")),
	}
	if !view.Latest.Time.IsZero() {
		parts = append(parts,
			textEl(0, 18, 10, "start", cfg.FillColor, cfg.FontFamily, "Last activity: "+FormatDate(view.Latest.Time)))
		if uri, ok := view.Logos[view.Latest.ChainName]; ok {
			img := imageEl(uri, 150, 16, 14)
			if href, linked := entity.ExplorerTxURL(view.Latest.ChainName, view.Latest.TxHash); linked {
				img = linkEl(href, img)
			}
			parts = append(parts, img)
		}
	}
	return strings.Join(parts, "")
}

// netWorthBlock shows the aggregated net worth, right-aligned.
func netWorthBlock(cfg entity.CardConfig, view entity.AggregatedView) string {
	return textEl(0, 0, 22, "start", cfg.FillColor, cfg.FontFamily, "Net Worth") +
		textEl(contentWidth, 6, 14, "end", cfg.FillColor, cfg.FontFamily, FormatCurrency(view.NetWorth, cfg.Currency))
}

// tokensRows renders one row per top token: name left, ticker centered,
// value right.
func tokensRows(cfg entity.CardConfig, view entity.AggregatedView) []string {
	rows := make([]string, 0, len(view.TopTokens))
	for i, token := range view.TopTokens {
		y := float64(i) * 22
		rows = append(rows,
			textEl(0, y, 12, "start", cfg.FillColor, cfg.FontFamily, token.ContractName),
			textEl(contentWidth/2, y, 12, "middle", cfg.FillColor, cfg.FontFamily, token.TickerSymbol),
			textEl(contentWidth, y, 12, "end", cfg.FillColor, cfg.FontFamily, FormatCurrency(token.QuoteValue, cfg.Currency)),
		)
	}
	return rows
}
