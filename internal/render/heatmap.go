package render

import (
	"fmt"
	"strings"

	"wallet_card/internal/domain/entity"
)

const (
	heatmapWeeks = 32
	heatmapDays  = heatmapWeeks * 7

	heatmapCell  = 9.0
	heatmapPitch = 11.0

	// Any day with at least one transaction stays visible even when the
	// busiest day dwarfs it.
	heatmapMinOpacity = 0.15

	heatmapEmptyFill = "#2f2f2f"
)

// heatmap renders the trailing 32-week daily transaction grid: one cell per
// day, 7 rows, opacity scaled by that day's count relative to the window
// maximum.
func heatmap(cfg entity.CardConfig, view entity.AggregatedView) string {
	start := view.WindowEnd.AddDate(0, 0, -(heatmapDays - 1))

	maxCount := 0
	for i := 0; i < heatmapDays; i++ {
		if c := view.Daily[start.AddDate(0, 0, i)]; c > maxCount {
			maxCount = c
		}
	}

	var b strings.Builder
	for i := 0; i < heatmapDays; i++ {
		x := float64(i/7) * heatmapPitch
		y := float64(i%7) * heatmapPitch
		count := view.Daily[start.AddDate(0, 0, i)]
		if count == 0 {
			b.WriteString(fmt.Sprintf(`<rect x="%g" y="%g" width="%g" height="%g" rx="2" fill="%s"/>`,
				x, y, heatmapCell, heatmapCell, heatmapEmptyFill))
			continue
		}
		opacity := heatmapMinOpacity + (1-heatmapMinOpacity)*float64(count)/float64(maxCount)
		b.WriteString(fmt.Sprintf(`<rect x="%g" y="%g" width="%g" height="%g" rx="2" fill="%s" fill-opacity="%.2f"/>`,
			x, y, heatmapCell, heatmapCell, escape(cfg.FillColor), opacity))
	}
	return b.String()
}
