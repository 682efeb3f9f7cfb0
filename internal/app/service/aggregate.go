package service

import (
	"sort"
	"time"

	"wallet_card/internal/domain/entity"

	"github.com/samber/lo"
)

// topTokenLimit bounds how many tokens the card shows, ranked by quote value.
const topTokenLimit = 3

// Aggregate merges per-chain results into the chain-agnostic view model the
// renderer consumes. perChain must be ordered by the queried chain order so
// top-token tie breaking stays deterministic; completion order must never
// influence the output.
func Aggregate(cfg entity.CardConfig, resolvedAddress string, chains []entity.ChainDescriptor, perChain []entity.ChainData, now time.Time) entity.AggregatedView {
	view := entity.AggregatedView{
		SuppliedAddress: cfg.Address,
		ResolvedAddress: resolvedAddress,
		ChainCount:      len(chains),
		Chains:          chains,
		Daily:           make(map[time.Time]int),
		WindowEnd:       dayOf(now),
	}
	if view.ResolvedAddress == "" {
		view.ResolvedAddress = cfg.Address
	}

	for _, cd := range perChain {
		view.NetWorth += lo.SumBy(cd.Balances, func(b entity.BalanceRecord) float64 { return b.QuoteValue })
		for _, b := range cd.Balances {
			view.TopTokens = pushTopToken(view.TopTokens, b)
		}

		if cd.Summary != nil {
			view.TotalTransactions += cd.Summary.TotalCount
			if cd.Summary.Latest.SignedAt.After(view.Latest.Time) {
				view.Latest = entity.LatestActivity{
					Time:      cd.Summary.Latest.SignedAt,
					ChainName: cd.Chain.Name,
					TxHash:    cd.Summary.Latest.Hash,
				}
			}
		}

		for day, count := range cd.Daily {
			view.Daily[day] += count
		}
	}

	return view
}

// pushTopToken keeps a bounded list sorted descending by quote value. Ties
// keep the earlier-discovered record: insertion appends and the stable sort
// preserves discovery order among equal values, and an equal-valued
// newcomer never evicts the current minimum.
func pushTopToken(top []entity.BalanceRecord, rec entity.BalanceRecord) []entity.BalanceRecord {
	if len(top) < topTokenLimit {
		top = append(top, rec)
	} else if rec.QuoteValue > top[len(top)-1].QuoteValue {
		top[len(top)-1] = rec
	} else {
		return top
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].QuoteValue > top[j].QuoteValue })
	return top
}

// bucketByDay groups raw transactions by their UTC calendar day.
func bucketByDay(items []entity.TransactionItem) map[time.Time]int {
	if len(items) == 0 {
		return nil
	}
	daily := make(map[time.Time]int)
	for _, item := range items {
		daily[dayOf(item.SignedAt)]++
	}
	return daily
}

// dayOf truncates an instant to its UTC day boundary.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
