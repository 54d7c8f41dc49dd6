package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"roiengine/internal/domain"
	"roiengine/internal/logger"
	"roiengine/internal/util"
)

// tickerBySymbol maps the asset names members see in published signals to the
// tickers the price supplier quotes. Signals naming anything else are skipped
// with a warning - new listings get added here, not silently priced.
var tickerBySymbol = map[string]string{
	"BTC":   "BTC-USD",
	"ETH":   "ETH-USD",
	"SOL":   "SOL-USD",
	"XRP":   "XRP-USD",
	"ADA":   "ADA-USD",
	"DOGE":  "DOGE-USD",
	"AVAX":  "AVAX-USD",
	"LINK":  "LINK-USD",
	"DOT":   "DOT-USD",
	"BNB":   "BNB-USD",
	"MATIC": "MATIC-USD",
	"CASH":  CashTicker,
}

// TickerForSymbol resolves a member-facing asset name to a supplier ticker.
func TickerForSymbol(symbol string) (string, bool) {
	ticker, ok := tickerBySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	return ticker, ok
}

// ParseRawSignal extracts the primary pick from a published signal string.
// Signals are free-form admin text like "BTC / ETH / SOL" or "BTC, ETH": the
// first token is the primary, the rest are secondary/tertiary and ignored
// here.
func ParseRawSignal(raw string) (string, bool) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return "", false
	}
	return strings.ToUpper(strings.TrimSpace(fields[0])), true
}

// ResolvePrimaryTimeline walks the requested days with a cursor into the
// signals sorted by publish date: the most recent signal at or before each
// day wins, and a signal published exactly on a day applies starting that
// day. Signals that do not map to a known ticker are skipped, leaving the
// previous resolution in effect. Before the first applicable signal the
// fallback is used; if the fallback is empty, days before the first mapped
// signal are absent from the timeline.
func ResolvePrimaryTimeline(ctx context.Context, dates []time.Time, signals []domain.RawSignal, fallback domain.ResolvedAsset) domain.Timeline {
	log := logger.FromContext(ctx)

	sorted := make([]domain.RawSignal, len(signals))
	copy(sorted, signals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.Before(sorted[j].PublishedAt)
	})

	var current *domain.ResolvedAsset
	if fallback.Symbol != "" && fallback.Ticker != "" {
		f := fallback
		current = &f
	}

	timeline := domain.Timeline{}
	cursor := 0
	for _, day := range dates {
		for cursor < len(sorted) && util.DateLte(util.Midnight(sorted[cursor].PublishedAt), day) {
			signal := sorted[cursor]
			cursor++

			symbol, ok := ParseRawSignal(signal.Raw)
			if !ok {
				log.Warnw("skipping empty primary signal", "publishedAt", signal.PublishedAt)
				continue
			}
			ticker, ok := TickerForSymbol(symbol)
			if !ok {
				log.Warnw("skipping primary signal with unknown asset",
					"symbol", symbol,
					"publishedAt", signal.PublishedAt,
				)
				continue
			}
			current = &domain.ResolvedAsset{Symbol: symbol, Ticker: ticker}
		}

		if current != nil {
			timeline.Set(day, domain.DayAllocation{
				Mode:    domain.AllocationModePrimary,
				Primary: current,
			})
		}
	}

	return timeline
}

// ResolveWeightedTimeline is the same last-write-wins step function over
// explicit allocation snapshots instead of primary signals.
func ResolveWeightedTimeline(ctx context.Context, dates []time.Time, decisions []domain.AllocationDecision) domain.Timeline {
	log := logger.FromContext(ctx)

	sorted := make([]domain.AllocationDecision, len(decisions))
	copy(sorted, decisions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AsOfDate.Before(sorted[j].AsOfDate)
	})

	var current []domain.WeightedAsset

	timeline := domain.Timeline{}
	cursor := 0
	for _, day := range dates {
		for cursor < len(sorted) && util.DateLte(util.Midnight(sorted[cursor].AsOfDate), day) {
			decision := sorted[cursor]
			cursor++

			weights := []domain.WeightedAsset{}
			for _, item := range decision.Items {
				ticker := item.Ticker
				if ticker == "" {
					mapped, ok := TickerForSymbol(item.Symbol)
					if !ok {
						log.Warnw("skipping allocation item with unknown asset",
							"symbol", item.Symbol,
							"asOfDate", decision.AsOfDate,
						)
						continue
					}
					ticker = mapped
				}
				weights = append(weights, domain.WeightedAsset{
					ResolvedAsset: domain.ResolvedAsset{Symbol: item.Symbol, Ticker: ticker},
					Weight:        item.Weight,
				})
			}
			if len(weights) > 0 {
				current = weights
			}
		}

		if current != nil {
			timeline.Set(day, domain.DayAllocation{
				Mode:    domain.AllocationModeWeighted,
				Weights: current,
			})
		}
	}

	return timeline
}
