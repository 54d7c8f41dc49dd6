package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AllocationMode string

const (
	AllocationModePrimary  AllocationMode = "primary"
	AllocationModeWeighted AllocationMode = "weighted"
)

// ResolvedAsset is an asset as the engine tracks it: the symbol members see
// ("BTC") plus the ticker the price supplier quotes it under ("BTC-USD").
type ResolvedAsset struct {
	Symbol string
	Ticker string
}

type WeightedAsset struct {
	ResolvedAsset
	Weight decimal.Decimal
}

// DayAllocation is the allocation in effect for one calendar day. Exactly one
// of Primary/Weights is populated, depending on Mode.
type DayAllocation struct {
	Mode    AllocationMode
	Primary *ResolvedAsset
	Weights []WeightedAsset
}

func (a DayAllocation) Tickers() []string {
	if a.Mode == AllocationModePrimary {
		if a.Primary == nil {
			return nil
		}
		return []string{a.Primary.Ticker}
	}
	tickers := []string{}
	for _, w := range a.Weights {
		tickers = append(tickers, w.Ticker)
	}
	return tickers
}

// Timeline maps each day (formatted as time.DateOnly) to the allocation in
// effect that day. Days before any resolution exists are absent.
type Timeline map[string]DayAllocation

func (t Timeline) Get(date time.Time) (DayAllocation, bool) {
	alloc, ok := t[date.Format(time.DateOnly)]
	return alloc, ok
}

func (t Timeline) Set(date time.Time, alloc DayAllocation) {
	t[date.Format(time.DateOnly)] = alloc
}

// Tickers returns the distinct supplier tickers referenced anywhere in the
// timeline, for price ingestion.
func (t Timeline) Tickers() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, alloc := range t {
		for _, ticker := range alloc.Tickers() {
			if !seen[ticker] {
				seen[ticker] = true
				out = append(out, ticker)
			}
		}
	}
	return out
}

// RawSignal is one published primary/secondary/tertiary pick, still in its
// free-form admin-entered encoding.
type RawSignal struct {
	PublishedAt time.Time
	Raw         string
}

type AllocationItem struct {
	Symbol string          `json:"symbol"`
	Ticker string          `json:"ticker"`
	Weight decimal.Decimal `json:"weight"`
}

// AllocationDecision is one day's weighted allocation snapshot. Weights need
// not sum to 1; the residual is implied cash.
type AllocationDecision struct {
	AsOfDate time.Time
	Items    []AllocationItem
}
