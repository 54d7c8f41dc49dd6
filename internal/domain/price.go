package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetPrice struct {
	Symbol string
	Date   time.Time
	Close  decimal.Decimal
}

// PriceMap is keyed by ticker, then by date formatted as time.DateOnly.
type PriceMap map[string]map[string]decimal.Decimal

func (pm PriceMap) Get(ticker string, date time.Time) (decimal.Decimal, bool) {
	if _, ok := pm[ticker]; ok {
		if close, ok := pm[ticker][date.Format(time.DateOnly)]; ok {
			return close, true
		}
	}
	return decimal.Zero, false
}

// GetLatestBefore returns the most recent close strictly before date, walking
// back at most lookbackDays calendar days.
func (pm PriceMap) GetLatestBefore(ticker string, date time.Time, lookbackDays int) (decimal.Decimal, bool) {
	for i := 1; i <= lookbackDays; i++ {
		if close, ok := pm.Get(ticker, date.AddDate(0, 0, -i)); ok {
			return close, true
		}
	}
	return decimal.Zero, false
}

func (pm PriceMap) Set(ticker string, date time.Time, close decimal.Decimal) {
	if _, ok := pm[ticker]; !ok {
		pm[ticker] = map[string]decimal.Decimal{}
	}
	pm[ticker][date.Format(time.DateOnly)] = close
}
