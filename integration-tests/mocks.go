package integration_tests

import (
	"context"
	"time"

	"roiengine/internal/util"
	"roiengine/pkg/marketdata"

	"github.com/shopspring/decimal"
)

// MockPriceSupplier serves a deterministic price path so integration runs
// never hit the real market data service. Every symbol walks up 1% a day
// from a fixed base.
type MockPriceSupplier struct {
	BaseClose decimal.Decimal
}

func NewMockPriceSupplier() MockPriceSupplier {
	return MockPriceSupplier{BaseClose: decimal.NewFromInt(100)}
}

func (m MockPriceSupplier) GetDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (map[string][]marketdata.DailyClose, error) {
	growth := decimal.NewFromFloat(1.01)

	out := map[string][]marketdata.DailyClose{}
	for _, symbol := range symbols {
		closes := []marketdata.DailyClose{}
		close := m.BaseClose
		for _, day := range util.DaysBetween(util.Midnight(start), util.Midnight(end)) {
			closes = append(closes, marketdata.DailyClose{
				Date:  day,
				Close: close,
			})
			close = close.Mul(growth)
		}
		out[symbol] = closes
	}

	return out, nil
}
