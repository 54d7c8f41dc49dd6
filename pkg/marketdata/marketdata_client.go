package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
)

type DailyClose struct {
	Date  time.Time
	Close decimal.Decimal
}

// Client fetches daily closing prices from the market data provider. One
// request per symbol covering the whole window; the caller decides what an
// empty series means.
type Client struct{}

func (c Client) GetDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (map[string][]DailyClose, error) {
	out := map[string][]DailyClose{}

	for _, symbol := range symbols {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		params := &chart.Params{
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Symbol:   symbol,
			Interval: datetime.OneDay,
		}
		iter := chart.Get(params)

		closes := []DailyClose{}
		for iter.Next() {
			t := time.Unix(int64(iter.Bar().Timestamp), 0).UTC()
			closes = append(closes, DailyClose{
				Date:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
				Close: iter.Bar().AdjClose,
			})
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("failed to get daily closes for %s: %w", symbol, err)
		}

		out[symbol] = closes
	}

	return out, nil
}
