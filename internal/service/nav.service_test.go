package service

import (
	"context"
	"testing"
	"time"

	"roiengine/internal/domain"
	"roiengine/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func primaryTimeline(days []time.Time, symbol, ticker string) domain.Timeline {
	timeline := domain.Timeline{}
	for _, day := range days {
		timeline.Set(day, domain.DayAllocation{
			Mode:    domain.AllocationModePrimary,
			Primary: &domain.ResolvedAsset{Symbol: symbol, Ticker: ticker},
		})
	}
	return timeline
}

func TestBuildNav(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("first point is 100 with zero return", func(t *testing.T) {
		days := util.DaysBetween(day1, day1.AddDate(0, 0, 2))
		timeline := primaryTimeline(days, "BTC", "BTC-USD")

		prices := domain.PriceMap{}
		prices.Set("BTC-USD", day1, decimal.NewFromInt(50000))
		prices.Set("BTC-USD", day1.AddDate(0, 0, 1), decimal.NewFromInt(51000))
		prices.Set("BTC-USD", day1.AddDate(0, 0, 2), decimal.NewFromInt(49980))

		series := BuildNav(ctx, days, timeline, prices)
		require.Len(t, series, 3)

		require.True(t, series[0].Value.Equal(decimal.NewFromInt(100)))
		require.True(t, series[0].DailyReturn.IsZero())

		// 51000/50000 = 1.02
		require.True(t, series[1].Value.Equal(decimal.NewFromInt(102)),
			"expected 102, got %s", series[1].Value.String())
	})

	t.Run("inception skips days without a quote", func(t *testing.T) {
		days := util.DaysBetween(day1, day1.AddDate(0, 0, 3))
		timeline := primaryTimeline(days, "BTC", "BTC-USD")

		prices := domain.PriceMap{}
		prices.Set("BTC-USD", day1.AddDate(0, 0, 2), decimal.NewFromInt(50000))
		prices.Set("BTC-USD", day1.AddDate(0, 0, 3), decimal.NewFromInt(55000))

		series := BuildNav(ctx, days, timeline, prices)
		require.Len(t, series, 2)
		require.Equal(t, day1.AddDate(0, 0, 2), series[0].Date)
		require.True(t, series[0].Value.Equal(decimal.NewFromInt(100)))
	})

	t.Run("missing day forward-fills the last close", func(t *testing.T) {
		days := util.DaysBetween(day1, day1.AddDate(0, 0, 2))
		timeline := primaryTimeline(days, "BTC", "BTC-USD")

		prices := domain.PriceMap{}
		prices.Set("BTC-USD", day1, decimal.NewFromInt(50000))
		// day2 missing
		prices.Set("BTC-USD", day1.AddDate(0, 0, 2), decimal.NewFromInt(55000))

		series := BuildNav(ctx, days, timeline, prices)
		require.Len(t, series, 3)

		require.True(t, series[1].DailyReturn.IsZero())
		require.True(t, series[1].Value.Equal(decimal.NewFromInt(100)))

		// 55000/50000 = 1.10 - the fill must not distort the next return
		require.True(t, series[2].Value.Equal(decimal.NewFromInt(110)),
			"expected 110, got %s", series[2].Value.String())
	})

	t.Run("rebuilding over the same inputs yields an identical series", func(t *testing.T) {
		days := util.DaysBetween(day1, day1.AddDate(0, 0, 5))
		timeline := primaryTimeline(days, "ETH", "ETH-USD")

		prices := domain.PriceMap{}
		closes := []int64{3000, 3100, 0, 2900, 3050, 3200}
		for i, c := range closes {
			if c == 0 {
				continue
			}
			prices.Set("ETH-USD", day1.AddDate(0, 0, i), decimal.NewFromInt(c))
		}

		first := BuildNav(ctx, days, timeline, prices)
		second := BuildNav(ctx, days, timeline, prices)

		require.Empty(t, cmp.Diff(first, second))
	})

	t.Run("primary transition prices off the incoming ticker's own prior close", func(t *testing.T) {
		days := util.DaysBetween(day1, day1.AddDate(0, 0, 2))
		timeline := domain.Timeline{}
		btc := &domain.ResolvedAsset{Symbol: "BTC", Ticker: "BTC-USD"}
		eth := &domain.ResolvedAsset{Symbol: "ETH", Ticker: "ETH-USD"}
		timeline.Set(days[0], domain.DayAllocation{Mode: domain.AllocationModePrimary, Primary: btc})
		timeline.Set(days[1], domain.DayAllocation{Mode: domain.AllocationModePrimary, Primary: btc})
		timeline.Set(days[2], domain.DayAllocation{Mode: domain.AllocationModePrimary, Primary: eth})

		prices := domain.PriceMap{}
		prices.Set("BTC-USD", days[0], decimal.NewFromInt(50000))
		prices.Set("BTC-USD", days[1], decimal.NewFromInt(51000))
		prices.Set("ETH-USD", days[1], decimal.NewFromInt(3000))
		prices.Set("ETH-USD", days[2], decimal.NewFromInt(3300))

		series := BuildNav(ctx, days, timeline, prices)
		require.Len(t, series, 3)

		// transition day is ETH's own move, 3300/3000 = +10%, not a
		// comparison against BTC's close
		require.True(t, series[2].DailyReturn.Equal(decimal.NewFromFloat(0.1)),
			"expected 0.1, got %s", series[2].DailyReturn.String())
		require.True(t, series[2].Value.Equal(decimal.NewFromFloat(112.2)),
			"expected 112.2, got %s", series[2].Value.String())
	})

	t.Run("transition look-back skips quote gaps within the buffer", func(t *testing.T) {
		days := util.DaysBetween(day1, day1.AddDate(0, 0, 3))
		timeline := domain.Timeline{}
		btc := &domain.ResolvedAsset{Symbol: "BTC", Ticker: "BTC-USD"}
		eth := &domain.ResolvedAsset{Symbol: "ETH", Ticker: "ETH-USD"}
		for _, day := range days[:3] {
			timeline.Set(day, domain.DayAllocation{Mode: domain.AllocationModePrimary, Primary: btc})
		}
		timeline.Set(days[3], domain.DayAllocation{Mode: domain.AllocationModePrimary, Primary: eth})

		prices := domain.PriceMap{}
		for i, day := range days {
			prices.Set("BTC-USD", day, decimal.NewFromInt(50000+int64(i)))
		}
		// ETH last quoted two days before the transition
		prices.Set("ETH-USD", days[1], decimal.NewFromInt(3000))
		prices.Set("ETH-USD", days[3], decimal.NewFromInt(3150))

		series := BuildNav(ctx, days, timeline, prices)
		require.Len(t, series, 4)

		// 3150/3000 = +5%
		require.True(t, series[3].DailyReturn.Equal(decimal.NewFromFloat(0.05)),
			"expected 0.05, got %s", series[3].DailyReturn.String())
	})

	t.Run("transition with no incoming history contributes zero", func(t *testing.T) {
		days := util.DaysBetween(day1, day1.AddDate(0, 0, 1))
		timeline := domain.Timeline{}
		btc := &domain.ResolvedAsset{Symbol: "BTC", Ticker: "BTC-USD"}
		sol := &domain.ResolvedAsset{Symbol: "SOL", Ticker: "SOL-USD"}
		timeline.Set(days[0], domain.DayAllocation{Mode: domain.AllocationModePrimary, Primary: btc})
		timeline.Set(days[1], domain.DayAllocation{Mode: domain.AllocationModePrimary, Primary: sol})

		prices := domain.PriceMap{}
		prices.Set("BTC-USD", days[0], decimal.NewFromInt(50000))
		prices.Set("SOL-USD", days[1], decimal.NewFromInt(150))

		series := BuildNav(ctx, days, timeline, prices)
		require.Len(t, series, 2)

		require.True(t, series[1].DailyReturn.IsZero())
		require.True(t, series[1].Value.Equal(series[0].Value))
	})

	t.Run("weighted allocation compounds the weight-sum of constituent returns", func(t *testing.T) {
		days := util.DaysBetween(day1, day1.AddDate(0, 0, 1))
		half := decimal.NewFromFloat(0.5)
		timeline := domain.Timeline{}
		weights := []domain.WeightedAsset{
			{ResolvedAsset: domain.ResolvedAsset{Symbol: "BTC", Ticker: "BTC-USD"}, Weight: half},
			{ResolvedAsset: domain.ResolvedAsset{Symbol: "ETH", Ticker: "ETH-USD"}, Weight: half},
		}
		for _, day := range days {
			timeline.Set(day, domain.DayAllocation{Mode: domain.AllocationModeWeighted, Weights: weights})
		}

		prices := domain.PriceMap{}
		prices.Set("BTC-USD", days[0], decimal.NewFromInt(50000))
		prices.Set("ETH-USD", days[0], decimal.NewFromInt(3000))
		prices.Set("BTC-USD", days[1], decimal.NewFromInt(55000)) // +10%
		prices.Set("ETH-USD", days[1], decimal.NewFromInt(2700))  // -10%

		series := BuildNav(ctx, days, timeline, prices)
		require.Len(t, series, 2)

		// 0.5*10% + 0.5*(-10%) = 0
		require.True(t, series[1].DailyReturn.IsZero(),
			"expected zero, got %s", series[1].DailyReturn.String())
		require.True(t, series[1].Value.Equal(decimal.NewFromInt(100)))
	})

	t.Run("cash contributes zero return", func(t *testing.T) {
		days := util.DaysBetween(day1, day1.AddDate(0, 0, 1))
		half := decimal.NewFromFloat(0.5)
		timeline := domain.Timeline{}
		weights := []domain.WeightedAsset{
			{ResolvedAsset: domain.ResolvedAsset{Symbol: "BTC", Ticker: "BTC-USD"}, Weight: half},
			{ResolvedAsset: domain.ResolvedAsset{Symbol: "CASH", Ticker: CashTicker}, Weight: half},
		}
		for _, day := range days {
			timeline.Set(day, domain.DayAllocation{Mode: domain.AllocationModeWeighted, Weights: weights})
		}

		prices := domain.PriceMap{}
		prices.Set("BTC-USD", days[0], decimal.NewFromInt(50000))
		prices.Set("BTC-USD", days[1], decimal.NewFromInt(55000))

		series := BuildNav(ctx, days, timeline, prices)
		require.Len(t, series, 2)

		// half the +10% move
		require.True(t, series[1].Value.Equal(decimal.NewFromInt(105)),
			"expected 105, got %s", series[1].Value.String())
	})

	t.Run("empty timeline yields an empty series", func(t *testing.T) {
		days := util.DaysBetween(day1, day1.AddDate(0, 0, 2))
		series := BuildNav(ctx, days, domain.Timeline{}, domain.PriceMap{})
		require.Empty(t, series)
	})
}
