package service

import (
	"context"
	"time"

	"roiengine/internal/domain"
	"roiengine/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	one            = decimal.NewFromInt(1)
	inceptionValue = decimal.NewFromInt(100)
)

// navCursor is the fold state for one walk over the calendar: the last known
// close per ticker (the forward-fill source) and the previous day's NAV.
// Keeping it explicit keeps the step function testable without I/O.
type navCursor struct {
	lastClose map[string]decimal.Decimal
	nav       decimal.Decimal
	started   bool
}

// forwardFillLog caps "missing day, forward-filled" log lines per build so a
// sparse ticker cannot flood the logs. Fills are expected on weekends and
// holidays; they are events, not errors.
type forwardFillLog struct {
	log    *zap.SugaredLogger
	budget int
	total  int
}

func (f *forwardFillLog) record(ticker string, date time.Time) {
	f.total++
	if f.budget > 0 {
		f.budget--
		f.log.Infow("missing close, forward-filled", "ticker", ticker, "date", date.Format(time.DateOnly))
	}
}

func (f *forwardFillLog) flush() {
	if f.total > 0 {
		f.log.Infow("forward-fill summary", "filledTickerDays", f.total)
	}
}

// BuildNav compounds daily price-relative returns into a NAV series
// normalized to 100 on the first day with a resolvable price. It is a pure
// function of its inputs: rebuilding over the same timeline and prices yields
// an identical series.
func BuildNav(ctx context.Context, dates []time.Time, timeline domain.Timeline, prices domain.PriceMap) domain.NavSeries {
	log := logger.FromContext(ctx)
	fills := &forwardFillLog{log: log, budget: 10}
	defer fills.flush()

	cursor := navCursor{lastClose: map[string]decimal.Decimal{}}
	series := domain.NavSeries{}

	for _, day := range dates {
		alloc, ok := timeline.Get(day)
		if !ok {
			continue
		}

		if !cursor.started {
			if seedCursor(&cursor, alloc, day, prices) {
				cursor.started = true
				cursor.nav = inceptionValue
				series = append(series, domain.NavPoint{
					Date:        day,
					Value:       inceptionValue,
					DailyReturn: decimal.Zero,
				})
			}
			continue
		}

		dayReturn := dailyReturn(ctx, &cursor, alloc, day, prices, fills)
		cursor.nav = cursor.nav.Mul(one.Add(dayReturn))
		series = append(series, domain.NavPoint{
			Date:        day,
			Value:       cursor.nav,
			DailyReturn: dayReturn,
		})
	}

	return series
}

// seedCursor looks for the inception day: the first day where at least one
// ticker in the allocation has a direct quote.
func seedCursor(cursor *navCursor, alloc domain.DayAllocation, day time.Time, prices domain.PriceMap) bool {
	priced := false
	for _, ticker := range alloc.Tickers() {
		if close, ok := prices.Get(ticker, day); ok {
			cursor.lastClose[ticker] = close
			priced = true
		}
	}
	return priced
}

// dailyReturn prices the day off the allocation in effect that day. On a
// primary-asset transition the incoming ticker's close is compared against
// its own prior-day close, not the outgoing ticker's: the switch itself is
// not a gain or a loss.
func dailyReturn(ctx context.Context, cursor *navCursor, alloc domain.DayAllocation, day time.Time, prices domain.PriceMap, fills *forwardFillLog) decimal.Decimal {
	if alloc.Mode == domain.AllocationModePrimary {
		return tickerReturn(ctx, cursor, alloc.Primary.Ticker, day, prices, fills)
	}

	total := decimal.Zero
	for _, w := range alloc.Weights {
		total = total.Add(w.Weight.Mul(tickerReturn(ctx, cursor, w.Ticker, day, prices, fills)))
	}
	return total
}

// tickerReturn is one constituent's simple return for the day. A ticker with
// neither a quote today nor any prior known close contributes zero and is
// logged; this happens when an allocation switches to an asset the supplier
// has no history for yet.
func tickerReturn(ctx context.Context, cursor *navCursor, ticker string, day time.Time, prices domain.PriceMap, fills *forwardFillLog) decimal.Decimal {
	if ticker == CashTicker {
		return decimal.Zero
	}

	prev, hasPrev := cursor.lastClose[ticker]
	if !hasPrev {
		// ticker not held on any prior walked day, so its last close was
		// never carried; the ingested window still has its history
		prev, hasPrev = prices.GetLatestBefore(ticker, day, priceLookbackBufferDays)
	}

	today, ok := prices.Get(ticker, day)
	if !ok {
		if !hasPrev {
			logger.FromContext(ctx).Warnw("no price history for ticker, contributing zero return",
				"ticker", ticker,
				"date", day.Format(time.DateOnly),
			)
			return decimal.Zero
		}
		fills.record(ticker, day)
		today = prev
	}

	cursor.lastClose[ticker] = today

	if !hasPrev || prev.IsZero() {
		return decimal.Zero
	}

	return today.Div(prev).Sub(one)
}
