package calculator

import (
	"fmt"
	"roiengine/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

const roi30dLookbackDays = 30

// ComputeMetrics derives the dashboard KPIs from a NAV series. An empty
// series yields all-zero metrics and a nil as-of date, which the orchestrator
// treats as a non-terminal condition.
func ComputeMetrics(series domain.NavSeries) (*domain.MetricsResult, error) {
	if len(series) == 0 {
		return &domain.MetricsResult{
			RoiInception: decimal.Zero,
			Roi30d:       decimal.Zero,
			MaxDrawdown:  decimal.Zero,
			Volatility:   decimal.Zero,
		}, nil
	}

	first := series.First()
	last := series.Last()

	if first.Value.IsZero() {
		return nil, fmt.Errorf("nav series starts at zero on %s", first.Date)
	}

	roiInception := last.Value.Div(first.Value).Sub(one).Mul(hundred)

	// trailing 30d; short histories collapse to inception ROI
	lookbackDate := last.Date.AddDate(0, 0, -roi30dLookbackDays)
	base := series.AtOrAfter(lookbackDate)
	if base == nil {
		base = &first
	}
	roi30d := decimal.Zero
	if !base.Value.IsZero() {
		roi30d = last.Value.Div(base.Value).Sub(one).Mul(hundred)
	}

	maxDrawdown := maxDrawdown(series)

	volatility, err := annualizedVolatility(series)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate volatility: %w", err)
	}

	asOf := last.Date
	return &domain.MetricsResult{
		RoiInception: roiInception,
		Roi30d:       roi30d,
		MaxDrawdown:  maxDrawdown,
		Volatility:   volatility,
		AsOfDate:     &asOf,
	}, nil
}

// maxDrawdown is the deepest percentage decline from the running peak. It is
// never positive; a non-decreasing series yields exactly zero.
func maxDrawdown(series domain.NavSeries) decimal.Decimal {
	peak := series.First().Value
	worst := decimal.Zero
	for _, p := range series {
		if p.Value.GreaterThan(peak) {
			peak = p.Value
		}
		if peak.IsZero() {
			continue
		}
		drawdown := p.Value.Div(peak).Sub(one).Mul(hundred)
		if drawdown.LessThan(worst) {
			worst = drawdown
		}
	}
	return worst
}

// annualizedVolatility is the sample stdev of daily returns scaled by sqrt of
// 365 (calendar-day convention, since the NAV series covers every calendar
// day, not just trading days). The inception day's synthetic zero return is
// excluded.
func annualizedVolatility(series domain.NavSeries) (decimal.Decimal, error) {
	returns := []decimal.Decimal{}
	for _, p := range series[1:] {
		returns = append(returns, p.DailyReturn)
	}

	stdev, err := SampleStdev(returns)
	if err != nil {
		return decimal.Zero, err
	}
	if stdev.IsZero() {
		return decimal.Zero, nil
	}

	sqrt365, err := Sqrt(decimal.NewFromInt(365))
	if err != nil {
		return decimal.Zero, err
	}

	return stdev.Mul(sqrt365).Mul(hundred), nil
}
