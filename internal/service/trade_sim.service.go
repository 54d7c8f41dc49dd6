package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/logger"
	"roiengine/internal/repository"
	"roiengine/internal/util"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type SizingPolicy string

const (
	SizingPolicyRiskPct       SizingPolicy = "risk_pct"
	SizingPolicyFixedFraction SizingPolicy = "fixed_fraction"
)

// defaultRiskPct stands in when a trade carries neither a stop nor an
// explicit risk percentage
var defaultRiskPct = decimal.NewFromFloat(0.01)

var bpsDenominator = decimal.NewFromInt(10000)

type SimulateEquityCurveInput struct {
	PortfolioKey   string
	StartingEquity decimal.Decimal
	Sizing         SizingPolicy
	FeeBps         decimal.Decimal
	SlippageBps    decimal.Decimal
}

type EquityPoint struct {
	Date     time.Time       `json:"date"`
	Equity   decimal.Decimal `json:"equity"`
	Drawdown decimal.Decimal `json:"drawdown"`
}

// TradeStats covers closed trades only. Open trades sit in the curve at
// zero unrealized PnL, which understates volatility but never fabricates
// profit.
type TradeStats struct {
	TotalTrades  int             `json:"totalTrades"`
	ClosedTrades int             `json:"closedTrades"`
	WinRate      decimal.Decimal `json:"winRate"`
	ProfitFactor decimal.Decimal `json:"profitFactor"`
	AvgRMultiple decimal.Decimal `json:"avgRMultiple"`
	Expectancy   decimal.Decimal `json:"expectancy"`
	SharpeRatio  decimal.Decimal `json:"sharpeRatio"`
	CalmarRatio  decimal.Decimal `json:"calmarRatio"`
	Roi          decimal.Decimal `json:"roi"`
	MaxDrawdown  decimal.Decimal `json:"maxDrawdown"`
}

type EquityCurveResult struct {
	Curve []EquityPoint `json:"curve"`
	Stats TradeStats    `json:"stats"`
}

type TradeSimService interface {
	SimulateEquityCurve(ctx context.Context, in SimulateEquityCurveInput) (*EquityCurveResult, error)
}

func NewTradeSimService(tradeRecordRepository repository.TradeRecordRepository) TradeSimService {
	return tradeSimServiceHandler{
		TradeRecordRepository: tradeRecordRepository,
	}
}

type tradeSimServiceHandler struct {
	TradeRecordRepository repository.TradeRecordRepository
}

func (h tradeSimServiceHandler) SimulateEquityCurve(ctx context.Context, in SimulateEquityCurveInput) (*EquityCurveResult, error) {
	log := logger.FromContext(ctx)

	trades, err := h.TradeRecordRepository.List(in.PortfolioKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list trade records: %w", err)
	}
	if in.StartingEquity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("starting equity must be positive, got %s", in.StartingEquity.String())
	}

	sim := newSimulation(in)
	for _, event := range tradeEvents(trades) {
		sim.apply(event)
	}

	result := &EquityCurveResult{
		Curve: sim.curve(),
		Stats: sim.stats(len(trades)),
	}

	log.Infow("simulated equity curve",
		"portfolioKey", in.PortfolioKey,
		"trades", len(trades),
		"closed", result.Stats.ClosedTrades,
		"days", len(result.Curve),
	)
	return result, nil
}

// RMultiple expresses a closed trade's profit as a multiple of the amount
// risked per unit. With a stop, risk is the signed entry-to-stop distance.
// Without one, risk is approximated as riskPct of the entry price. A zero
// entry or zero risk distance yields 0 instead of a division error.
func RMultiple(direction model.TradeDirection, entry, exit decimal.Decimal, stop, riskPct *decimal.Decimal) decimal.Decimal {
	if entry.IsZero() {
		return decimal.Zero
	}

	profitPerUnit := exit.Sub(entry)
	if direction == model.TradeDirection_Short {
		profitPerUnit = entry.Sub(exit)
	}

	var risk decimal.Decimal
	if stop != nil {
		risk = entry.Sub(*stop)
		if direction == model.TradeDirection_Short {
			risk = stop.Sub(entry)
		}
	} else {
		pct := defaultRiskPct
		if riskPct != nil {
			pct = *riskPct
		}
		risk = entry.Mul(pct)
	}
	if risk.IsZero() {
		return decimal.Zero
	}

	return profitPerUnit.Div(risk)
}

type eventKind int

const (
	eventEntry eventKind = iota
	eventExit
)

type tradeEvent struct {
	at    time.Time
	kind  eventKind
	trade *model.TradeRecord
}

// tradeEvents flattens trades into a time-ordered entry/exit stream so
// position sizing always sees the equity produced by every earlier exit.
func tradeEvents(trades []model.TradeRecord) []tradeEvent {
	events := []tradeEvent{}
	for i := range trades {
		trade := &trades[i]
		events = append(events, tradeEvent{at: trade.EnteredAt, kind: eventEntry, trade: trade})
		if trade.ExitedAt != nil && trade.ExitPrice != nil {
			events = append(events, tradeEvent{at: *trade.ExitedAt, kind: eventExit, trade: trade})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].at.Equal(events[j].at) {
			// same-instant exit settles before the next entry sizes
			return events[i].kind == eventExit && events[j].kind == eventEntry
		}
		return events[i].at.Before(events[j].at)
	})
	return events
}

type closedTrade struct {
	netPnl    decimal.Decimal
	rMultiple decimal.Decimal
}

type simulation struct {
	input       SimulateEquityCurveInput
	equity      decimal.Decimal
	sizeByTrade map[string]decimal.Decimal
	equityByDay map[string]decimal.Decimal
	firstDay    *time.Time
	lastDay     *time.Time
	closed      []closedTrade
}

func newSimulation(in SimulateEquityCurveInput) *simulation {
	return &simulation{
		input:       in,
		equity:      in.StartingEquity,
		sizeByTrade: map[string]decimal.Decimal{},
		equityByDay: map[string]decimal.Decimal{},
	}
}

func (s *simulation) apply(event tradeEvent) {
	switch event.kind {
	case eventEntry:
		s.sizeByTrade[event.trade.TradeRecordID.String()] = s.positionSize(event.trade)
	case eventExit:
		s.settle(event.trade)
	}
	s.markDay(event.at)
}

// positionSize applies the configured sizing policy against current equity.
// risk_pct degrades to the fixed fraction when the trade has no stop or
// risk percentage to size from.
func (s *simulation) positionSize(trade *model.TradeRecord) decimal.Decimal {
	if trade.EntryPrice.IsZero() {
		return decimal.Zero
	}

	if s.input.Sizing == SizingPolicyRiskPct && trade.StopPrice != nil && trade.RiskPct != nil {
		riskDistance := trade.EntryPrice.Sub(*trade.StopPrice)
		if trade.Direction == model.TradeDirection_Short {
			riskDistance = trade.StopPrice.Sub(trade.EntryPrice)
		}
		if riskDistance.IsPositive() {
			return s.equity.Mul(*trade.RiskPct).Div(riskDistance)
		}
	}

	return s.equity.Mul(defaultRiskPct).Div(trade.EntryPrice)
}

func (s *simulation) settle(trade *model.TradeRecord) {
	size, ok := s.sizeByTrade[trade.TradeRecordID.String()]
	if !ok || trade.ExitPrice == nil {
		return
	}

	profitPerUnit := trade.ExitPrice.Sub(trade.EntryPrice)
	if trade.Direction == model.TradeDirection_Short {
		profitPerUnit = trade.EntryPrice.Sub(*trade.ExitPrice)
	}
	grossPnl := profitPerUnit.Mul(size)

	costBps := s.input.FeeBps.Add(s.input.SlippageBps)
	notional := trade.EntryPrice.Add(*trade.ExitPrice).Mul(size)
	costs := notional.Mul(costBps).Div(bpsDenominator)

	netPnl := grossPnl.Sub(costs)
	s.equity = s.equity.Add(netPnl)
	s.closed = append(s.closed, closedTrade{
		netPnl:    netPnl,
		rMultiple: RMultiple(trade.Direction, trade.EntryPrice, *trade.ExitPrice, trade.StopPrice, trade.RiskPct),
	})
}

func (s *simulation) markDay(at time.Time) {
	day := util.Midnight(at)
	s.equityByDay[day.Format(time.DateOnly)] = s.equity
	if s.firstDay == nil || day.Before(*s.firstDay) {
		s.firstDay = util.TimePointer(day)
	}
	if s.lastDay == nil || day.After(*s.lastDay) {
		s.lastDay = util.TimePointer(day)
	}
}

// curve fills every calendar day between the first and last trade event,
// carrying equity forward across quiet days and tracking drawdown against
// the running peak.
func (s *simulation) curve() []EquityPoint {
	if s.firstDay == nil {
		return []EquityPoint{}
	}

	out := []EquityPoint{}
	equity := s.input.StartingEquity
	peak := s.input.StartingEquity
	for _, day := range util.DaysBetween(*s.firstDay, *s.lastDay) {
		if v, ok := s.equityByDay[day.Format(time.DateOnly)]; ok {
			equity = v
		}
		if equity.GreaterThan(peak) {
			peak = equity
		}
		drawdown := decimal.Zero
		if peak.IsPositive() {
			drawdown = equity.Div(peak).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
		}
		out = append(out, EquityPoint{
			Date:     day,
			Equity:   equity,
			Drawdown: drawdown,
		})
	}
	return out
}

func (s *simulation) stats(totalTrades int) TradeStats {
	out := TradeStats{
		TotalTrades:  totalTrades,
		ClosedTrades: len(s.closed),
	}
	if len(s.closed) == 0 {
		return out
	}

	hundred := decimal.NewFromInt(100)

	wins := 0
	grossProfit := decimal.Zero
	grossLoss := decimal.Zero
	sumR := decimal.Zero
	sumPnl := decimal.Zero
	returns := []float64{}
	runningEquity := s.input.StartingEquity
	for _, trade := range s.closed {
		if trade.netPnl.IsPositive() {
			wins++
			grossProfit = grossProfit.Add(trade.netPnl)
		} else {
			grossLoss = grossLoss.Add(trade.netPnl.Abs())
		}
		sumR = sumR.Add(trade.rMultiple)
		sumPnl = sumPnl.Add(trade.netPnl)
		if runningEquity.IsPositive() {
			ret, _ := trade.netPnl.Div(runningEquity).Float64()
			returns = append(returns, ret)
		}
		runningEquity = runningEquity.Add(trade.netPnl)
	}

	closedCount := decimal.NewFromInt(int64(len(s.closed)))
	out.WinRate = decimal.NewFromInt(int64(wins)).Div(closedCount).Mul(hundred)
	if grossLoss.IsPositive() {
		out.ProfitFactor = grossProfit.Div(grossLoss)
	}
	out.AvgRMultiple = sumR.Div(closedCount)
	out.Expectancy = sumPnl.Div(closedCount)

	// per-trade returns are close enough to independent samples for a
	// 0% risk-free Sharpe; float64 is fine here since this is a ranking
	// statistic, not a ledger value
	if len(returns) >= 2 {
		mean, err := stats.Mean(returns)
		stdev, stdevErr := stats.StandardDeviationSample(returns)
		if err == nil && stdevErr == nil && stdev > 0 {
			out.SharpeRatio = decimal.NewFromFloat(mean / stdev)
		}
	}

	curve := s.curve()
	if len(curve) > 0 {
		final := curve[len(curve)-1].Equity
		out.Roi = final.Div(s.input.StartingEquity).Sub(decimal.NewFromInt(1)).Mul(hundred)
		for _, p := range curve {
			if p.Drawdown.LessThan(out.MaxDrawdown) {
				out.MaxDrawdown = p.Drawdown
			}
		}
		if !out.MaxDrawdown.IsZero() {
			out.CalmarRatio = out.Roi.Div(out.MaxDrawdown.Abs())
		}
	}

	return out
}
