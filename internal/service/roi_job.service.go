package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"roiengine/internal/calculator"
	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/db/models/postgres/public/table"
	"roiengine/internal/domain"
	"roiengine/internal/logger"
	"roiengine/internal/repository"
	"roiengine/internal/util"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
)

// SnapshotScope is the dashboard snapshot scope this engine owns. The only
// other scope in the table is the reserved JOB_LOCK row.
const SnapshotScope = "PORTFOLIO_ROI"

// how far back a day's return may reach for a prior close when the ticker was
// not held on an earlier walked day, and how many extra days of prices to pull
// before the window start so that look-back can land on a quote (weekends,
// holidays)
const priceLookbackBufferDays = 7

// portfolios created before any signal was published price against BTC
var defaultPrimaryFallback = domain.ResolvedAsset{Symbol: "BTC", Ticker: "BTC-USD"}

type RunPortfolioRoiJobInput struct {
	PortfolioKey   *string
	ForceStartDate *time.Time
	ForceEndDate   *time.Time
	IncludeClean   bool
	Trigger        string
	RequestedBy    *string
}

type RunPortfolioRoiJobResult struct {
	Processed int       `json:"processed"`
	RunID     uuid.UUID `json:"runId"`
	Skipped   string    `json:"skipped,omitempty"`
}

type RoiJobService interface {
	RunPortfolioRoiJob(ctx context.Context, in RunPortfolioRoiJobInput) (*RunPortfolioRoiJobResult, error)
}

func NewRoiJobService(
	db *sql.DB,
	lockRepository repository.JobLockRepository,
	snapshotRepository repository.RoiSnapshotRepository,
	allocationRepository repository.AllocationSnapshotRepository,
	signalRepository repository.PrimarySignalRepository,
	seriesRepository repository.PerformanceSeriesRepository,
	priceService PriceService,
) RoiJobService {
	return roiJobServiceHandler{
		Db:                   db,
		LockRepository:       lockRepository,
		SnapshotRepository:   snapshotRepository,
		AllocationRepository: allocationRepository,
		SignalRepository:     signalRepository,
		SeriesRepository:     seriesRepository,
		PriceService:         priceService,
	}
}

type roiJobServiceHandler struct {
	Db                   *sql.DB
	LockRepository       repository.JobLockRepository
	SnapshotRepository   repository.RoiSnapshotRepository
	AllocationRepository repository.AllocationSnapshotRepository
	SignalRepository     repository.PrimarySignalRepository
	SeriesRepository     repository.PerformanceSeriesRepository
	PriceService         PriceService
}

// RunPortfolioRoiJob is the batch entrypoint. The whole run is bracketed by
// the job lock; portfolios are processed strictly sequentially so ingestion
// load on the supplier stays bounded, and one portfolio's failure never
// aborts the rest of the run.
func (h roiJobServiceHandler) RunPortfolioRoiJob(ctx context.Context, in RunPortfolioRoiJobInput) (*RunPortfolioRoiJobResult, error) {
	log := logger.FromContext(ctx)

	runID := uuid.New()
	holder, _ := os.Hostname()
	if in.RequestedBy != nil {
		holder = fmt.Sprintf("%s@%s", *in.RequestedBy, holder)
	}

	acquired, err := h.LockRepository.Acquire(runID, holder, in.Trigger)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire job lock: %w", err)
	}
	if !acquired.Acquired {
		// expected when two triggers race - not an error
		log.Infow("portfolio roi job already running, skipping",
			"runId", runID,
			"heldBy", acquired.HeldByHolder,
			"heldByRunId", acquired.HeldByRunID,
		)
		return &RunPortfolioRoiJobResult{RunID: runID, Skipped: "locked"}, nil
	}
	if acquired.Stolen {
		log.Warnw("stole stale job lock from crashed holder",
			"runId", runID,
			"previousRunId", acquired.PreviousRunID,
		)
	}
	defer func() {
		if releaseErr := h.LockRepository.Release(); releaseErr != nil {
			log.Errorw("failed to release job lock", "runId", runID, "error", releaseErr)
		}
	}()

	snapshots, err := h.SnapshotRepository.List(repository.ListSnapshotsFilter{
		Scope:        SnapshotScope,
		PortfolioKey: in.PortfolioKey,
		IncludeClean: in.IncludeClean,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list dirty portfolios: %w", err)
	}

	processed := 0
	for i := range snapshots {
		snapshot := snapshots[i]
		if err := h.processPortfolio(ctx, &snapshot, in); err != nil {
			log.Errorw("portfolio recompute failed",
				"runId", runID,
				"portfolioKey", snapshot.PortfolioKey,
				"error", err,
			)
			continue
		}
		processed++
	}

	log.Infow("portfolio roi job complete",
		"runId", runID,
		"processed", processed,
		"selected", len(snapshots),
	)

	return &RunPortfolioRoiJobResult{Processed: processed, RunID: runID}, nil
}

// resolvedWindow carries one portfolio's recompute plan between steps.
type resolvedWindow struct {
	timeline    domain.Timeline
	dates       []time.Time
	start       time.Time
	end         time.Time
	ingestStart time.Time
	mode        domain.AllocationMode
	source      string
}

func (h roiJobServiceHandler) processPortfolio(ctx context.Context, snapshot *model.RoiDashboardSnapshot, in RunPortfolioRoiJobInput) error {
	log := logger.FromContext(ctx)
	log.Infow("processing portfolio", "portfolioKey", snapshot.PortfolioKey)

	window, err := h.resolveWindow(ctx, snapshot, in)
	if err != nil {
		return h.recordFailure(ctx, snapshot, err)
	}

	tickers := window.timeline.Tickers()
	err = h.PriceService.EnsurePrices(ctx, tickers, window.ingestStart.AddDate(0, 0, -priceLookbackBufferDays), window.end)
	if err != nil {
		return h.recordFailure(ctx, snapshot, err)
	}

	prices, err := h.PriceService.LoadPrices(tickers, window.start.AddDate(0, 0, -priceLookbackBufferDays), window.end)
	if err != nil {
		return h.recordFailure(ctx, snapshot, domain.PersistenceError{Op: "load prices", Err: err})
	}

	series := BuildNav(ctx, window.dates, window.timeline, prices)
	if len(series) == 0 {
		return h.recordFailure(ctx, snapshot, domain.EmptyNavError{PortfolioKey: snapshot.PortfolioKey})
	}

	metrics, err := calculator.ComputeMetrics(series)
	if err != nil {
		return h.recordFailure(ctx, snapshot, fmt.Errorf("failed to compute metrics: %w", err))
	}

	err = h.persist(ctx, snapshot, window, series, metrics)
	if err != nil {
		return h.recordFailure(ctx, snapshot, err)
	}

	log.Infow("portfolio recompute done",
		"portfolioKey", snapshot.PortfolioKey,
		"days", len(series),
		"roiInception", metrics.RoiInception.StringFixed(4),
	)
	return nil
}

// resolveWindow decides the calendar window and resolves the per-day asset
// timeline. Weighted allocation snapshots take precedence over primary
// signals when a portfolio has both. The NAV series is always rebuilt from
// inception so normalization stays consistent; recompute_from_date only
// narrows how far back prices must be re-ingested.
func (h roiJobServiceHandler) resolveWindow(ctx context.Context, snapshot *model.RoiDashboardSnapshot, in RunPortfolioRoiJobInput) (*resolvedWindow, error) {
	decisions, err := h.AllocationRepository.List(snapshot.PortfolioKey)
	if err != nil {
		return nil, domain.PersistenceError{Op: "list allocation snapshots", Err: err}
	}
	signals, err := h.SignalRepository.List(snapshot.Scope, snapshot.PortfolioKey)
	if err != nil {
		return nil, domain.PersistenceError{Op: "list primary signals", Err: err}
	}

	if len(decisions) == 0 && len(signals) == 0 {
		return nil, domain.UnresolvedPrimaryError{
			PortfolioKey: snapshot.PortfolioKey,
			Reason:       "no allocation snapshots or primary signals recorded",
		}
	}

	end := util.Midnight(time.Now().UTC())
	if in.ForceEndDate != nil {
		end = util.Midnight(*in.ForceEndDate)
	}

	var start time.Time
	switch {
	case in.ForceStartDate != nil:
		start = util.Midnight(*in.ForceStartDate)
	case len(decisions) > 0:
		start = util.Midnight(decisions[0].AsOfDate)
	default:
		start = util.Midnight(signals[0].PublishedAt)
	}
	if start.After(end) {
		return nil, domain.UnresolvedPrimaryError{
			PortfolioKey: snapshot.PortfolioKey,
			Reason:       fmt.Sprintf("window start %s is after end %s", start.Format(time.DateOnly), end.Format(time.DateOnly)),
		}
	}

	ingestStart := start
	if snapshot.RecomputeFromDate != nil && in.ForceStartDate == nil {
		ingestStart = util.Midnight(*snapshot.RecomputeFromDate)
	}

	dates := util.DaysBetween(start, end)

	window := &resolvedWindow{
		dates:       dates,
		start:       start,
		end:         end,
		ingestStart: ingestStart,
	}
	if len(decisions) > 0 {
		window.mode = domain.AllocationModeWeighted
		window.source = "allocation"
		window.timeline = ResolveWeightedTimeline(ctx, dates, decisions)
	} else {
		window.mode = domain.AllocationModePrimary
		window.source = "signal"
		if len(signals) == 0 {
			window.source = "fallback"
		}
		window.timeline = ResolvePrimaryTimeline(ctx, dates, signals, h.fallbackAsset(ctx, snapshot))
	}

	if len(window.timeline) == 0 {
		return nil, domain.UnresolvedPrimaryError{
			PortfolioKey: snapshot.PortfolioKey,
			Reason:       "no day in window resolves to a known asset",
		}
	}

	return window, nil
}

// fallbackAsset prefers the primary recorded on the last successful run so a
// portfolio whose signals all fail to parse keeps pricing against what it
// last held.
func (h roiJobServiceHandler) fallbackAsset(ctx context.Context, snapshot *model.RoiDashboardSnapshot) domain.ResolvedAsset {
	payload, err := domain.SnapshotPayloadFromJSON(snapshot.Payload)
	if err != nil {
		logger.FromContext(ctx).Warnw("unreadable snapshot payload, using default fallback",
			"portfolioKey", snapshot.PortfolioKey,
			"error", err,
		)
		return defaultPrimaryFallback
	}
	if payload.PrimarySymbol != nil && payload.PrimaryTicker != nil {
		return domain.ResolvedAsset{Symbol: *payload.PrimarySymbol, Ticker: *payload.PrimaryTicker}
	}
	return defaultPrimaryFallback
}

// persist writes the recomputed series and the snapshot in one transaction
// per portfolio, so readers never observe a half-written series.
func (h roiJobServiceHandler) persist(ctx context.Context, snapshot *model.RoiDashboardSnapshot, window *resolvedWindow, series domain.NavSeries, metrics *domain.MetricsResult) error {
	tx, err := h.Db.Begin()
	if err != nil {
		return domain.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	points := []model.PerformanceSeries{}
	for _, p := range series {
		points = append(points, model.PerformanceSeries{
			SeriesType:   model.SeriesType_PortfolioNav,
			Date:         p.Date,
			PortfolioKey: snapshot.PortfolioKey,
			Value:        p.Value,
			CreatedAt:    now,
		})
	}
	if err := h.SeriesRepository.UpsertMany(tx, points); err != nil {
		return domain.PersistenceError{Op: "upsert performance series", Err: err}
	}

	payload := h.successPayload(window, series)
	rawPayload, err := payload.ToJSONString()
	if err != nil {
		return domain.PersistenceError{Op: "marshal snapshot payload", Err: err}
	}

	snapshot.NeedsRecompute = false
	snapshot.RecomputeFromDate = nil
	snapshot.AsOfDate = metrics.AsOfDate
	snapshot.RoiInception = util.DecimalPointer(metrics.RoiInception)
	snapshot.Roi30d = util.DecimalPointer(metrics.Roi30d)
	snapshot.MaxDrawdown = util.DecimalPointer(metrics.MaxDrawdown)
	snapshot.Volatility = util.DecimalPointer(metrics.Volatility)
	snapshot.LastComputedAt = &now
	snapshot.Payload = &rawPayload

	_, err = h.SnapshotRepository.Update(tx, snapshot, postgres.ColumnList{
		table.RoiDashboardSnapshot.NeedsRecompute,
		table.RoiDashboardSnapshot.RecomputeFromDate,
		table.RoiDashboardSnapshot.AsOfDate,
		table.RoiDashboardSnapshot.RoiInception,
		table.RoiDashboardSnapshot.Roi30d,
		table.RoiDashboardSnapshot.MaxDrawdown,
		table.RoiDashboardSnapshot.Volatility,
		table.RoiDashboardSnapshot.LastComputedAt,
		table.RoiDashboardSnapshot.Payload,
	})
	if err != nil {
		return domain.PersistenceError{Op: "update roi snapshot", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return domain.PersistenceError{Op: "commit", Err: err}
	}

	return nil
}

func (h roiJobServiceHandler) successPayload(window *resolvedWindow, series domain.NavSeries) domain.SnapshotPayload {
	payload := domain.SnapshotPayload{
		PrimarySource: util.StringPointer(window.source),
		PrimaryMode:   util.StringPointer(string(window.mode)),
		LastPriceDate: util.StringPointer(series.Last().Date.Format(time.DateOnly)),
		LastError:     nil,
	}

	if alloc, ok := window.timeline.Get(series.Last().Date); ok {
		if alloc.Mode == domain.AllocationModePrimary && alloc.Primary != nil {
			payload.PrimarySymbol = util.StringPointer(alloc.Primary.Symbol)
			payload.PrimaryTicker = util.StringPointer(alloc.Primary.Ticker)
		} else if len(alloc.Weights) > 0 {
			top := alloc.Weights[0]
			for _, w := range alloc.Weights[1:] {
				if w.Weight.GreaterThan(top.Weight) {
					top = w
				}
			}
			payload.PrimarySymbol = util.StringPointer(top.Symbol)
			payload.PrimaryTicker = util.StringPointer(top.Ticker)
		}
	}

	return payload
}

// recordFailure stamps the failure into the snapshot's diagnostic payload so
// the condition is visible from the dashboard without log access. Terminal
// failures (nothing to resolve) also clear needs_recompute: retrying without
// new allocation data would just spin every run.
func (h roiJobServiceHandler) recordFailure(ctx context.Context, snapshot *model.RoiDashboardSnapshot, cause error) error {
	log := logger.FromContext(ctx)

	payload, err := domain.SnapshotPayloadFromJSON(snapshot.Payload)
	if err != nil {
		payload = &domain.SnapshotPayload{}
	}
	payload.LastError = util.StringPointer(cause.Error())

	columns := postgres.ColumnList{table.RoiDashboardSnapshot.Payload}

	var unresolved domain.UnresolvedPrimaryError
	if errors.As(cause, &unresolved) {
		snapshot.NeedsRecompute = false
		columns = append(columns, table.RoiDashboardSnapshot.NeedsRecompute)
	}

	rawPayload, err := payload.ToJSONString()
	if err != nil {
		log.Errorw("failed to marshal failure payload", "portfolioKey", snapshot.PortfolioKey, "error", err)
		return cause
	}
	snapshot.Payload = &rawPayload

	if _, err := h.SnapshotRepository.Update(nil, snapshot, columns); err != nil {
		log.Errorw("failed to record failure on snapshot",
			"portfolioKey", snapshot.PortfolioKey,
			"error", err,
		)
	}

	return cause
}
