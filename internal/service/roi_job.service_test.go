package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/domain"
	"roiengine/internal/repository"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeJobLockRepository struct {
	result   *repository.AcquireLockResult
	acquires int
	released bool
}

func (f *fakeJobLockRepository) Acquire(runID uuid.UUID, holder, trigger string) (*repository.AcquireLockResult, error) {
	f.acquires++
	return f.result, nil
}

func (f *fakeJobLockRepository) Release() error {
	f.released = true
	return nil
}

type fakeRoiSnapshotRepository struct {
	snapshots []model.RoiDashboardSnapshot
	updates   []model.RoiDashboardSnapshot
	lists     int
}

func (f *fakeRoiSnapshotRepository) Get(scope, portfolioKey string) (*model.RoiDashboardSnapshot, error) {
	for i := range f.snapshots {
		if f.snapshots[i].Scope == scope && f.snapshots[i].PortfolioKey == portfolioKey {
			return &f.snapshots[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRoiSnapshotRepository) List(filter repository.ListSnapshotsFilter) ([]model.RoiDashboardSnapshot, error) {
	f.lists++
	return f.snapshots, nil
}

func (f *fakeRoiSnapshotRepository) Update(tx *sql.Tx, snapshot *model.RoiDashboardSnapshot, columns postgres.ColumnList) (*model.RoiDashboardSnapshot, error) {
	f.updates = append(f.updates, *snapshot)
	return snapshot, nil
}

type fakeAllocationSnapshotRepository struct {
	decisions []domain.AllocationDecision
}

func (f fakeAllocationSnapshotRepository) List(portfolioKey string) ([]domain.AllocationDecision, error) {
	return f.decisions, nil
}

type fakePrimarySignalRepository struct {
	signals []domain.RawSignal
}

func (f fakePrimarySignalRepository) List(scope, portfolioKey string) ([]domain.RawSignal, error) {
	return f.signals, nil
}

type fakePerformanceSeriesRepository struct {
	upserted []model.PerformanceSeries
}

func (f *fakePerformanceSeriesRepository) UpsertMany(tx *sql.Tx, points []model.PerformanceSeries) error {
	f.upserted = append(f.upserted, points...)
	return nil
}

func (f *fakePerformanceSeriesRepository) List(seriesType model.SeriesType, portfolioKey string, start, end time.Time) ([]model.PerformanceSeries, error) {
	return nil, nil
}

type fakePriceService struct {
	ensureErr error
	prices    domain.PriceMap
}

func (f fakePriceService) EnsurePrices(ctx context.Context, tickers []string, start, end time.Time) error {
	return f.ensureErr
}

func (f fakePriceService) LoadPrices(tickers []string, start, end time.Time) (domain.PriceMap, error) {
	if f.prices == nil {
		return domain.PriceMap{}, nil
	}
	return f.prices, nil
}

func dirtySnapshot(portfolioKey string) model.RoiDashboardSnapshot {
	return model.RoiDashboardSnapshot{
		RoiDashboardSnapshotID: uuid.New(),
		Scope:                  SnapshotScope,
		PortfolioKey:           portfolioKey,
		NeedsRecompute:         true,
	}
}

func TestRunPortfolioRoiJob(t *testing.T) {
	ctx := context.Background()

	t.Run("held lock skips the whole run", func(t *testing.T) {
		lockRepository := &fakeJobLockRepository{
			result: &repository.AcquireLockResult{
				Acquired:     false,
				HeldByRunID:  uuid.NewString(),
				HeldByHolder: "other-host",
			},
		}
		snapshotRepository := &fakeRoiSnapshotRepository{}
		svc := NewRoiJobService(nil, lockRepository, snapshotRepository, fakeAllocationSnapshotRepository{}, fakePrimarySignalRepository{}, &fakePerformanceSeriesRepository{}, fakePriceService{})

		result, err := svc.RunPortfolioRoiJob(ctx, RunPortfolioRoiJobInput{Trigger: "test"})
		require.NoError(t, err)

		require.Equal(t, "locked", result.Skipped)
		require.Equal(t, 0, result.Processed)
		require.Equal(t, 0, snapshotRepository.lists)
		require.False(t, lockRepository.released, "a lock we never held must not be released")
	})

	t.Run("stolen lock proceeds and releases", func(t *testing.T) {
		lockRepository := &fakeJobLockRepository{
			result: &repository.AcquireLockResult{
				Acquired:      true,
				Stolen:        true,
				PreviousRunID: uuid.NewString(),
			},
		}
		snapshotRepository := &fakeRoiSnapshotRepository{}
		svc := NewRoiJobService(nil, lockRepository, snapshotRepository, fakeAllocationSnapshotRepository{}, fakePrimarySignalRepository{}, &fakePerformanceSeriesRepository{}, fakePriceService{})

		result, err := svc.RunPortfolioRoiJob(ctx, RunPortfolioRoiJobInput{Trigger: "test"})
		require.NoError(t, err)

		require.Empty(t, result.Skipped)
		require.True(t, lockRepository.released)
	})

	t.Run("portfolio with no allocation data fails terminally", func(t *testing.T) {
		lockRepository := &fakeJobLockRepository{result: &repository.AcquireLockResult{Acquired: true}}
		snapshotRepository := &fakeRoiSnapshotRepository{
			snapshots: []model.RoiDashboardSnapshot{dirtySnapshot("orphan")},
		}
		svc := NewRoiJobService(nil, lockRepository, snapshotRepository, fakeAllocationSnapshotRepository{}, fakePrimarySignalRepository{}, &fakePerformanceSeriesRepository{}, fakePriceService{})

		result, err := svc.RunPortfolioRoiJob(ctx, RunPortfolioRoiJobInput{Trigger: "test"})
		require.NoError(t, err)

		require.Equal(t, 0, result.Processed)
		require.True(t, lockRepository.released)

		require.Len(t, snapshotRepository.updates, 1)
		updated := snapshotRepository.updates[0]
		require.False(t, updated.NeedsRecompute, "terminal failures must clear the dirty flag")

		payload, parseErr := domain.SnapshotPayloadFromJSON(updated.Payload)
		require.NoError(t, parseErr)
		require.NotNil(t, payload.LastError)
	})

	t.Run("supplier failure keeps the portfolio dirty", func(t *testing.T) {
		lockRepository := &fakeJobLockRepository{result: &repository.AcquireLockResult{Acquired: true}}
		snapshotRepository := &fakeRoiSnapshotRepository{
			snapshots: []model.RoiDashboardSnapshot{dirtySnapshot("main")},
		}
		signalRepository := fakePrimarySignalRepository{
			signals: []domain.RawSignal{
				{PublishedAt: time.Now().UTC().AddDate(0, 0, -10), Raw: "BTC"},
			},
		}
		priceService := fakePriceService{
			ensureErr: domain.PriceSupplierError{Symbol: "BTC-USD"},
		}
		svc := NewRoiJobService(nil, lockRepository, snapshotRepository, fakeAllocationSnapshotRepository{}, signalRepository, &fakePerformanceSeriesRepository{}, priceService)

		result, err := svc.RunPortfolioRoiJob(ctx, RunPortfolioRoiJobInput{Trigger: "test"})
		require.NoError(t, err)

		require.Equal(t, 0, result.Processed)

		require.Len(t, snapshotRepository.updates, 1)
		updated := snapshotRepository.updates[0]
		require.True(t, updated.NeedsRecompute, "supplier failures must be retried on the next run")

		payload, parseErr := domain.SnapshotPayloadFromJSON(updated.Payload)
		require.NoError(t, parseErr)
		require.NotNil(t, payload.LastError)
	})

	t.Run("empty nav after ingestion keeps the portfolio dirty", func(t *testing.T) {
		lockRepository := &fakeJobLockRepository{result: &repository.AcquireLockResult{Acquired: true}}
		snapshotRepository := &fakeRoiSnapshotRepository{
			snapshots: []model.RoiDashboardSnapshot{dirtySnapshot("main")},
		}
		signalRepository := fakePrimarySignalRepository{
			signals: []domain.RawSignal{
				{PublishedAt: time.Now().UTC().AddDate(0, 0, -5), Raw: "BTC"},
			},
		}
		// ingestion "succeeds" but the cache has nothing for the window
		svc := NewRoiJobService(nil, lockRepository, snapshotRepository, fakeAllocationSnapshotRepository{}, signalRepository, &fakePerformanceSeriesRepository{}, fakePriceService{})

		result, err := svc.RunPortfolioRoiJob(ctx, RunPortfolioRoiJobInput{Trigger: "test"})
		require.NoError(t, err)

		require.Equal(t, 0, result.Processed)
		require.Len(t, snapshotRepository.updates, 1)
		require.True(t, snapshotRepository.updates[0].NeedsRecompute)
	})

	t.Run("one portfolio's failure does not abort the rest", func(t *testing.T) {
		lockRepository := &fakeJobLockRepository{result: &repository.AcquireLockResult{Acquired: true}}
		snapshotRepository := &fakeRoiSnapshotRepository{
			snapshots: []model.RoiDashboardSnapshot{
				dirtySnapshot("first"),
				dirtySnapshot("second"),
			},
		}
		svc := NewRoiJobService(nil, lockRepository, snapshotRepository, fakeAllocationSnapshotRepository{}, fakePrimarySignalRepository{}, &fakePerformanceSeriesRepository{}, fakePriceService{})

		result, err := svc.RunPortfolioRoiJob(ctx, RunPortfolioRoiJobInput{Trigger: "test"})
		require.NoError(t, err)

		require.Equal(t, 0, result.Processed)
		// both portfolios were attempted and stamped, lock still released
		require.Len(t, snapshotRepository.updates, 2)
		require.True(t, lockRepository.released)
	})
}

func Test_resolveWindow(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	newHandler := func(decisions []domain.AllocationDecision, signals []domain.RawSignal) roiJobServiceHandler {
		return roiJobServiceHandler{
			AllocationRepository: fakeAllocationSnapshotRepository{decisions: decisions},
			SignalRepository:     fakePrimarySignalRepository{signals: signals},
		}
	}

	t.Run("weighted decisions take precedence over signals", func(t *testing.T) {
		h := newHandler(
			[]domain.AllocationDecision{
				{AsOfDate: day1, Items: []domain.AllocationItem{{Symbol: "BTC", Weight: decimal.NewFromInt(1)}}},
			},
			[]domain.RawSignal{{PublishedAt: day1, Raw: "ETH"}},
		)
		snapshot := dirtySnapshot("main")

		window, err := h.resolveWindow(ctx, &snapshot, RunPortfolioRoiJobInput{})
		require.NoError(t, err)

		require.Equal(t, domain.AllocationModeWeighted, window.mode)
		require.Equal(t, "allocation", window.source)
		require.Equal(t, day1, window.start)
	})

	t.Run("window starts at the earliest signal", func(t *testing.T) {
		h := newHandler(nil, []domain.RawSignal{
			{PublishedAt: day1.Add(9 * time.Hour), Raw: "BTC"},
			{PublishedAt: day1.AddDate(0, 0, 5), Raw: "ETH"},
		})
		snapshot := dirtySnapshot("main")

		window, err := h.resolveWindow(ctx, &snapshot, RunPortfolioRoiJobInput{})
		require.NoError(t, err)

		require.Equal(t, domain.AllocationModePrimary, window.mode)
		require.Equal(t, "signal", window.source)
		require.Equal(t, day1, window.start)
	})

	t.Run("force dates override the derived window", func(t *testing.T) {
		h := newHandler(nil, []domain.RawSignal{{PublishedAt: day1, Raw: "BTC"}})
		snapshot := dirtySnapshot("main")

		forcedStart := day1.AddDate(0, 0, 2)
		forcedEnd := day1.AddDate(0, 0, 4)
		window, err := h.resolveWindow(ctx, &snapshot, RunPortfolioRoiJobInput{
			ForceStartDate: &forcedStart,
			ForceEndDate:   &forcedEnd,
		})
		require.NoError(t, err)

		require.Equal(t, forcedStart, window.start)
		require.Equal(t, forcedEnd, window.end)
		require.Len(t, window.dates, 3)
	})

	t.Run("recompute-from date narrows ingestion but not the series", func(t *testing.T) {
		h := newHandler(nil, []domain.RawSignal{{PublishedAt: day1, Raw: "BTC"}})
		snapshot := dirtySnapshot("main")
		recomputeFrom := day1.AddDate(0, 0, 30)
		snapshot.RecomputeFromDate = &recomputeFrom

		window, err := h.resolveWindow(ctx, &snapshot, RunPortfolioRoiJobInput{})
		require.NoError(t, err)

		require.Equal(t, day1, window.start)
		require.Equal(t, recomputeFrom, window.ingestStart)
	})

	t.Run("window start after end is terminal", func(t *testing.T) {
		h := newHandler(nil, []domain.RawSignal{{PublishedAt: day1, Raw: "BTC"}})
		snapshot := dirtySnapshot("main")

		forcedStart := day1.AddDate(0, 0, 4)
		forcedEnd := day1
		_, err := h.resolveWindow(ctx, &snapshot, RunPortfolioRoiJobInput{
			ForceStartDate: &forcedStart,
			ForceEndDate:   &forcedEnd,
		})
		require.Error(t, err)
		require.ErrorAs(t, err, &domain.UnresolvedPrimaryError{})
	})
}

func Test_fallbackAsset(t *testing.T) {
	ctx := context.Background()
	h := roiJobServiceHandler{}

	t.Run("empty payload uses the default", func(t *testing.T) {
		snapshot := dirtySnapshot("main")
		out := h.fallbackAsset(ctx, &snapshot)
		require.Equal(t, defaultPrimaryFallback, out)
	})

	t.Run("payload primary wins", func(t *testing.T) {
		snapshot := dirtySnapshot("main")
		symbol := "SOL"
		ticker := "SOL-USD"
		raw, err := domain.SnapshotPayload{
			PrimarySymbol: &symbol,
			PrimaryTicker: &ticker,
		}.ToJSONString()
		require.NoError(t, err)
		snapshot.Payload = &raw

		out := h.fallbackAsset(ctx, &snapshot)
		require.Equal(t, domain.ResolvedAsset{Symbol: "SOL", Ticker: "SOL-USD"}, out)
	})
}
