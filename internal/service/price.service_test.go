package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/domain"
	"roiengine/internal/repository"
	"roiengine/pkg/marketdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakePriceSupplier struct {
	closes map[string][]marketdata.DailyClose
	err    error
	calls  int
}

func (f *fakePriceSupplier) GetDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (map[string][]marketdata.DailyClose, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.closes, nil
}

// fakeAssetPriceRepository mimics the real repository's value-level diffing
// over an in-memory store.
type fakeAssetPriceRepository struct {
	stored map[string]decimal.Decimal
}

func newFakeAssetPriceRepository() *fakeAssetPriceRepository {
	return &fakeAssetPriceRepository{stored: map[string]decimal.Decimal{}}
}

func (f *fakeAssetPriceRepository) UpsertMany(tx *sql.Tx, prices []model.AssetPriceDaily) (*repository.UpsertPriceCounts, error) {
	counts := &repository.UpsertPriceCounts{}
	for _, p := range prices {
		key := p.Symbol + "|" + p.Date.Format(time.DateOnly)
		prev, ok := f.stored[key]
		if !ok {
			counts.Inserted++
		} else if !prev.Equal(p.Close) {
			counts.Updated++
		}
		f.stored[key] = p.Close
	}
	return counts, nil
}

func (f *fakeAssetPriceRepository) List(symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	return nil, nil
}

func (f *fakeAssetPriceRepository) ListMany(symbols []string, start, end time.Time) (domain.PriceMap, error) {
	return domain.PriceMap{}, nil
}

func TestEnsurePrices(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("stores supplier closes", func(t *testing.T) {
		supplier := &fakePriceSupplier{
			closes: map[string][]marketdata.DailyClose{
				"BTC-USD": {
					{Date: day1, Close: decimal.NewFromInt(50000)},
					{Date: day1.AddDate(0, 0, 1), Close: decimal.NewFromInt(51000)},
				},
			},
		}
		priceRepository := newFakeAssetPriceRepository()
		svc := NewPriceService(supplier, priceRepository)

		err := svc.EnsurePrices(ctx, []string{"BTC-USD"}, day1, day1.AddDate(0, 0, 1))
		require.NoError(t, err)

		require.Len(t, priceRepository.stored, 2)
		require.Equal(t, 1, supplier.calls)
	})

	t.Run("supplier returning no closes for a ticker is a total failure", func(t *testing.T) {
		supplier := &fakePriceSupplier{
			closes: map[string][]marketdata.DailyClose{
				"BTC-USD": {{Date: day1, Close: decimal.NewFromInt(50000)}},
			},
		}
		svc := NewPriceService(supplier, newFakeAssetPriceRepository())

		err := svc.EnsurePrices(ctx, []string{"BTC-USD", "ETH-USD"}, day1, day1)
		require.Error(t, err)

		var supplierErr domain.PriceSupplierError
		require.True(t, errors.As(err, &supplierErr))
		require.Equal(t, "ETH-USD", supplierErr.Symbol)
	})

	t.Run("supplier errors propagate", func(t *testing.T) {
		supplier := &fakePriceSupplier{err: errors.New("rate limited")}
		svc := NewPriceService(supplier, newFakeAssetPriceRepository())

		err := svc.EnsurePrices(ctx, []string{"BTC-USD"}, day1, day1)
		require.Error(t, err)
	})

	t.Run("cash never hits the supplier", func(t *testing.T) {
		supplier := &fakePriceSupplier{}
		priceRepository := newFakeAssetPriceRepository()
		svc := NewPriceService(supplier, priceRepository)

		err := svc.EnsurePrices(ctx, []string{CashTicker}, day1, day1.AddDate(0, 0, 2))
		require.NoError(t, err)

		require.Equal(t, 0, supplier.calls)
		require.Len(t, priceRepository.stored, 3)
		for _, close := range priceRepository.stored {
			require.True(t, close.Equal(decimal.NewFromInt(1)))
		}
	})

	t.Run("re-ingesting identical data changes nothing", func(t *testing.T) {
		supplier := &fakePriceSupplier{
			closes: map[string][]marketdata.DailyClose{
				"BTC-USD": {
					{Date: day1, Close: decimal.NewFromInt(50000)},
					{Date: day1.AddDate(0, 0, 1), Close: decimal.NewFromInt(51000)},
				},
			},
		}
		priceRepository := newFakeAssetPriceRepository()
		svc := NewPriceService(supplier, priceRepository)

		err := svc.EnsurePrices(ctx, []string{"BTC-USD"}, day1, day1.AddDate(0, 0, 1))
		require.NoError(t, err)
		firstPass := map[string]decimal.Decimal{}
		for k, v := range priceRepository.stored {
			firstPass[k] = v
		}

		err = svc.EnsurePrices(ctx, []string{"BTC-USD"}, day1, day1.AddDate(0, 0, 1))
		require.NoError(t, err)

		require.Len(t, priceRepository.stored, len(firstPass))
		for k, v := range priceRepository.stored {
			require.True(t, v.Equal(firstPass[k]), "close for %s changed on re-ingestion", k)
		}
	})
}
