package service

import (
	"context"
	"fmt"
	"time"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/domain"
	"roiengine/internal/logger"
	"roiengine/internal/repository"
	"roiengine/pkg/marketdata"

	"github.com/shopspring/decimal"
)

// CashTicker marks the implied cash asset. It never hits the supplier; its
// close is a constant 1.
const CashTicker = "CASH"

// PriceSupplier is the engine's only view of the external price source. It
// must return at least one point per requested symbol within the window or
// the caller treats that symbol as a total failure.
type PriceSupplier interface {
	GetDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (map[string][]marketdata.DailyClose, error)
}

type PriceService interface {
	EnsurePrices(ctx context.Context, tickers []string, start, end time.Time) error
	LoadPrices(tickers []string, start, end time.Time) (domain.PriceMap, error)
}

func NewPriceService(supplier PriceSupplier, priceRepository repository.AssetPriceRepository) PriceService {
	return priceServiceHandler{
		Supplier:        supplier,
		PriceRepository: priceRepository,
	}
}

type priceServiceHandler struct {
	Supplier        PriceSupplier
	PriceRepository repository.AssetPriceRepository
}

// EnsurePrices fetches the whole window for every ticker in one supplier pass
// and upserts what came back. Re-running with unchanged supplier data is a
// value-level no-op. Each ticker's window is its own unit of work - prices
// are idempotently re-derivable, so cross-symbol atomicity buys nothing.
func (h priceServiceHandler) EnsurePrices(ctx context.Context, tickers []string, start, end time.Time) error {
	log := logger.FromContext(ctx)

	marketTickers := []string{}
	for _, t := range tickers {
		if t == CashTicker {
			continue
		}
		marketTickers = append(marketTickers, t)
	}

	closesByTicker := map[string][]marketdata.DailyClose{}
	if len(marketTickers) > 0 {
		var err error
		closesByTicker, err = h.Supplier.GetDailyCloses(ctx, marketTickers, start, end)
		if err != nil {
			return fmt.Errorf("price supplier request failed: %w", err)
		}
	}

	for _, ticker := range marketTickers {
		closes := closesByTicker[ticker]
		if len(closes) == 0 {
			return domain.PriceSupplierError{Symbol: ticker, Start: start, End: end}
		}

		now := time.Now().UTC()
		rows := []model.AssetPriceDaily{}
		for _, c := range closes {
			rows = append(rows, model.AssetPriceDaily{
				Symbol:    ticker,
				Date:      c.Date,
				Close:     c.Close,
				Source:    model.PriceSource_Market,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}

		counts, err := h.PriceRepository.UpsertMany(nil, rows)
		if err != nil {
			return fmt.Errorf("failed to store prices for %s: %w", ticker, err)
		}
		log.Infow("ingested prices",
			"ticker", ticker,
			"points", len(rows),
			"inserted", counts.Inserted,
			"updated", counts.Updated,
		)
	}

	return h.ensureCashPrices(ctx, tickers, start, end)
}

func (h priceServiceHandler) ensureCashPrices(ctx context.Context, tickers []string, start, end time.Time) error {
	hasCash := false
	for _, t := range tickers {
		if t == CashTicker {
			hasCash = true
		}
	}
	if !hasCash {
		return nil
	}

	now := time.Now().UTC()
	rows := []model.AssetPriceDaily{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		rows = append(rows, model.AssetPriceDaily{
			Symbol:    CashTicker,
			Date:      d,
			Close:     decimal.NewFromInt(1),
			Source:    model.PriceSource_Cash,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	counts, err := h.PriceRepository.UpsertMany(nil, rows)
	if err != nil {
		return fmt.Errorf("failed to store cash prices: %w", err)
	}
	logger.FromContext(ctx).Infow("ingested prices",
		"ticker", CashTicker,
		"points", len(rows),
		"inserted", counts.Inserted,
		"updated", counts.Updated,
	)

	return nil
}

func (h priceServiceHandler) LoadPrices(tickers []string, start, end time.Time) (domain.PriceMap, error) {
	return h.PriceRepository.ListMany(tickers, start, end)
}

var _ PriceSupplier = marketdata.Client{}
