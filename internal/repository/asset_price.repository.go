package repository

import (
	"database/sql"
	"fmt"
	"time"

	"roiengine/internal/db/models/postgres/public/model"
	. "roiengine/internal/db/models/postgres/public/table"
	"roiengine/internal/domain"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// UpsertPriceCounts reports what an ingestion pass actually changed. A
// re-ingestion of identical supplier data reports zero for both.
type UpsertPriceCounts struct {
	Inserted int
	Updated  int
}

type AssetPriceRepository interface {
	UpsertMany(tx *sql.Tx, prices []model.AssetPriceDaily) (*UpsertPriceCounts, error)
	List(symbol string, start, end time.Time) ([]domain.AssetPrice, error)
	ListMany(symbols []string, start, end time.Time) (domain.PriceMap, error)
}

func NewAssetPriceRepository(db *sql.DB) AssetPriceRepository {
	return assetPriceRepositoryHandler{Db: db}
}

type assetPriceRepositoryHandler struct {
	Db *sql.DB
}

// UpsertMany inserts or corrects one close per (symbol, date). Existing rows
// are diffed first so the returned counts reflect value-level changes, not
// just statements issued.
func (h assetPriceRepositoryHandler) UpsertMany(tx *sql.Tx, prices []model.AssetPriceDaily) (*UpsertPriceCounts, error) {
	if len(prices) == 0 {
		return &UpsertPriceCounts{}, nil
	}

	var db qrm.DB = h.Db
	if tx != nil {
		db = tx
	}

	symbolSet := map[string]bool{}
	symbolExprs := []Expression{}
	minDate := prices[0].Date
	maxDate := prices[0].Date
	for _, p := range prices {
		if !symbolSet[p.Symbol] {
			symbolSet[p.Symbol] = true
			symbolExprs = append(symbolExprs, String(p.Symbol))
		}
		if p.Date.Before(minDate) {
			minDate = p.Date
		}
		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	existingQuery := AssetPriceDaily.
		SELECT(AssetPriceDaily.AllColumns).
		WHERE(
			AND(
				AssetPriceDaily.Symbol.IN(symbolExprs...),
				AssetPriceDaily.Date.BETWEEN(DateT(minDate), DateT(maxDate)),
			),
		)

	existing := []model.AssetPriceDaily{}
	err := existingQuery.Query(db, &existing)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing prices: %w", err)
	}

	counts := diffPriceCounts(existing, prices)

	query := AssetPriceDaily.
		INSERT(AssetPriceDaily.MutableColumns).
		MODELS(prices).
		ON_CONFLICT(
			AssetPriceDaily.Symbol, AssetPriceDaily.Date,
		).DO_UPDATE(
		SET(
			AssetPriceDaily.Close.SET(AssetPriceDaily.EXCLUDED.Close),
			AssetPriceDaily.UpdatedAt.SET(AssetPriceDaily.EXCLUDED.UpdatedAt),
		),
	)

	_, err = query.Exec(db)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert prices: %w", err)
	}

	return counts, nil
}

// diffPriceCounts compares incoming rows against what is already stored.
// Only a close that actually differs counts as an update, so re-ingesting
// identical supplier data reports zero for both counts.
func diffPriceCounts(existing, incoming []model.AssetPriceDaily) *UpsertPriceCounts {
	existingCloses := map[string]model.AssetPriceDaily{}
	for _, e := range existing {
		existingCloses[e.Symbol+"|"+e.Date.Format(time.DateOnly)] = e
	}

	counts := &UpsertPriceCounts{}
	for _, p := range incoming {
		prev, ok := existingCloses[p.Symbol+"|"+p.Date.Format(time.DateOnly)]
		if !ok {
			counts.Inserted++
		} else if !prev.Close.Equal(p.Close) {
			counts.Updated++
		}
	}

	return counts
}

func (h assetPriceRepositoryHandler) List(symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	query := AssetPriceDaily.
		SELECT(AssetPriceDaily.AllColumns).
		WHERE(
			AND(
				AssetPriceDaily.Symbol.EQ(String(symbol)),
				AssetPriceDaily.Date.BETWEEN(DateT(start), DateT(end)),
			),
		).
		ORDER_BY(AssetPriceDaily.Date.ASC())

	result := []model.AssetPriceDaily{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices for %s: %w", symbol, err)
	}

	out := []domain.AssetPrice{}
	for _, p := range result {
		out = append(out, domain.AssetPrice{
			Symbol: p.Symbol,
			Date:   p.Date,
			Close:  p.Close,
		})
	}

	return out, nil
}

func (h assetPriceRepositoryHandler) ListMany(symbols []string, start, end time.Time) (domain.PriceMap, error) {
	symbolExprs := []Expression{}
	for _, s := range symbols {
		symbolExprs = append(symbolExprs, String(s))
	}

	query := AssetPriceDaily.
		SELECT(AssetPriceDaily.AllColumns).
		WHERE(
			AND(
				AssetPriceDaily.Symbol.IN(symbolExprs...),
				AssetPriceDaily.Date.BETWEEN(DateT(start), DateT(end)),
			),
		).
		ORDER_BY(AssetPriceDaily.Date.ASC())

	result := []model.AssetPriceDaily{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices for %d symbols: %w", len(symbols), err)
	}

	out := domain.PriceMap{}
	for _, p := range result {
		out.Set(p.Symbol, p.Date, p.Close)
	}

	return out, nil
}
