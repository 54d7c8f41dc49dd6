package repository

import (
	"database/sql"
	"fmt"
	"time"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
)

type PerformanceSeriesRepository interface {
	UpsertMany(tx *sql.Tx, points []model.PerformanceSeries) error
	List(seriesType model.SeriesType, portfolioKey string, start, end time.Time) ([]model.PerformanceSeries, error)
}

func NewPerformanceSeriesRepository(db *sql.DB) PerformanceSeriesRepository {
	return performanceSeriesRepositoryHandler{Db: db}
}

type performanceSeriesRepositoryHandler struct {
	Db *sql.DB
}

// UpsertMany writes one portfolio's recomputed window. The caller wraps it in
// a transaction so consumers never observe a partially written series.
func (h performanceSeriesRepositoryHandler) UpsertMany(tx *sql.Tx, points []model.PerformanceSeries) error {
	if len(points) == 0 {
		return nil
	}

	query := table.PerformanceSeries.
		INSERT(table.PerformanceSeries.MutableColumns).
		MODELS(points).
		ON_CONFLICT(
			table.PerformanceSeries.SeriesType,
			table.PerformanceSeries.Date,
			table.PerformanceSeries.PortfolioKey,
		).DO_UPDATE(
		postgres.SET(
			table.PerformanceSeries.Value.SET(table.PerformanceSeries.EXCLUDED.Value),
		),
	)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to upsert %d performance series points: %w", len(points), err)
	}

	return nil
}

func (h performanceSeriesRepositoryHandler) List(seriesType model.SeriesType, portfolioKey string, start, end time.Time) ([]model.PerformanceSeries, error) {
	query := table.PerformanceSeries.
		SELECT(table.PerformanceSeries.AllColumns).
		WHERE(
			postgres.AND(
				table.PerformanceSeries.SeriesType.EQ(postgres.String(seriesType.String())),
				table.PerformanceSeries.PortfolioKey.EQ(postgres.String(portfolioKey)),
				table.PerformanceSeries.Date.BETWEEN(postgres.DateT(start), postgres.DateT(end)),
			),
		).
		ORDER_BY(table.PerformanceSeries.Date.ASC())

	result := []model.PerformanceSeries{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance series for %s: %w", portfolioKey, err)
	}

	return result, nil
}
