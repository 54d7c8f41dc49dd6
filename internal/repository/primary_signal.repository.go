package repository

import (
	"database/sql"
	"fmt"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/db/models/postgres/public/table"
	"roiengine/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
)

type PrimarySignalRepository interface {
	List(scope, portfolioKey string) ([]domain.RawSignal, error)
}

func NewPrimarySignalRepository(db *sql.DB) PrimarySignalRepository {
	return primarySignalRepositoryHandler{Db: db}
}

type primarySignalRepositoryHandler struct {
	Db *sql.DB
}

func (h primarySignalRepositoryHandler) List(scope, portfolioKey string) ([]domain.RawSignal, error) {
	query := table.PrimarySignal.
		SELECT(table.PrimarySignal.AllColumns).
		WHERE(
			postgres.AND(
				table.PrimarySignal.Scope.EQ(postgres.String(scope)),
				table.PrimarySignal.PortfolioKey.EQ(postgres.String(portfolioKey)),
			),
		).
		ORDER_BY(table.PrimarySignal.PublishedAt.ASC())

	result := []model.PrimarySignal{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list primary signals for %s/%s: %w", scope, portfolioKey, err)
	}

	out := []domain.RawSignal{}
	for _, s := range result {
		out = append(out, domain.RawSignal{
			PublishedAt: s.PublishedAt,
			Raw:         s.RawSignal,
		})
	}

	return out, nil
}
