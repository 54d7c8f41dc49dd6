package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/db/models/postgres/public/table"
	"roiengine/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
)

type AllocationSnapshotRepository interface {
	List(portfolioKey string) ([]domain.AllocationDecision, error)
}

func NewAllocationSnapshotRepository(db *sql.DB) AllocationSnapshotRepository {
	return allocationSnapshotRepositoryHandler{Db: db}
}

type allocationSnapshotRepositoryHandler struct {
	Db *sql.DB
}

// List returns the portfolio's full allocation history, oldest first.
// Snapshots are append-only; the admin surface creates them and nothing here
// ever mutates one.
func (h allocationSnapshotRepositoryHandler) List(portfolioKey string) ([]domain.AllocationDecision, error) {
	query := table.AllocationSnapshot.
		SELECT(table.AllocationSnapshot.AllColumns).
		WHERE(table.AllocationSnapshot.PortfolioKey.EQ(postgres.String(portfolioKey))).
		ORDER_BY(table.AllocationSnapshot.AsOfDate.ASC())

	result := []model.AllocationSnapshot{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocation snapshots for %s: %w", portfolioKey, err)
	}

	out := []domain.AllocationDecision{}
	for _, snapshot := range result {
		items := []domain.AllocationItem{}
		err = json.Unmarshal([]byte(snapshot.Items), &items)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal allocation items for %s on %v: %w",
				portfolioKey, snapshot.AsOfDate, err)
		}
		out = append(out, domain.AllocationDecision{
			AsOfDate: snapshot.AsOfDate,
			Items:    items,
		})
	}

	return out, nil
}
