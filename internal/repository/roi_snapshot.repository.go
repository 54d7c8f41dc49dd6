package repository

import (
	"database/sql"
	"fmt"
	"time"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

// ListSnapshotsFilter narrows which dashboard snapshots a batch run picks up.
// By default only dirty (needs_recompute) rows are selected.
type ListSnapshotsFilter struct {
	Scope        string
	PortfolioKey *string
	IncludeClean bool
}

type RoiSnapshotRepository interface {
	Get(scope, portfolioKey string) (*model.RoiDashboardSnapshot, error)
	List(filter ListSnapshotsFilter) ([]model.RoiDashboardSnapshot, error)
	Update(tx *sql.Tx, snapshot *model.RoiDashboardSnapshot, columns postgres.ColumnList) (*model.RoiDashboardSnapshot, error)
}

func NewRoiSnapshotRepository(db *sql.DB) RoiSnapshotRepository {
	return roiSnapshotRepositoryHandler{Db: db}
}

type roiSnapshotRepositoryHandler struct {
	Db *sql.DB
}

func (h roiSnapshotRepositoryHandler) Get(scope, portfolioKey string) (*model.RoiDashboardSnapshot, error) {
	query := table.RoiDashboardSnapshot.
		SELECT(table.RoiDashboardSnapshot.AllColumns).
		WHERE(
			postgres.AND(
				table.RoiDashboardSnapshot.Scope.EQ(postgres.String(scope)),
				table.RoiDashboardSnapshot.PortfolioKey.EQ(postgres.String(portfolioKey)),
			),
		)

	result := model.RoiDashboardSnapshot{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to get roi snapshot %s/%s: %w", scope, portfolioKey, err)
	}

	return &result, nil
}

func (h roiSnapshotRepositoryHandler) List(filter ListSnapshotsFilter) ([]model.RoiDashboardSnapshot, error) {
	conditions := []postgres.BoolExpression{
		table.RoiDashboardSnapshot.Scope.EQ(postgres.String(filter.Scope)),
	}
	if !filter.IncludeClean {
		conditions = append(conditions, table.RoiDashboardSnapshot.NeedsRecompute.IS_TRUE())
	}
	if filter.PortfolioKey != nil {
		conditions = append(conditions, table.RoiDashboardSnapshot.PortfolioKey.EQ(postgres.String(*filter.PortfolioKey)))
	}

	query := table.RoiDashboardSnapshot.
		SELECT(table.RoiDashboardSnapshot.AllColumns).
		WHERE(postgres.AND(conditions...)).
		ORDER_BY(table.RoiDashboardSnapshot.PortfolioKey.ASC())

	result := []model.RoiDashboardSnapshot{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list roi snapshots: %w", err)
	}

	return result, nil
}

func (h roiSnapshotRepositoryHandler) Update(tx *sql.Tx, snapshot *model.RoiDashboardSnapshot, columns postgres.ColumnList) (*model.RoiDashboardSnapshot, error) {
	if snapshot.RoiDashboardSnapshotID == uuid.Nil {
		return nil, fmt.Errorf("failed to update roi snapshot - id not provided in inputted model")
	}
	snapshot.UpdatedAt = time.Now().UTC()
	columns = append(columns, table.RoiDashboardSnapshot.UpdatedAt)

	query := table.RoiDashboardSnapshot.
		UPDATE(columns).
		MODEL(snapshot).
		RETURNING(table.RoiDashboardSnapshot.AllColumns).
		WHERE(table.RoiDashboardSnapshot.RoiDashboardSnapshotID.EQ(
			postgres.UUID(snapshot.RoiDashboardSnapshotID),
		))

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.RoiDashboardSnapshot{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to update roi snapshot %s: %w", snapshot.RoiDashboardSnapshotID.String(), err)
	}

	return &out, nil
}
