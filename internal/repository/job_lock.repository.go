package repository

import (
	"database/sql"
	"fmt"
	"time"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/db/models/postgres/public/table"
	"roiengine/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
)

// The lock is a reserved roi_dashboard_snapshot row: the unique constraint on
// (scope, portfolio_key) gives us insert-if-absent semantics on any storage
// engine, and last_computed_at doubles as lockedAt. No in-process mutex can
// serialize the job because multiple process instances may race.
const (
	lockScope = "JOB_LOCK"
	lockKey   = "portfolio-roi-recompute"

	// a holder that crashed without releasing is considered dead after this
	LockTTL = 30 * time.Minute
)

type AcquireLockResult struct {
	Acquired      bool
	Stolen        bool
	PreviousRunID string
	HeldByRunID   string
	HeldByHolder  string
}

type JobLockRepository interface {
	Acquire(runID uuid.UUID, holder, trigger string) (*AcquireLockResult, error)
	Release() error
}

func NewJobLockRepository(db *sql.DB) JobLockRepository {
	return jobLockRepositoryHandler{Db: db, now: time.Now}
}

type jobLockRepositoryHandler struct {
	Db  *sql.DB
	now func() time.Time
}

func (h jobLockRepositoryHandler) Acquire(runID uuid.UUID, holder, trigger string) (*AcquireLockResult, error) {
	payload, err := domain.SnapshotPayload{
		Lock: &domain.LockPayload{
			RunID:   runID.String(),
			Holder:  holder,
			Trigger: trigger,
		},
	}.ToJSONString()
	if err != nil {
		return nil, err
	}

	now := h.now().UTC()
	row := model.RoiDashboardSnapshot{
		Scope:          lockScope,
		PortfolioKey:   lockKey,
		NeedsRecompute: false,
		LastComputedAt: &now,
		Payload:        &payload,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	query := table.RoiDashboardSnapshot.
		INSERT(table.RoiDashboardSnapshot.MutableColumns).
		MODEL(row).
		ON_CONFLICT(
			table.RoiDashboardSnapshot.Scope,
			table.RoiDashboardSnapshot.PortfolioKey,
		).DO_NOTHING()

	result, err := query.Exec(h.Db)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job lock row: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read job lock insert result: %w", err)
	}
	if inserted == 1 {
		return &AcquireLockResult{Acquired: true}, nil
	}

	// somebody holds it - find out who and since when
	current, err := h.get()
	if err != nil {
		return nil, err
	}
	currentPayload, err := domain.SnapshotPayloadFromJSON(current.Payload)
	if err != nil {
		return nil, err
	}

	heldBy := AcquireLockResult{}
	if currentPayload.Lock != nil {
		heldBy.HeldByRunID = currentPayload.Lock.RunID
		heldBy.HeldByHolder = currentPayload.Lock.Holder
	}

	if !lockIsStale(current.LastComputedAt, h.now()) {
		return &heldBy, nil
	}

	stolen, err := h.steal(current, row)
	if err != nil {
		return nil, err
	}
	if !stolen {
		// lost the steal race to another contender
		return &heldBy, nil
	}

	return &AcquireLockResult{
		Acquired:      true,
		Stolen:        true,
		PreviousRunID: heldBy.HeldByRunID,
	}, nil
}

// steal overwrites the row in place, guarded on the lockedAt we observed so
// two contenders cannot both win.
func (h jobLockRepositoryHandler) steal(current *model.RoiDashboardSnapshot, replacement model.RoiDashboardSnapshot) (bool, error) {
	var observedLockedAt postgres.BoolExpression = table.RoiDashboardSnapshot.LastComputedAt.IS_NULL()
	if current.LastComputedAt != nil {
		observedLockedAt = table.RoiDashboardSnapshot.LastComputedAt.EQ(postgres.TimestampzT(*current.LastComputedAt))
	}
	guard := postgres.AND(
		table.RoiDashboardSnapshot.Scope.EQ(postgres.String(lockScope)),
		table.RoiDashboardSnapshot.PortfolioKey.EQ(postgres.String(lockKey)),
		observedLockedAt,
	)

	query := table.RoiDashboardSnapshot.
		UPDATE(
			table.RoiDashboardSnapshot.LastComputedAt,
			table.RoiDashboardSnapshot.Payload,
			table.RoiDashboardSnapshot.UpdatedAt,
		).
		MODEL(replacement).
		WHERE(guard)

	result, err := query.Exec(h.Db)
	if err != nil {
		return false, fmt.Errorf("failed to steal job lock: %w", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read job lock steal result: %w", err)
	}

	return updated == 1, nil
}

func (h jobLockRepositoryHandler) get() (*model.RoiDashboardSnapshot, error) {
	query := table.RoiDashboardSnapshot.
		SELECT(table.RoiDashboardSnapshot.AllColumns).
		WHERE(
			postgres.AND(
				table.RoiDashboardSnapshot.Scope.EQ(postgres.String(lockScope)),
				table.RoiDashboardSnapshot.PortfolioKey.EQ(postgres.String(lockKey)),
			),
		)

	result := model.RoiDashboardSnapshot{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to read job lock row: %w", err)
	}

	return &result, nil
}

func (h jobLockRepositoryHandler) Release() error {
	query := table.RoiDashboardSnapshot.
		DELETE().
		WHERE(
			postgres.AND(
				table.RoiDashboardSnapshot.Scope.EQ(postgres.String(lockScope)),
				table.RoiDashboardSnapshot.PortfolioKey.EQ(postgres.String(lockKey)),
			),
		)

	_, err := query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to release job lock: %w", err)
	}

	return nil
}

// lockIsStale treats a missing lockedAt as stale: a row without a timestamp
// cannot prove its holder is alive.
func lockIsStale(lockedAt *time.Time, now time.Time) bool {
	if lockedAt == nil {
		return true
	}
	return now.Sub(*lockedAt) > LockTTL
}
