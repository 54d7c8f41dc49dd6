package repository

import (
	"database/sql"
	"fmt"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
)

type TradeRecordRepository interface {
	List(portfolioKey string) ([]model.TradeRecord, error)
}

func NewTradeRecordRepository(db *sql.DB) TradeRecordRepository {
	return tradeRecordRepositoryHandler{Db: db}
}

type tradeRecordRepositoryHandler struct {
	Db *sql.DB
}

func (h tradeRecordRepositoryHandler) List(portfolioKey string) ([]model.TradeRecord, error) {
	query := table.TradeRecord.
		SELECT(table.TradeRecord.AllColumns).
		WHERE(table.TradeRecord.PortfolioKey.EQ(postgres.String(portfolioKey))).
		ORDER_BY(table.TradeRecord.EnteredAt.ASC())

	result := []model.TradeRecord{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list trade records for %s: %w", portfolioKey, err)
	}

	return result, nil
}
