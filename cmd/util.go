package cmd

import (
	"database/sql"
	"fmt"
	"log"

	"roiengine/api"
	"roiengine/internal/repository"
	"roiengine/internal/service"
	"roiengine/internal/util"
	"roiengine/pkg/marketdata"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	assetPriceRepository := repository.NewAssetPriceRepository(dbConn)
	performanceSeriesRepository := repository.NewPerformanceSeriesRepository(dbConn)
	allocationSnapshotRepository := repository.NewAllocationSnapshotRepository(dbConn)
	primarySignalRepository := repository.NewPrimarySignalRepository(dbConn)
	roiSnapshotRepository := repository.NewRoiSnapshotRepository(dbConn)
	jobLockRepository := repository.NewJobLockRepository(dbConn)
	tradeRecordRepository := repository.NewTradeRecordRepository(dbConn)

	priceService := service.NewPriceService(marketdata.Client{}, assetPriceRepository)
	roiJobService := service.NewRoiJobService(
		dbConn,
		jobLockRepository,
		roiSnapshotRepository,
		allocationSnapshotRepository,
		primarySignalRepository,
		performanceSeriesRepository,
		priceService,
	)
	tradeSimService := service.NewTradeSimService(tradeRecordRepository)

	apiHandler := &api.ApiHandler{
		Db:                 dbConn,
		RoiJobService:      roiJobService,
		TradeSimService:    tradeSimService,
		PriceService:       priceService,
		SnapshotRepository: roiSnapshotRepository,
		SeriesRepository:   performanceSeriesRepository,
		JwtDecodeToken:     secrets.Jwt,
	}

	return apiHandler, nil
}
