package api

import (
	"time"

	"roiengine/internal/db/models/postgres/public/model"
	"roiengine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type navPointResponse struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

type portfolioRoiResponse struct {
	PortfolioKey   string             `json:"portfolioKey"`
	NeedsRecompute bool               `json:"needsRecompute"`
	AsOfDate       *string            `json:"asOfDate"`
	RoiInception   *decimal.Decimal   `json:"roiInception"`
	Roi30d         *decimal.Decimal   `json:"roi30d"`
	MaxDrawdown    *decimal.Decimal   `json:"maxDrawdown"`
	Volatility     *decimal.Decimal   `json:"volatility"`
	LastComputedAt *time.Time         `json:"lastComputedAt"`
	Nav            []navPointResponse `json:"nav"`
}

// portfolioRoi reads the precomputed snapshot and NAV series. It never
// computes anything itself, so a dirty portfolio serves its last good
// numbers with needsRecompute=true as the staleness signal.
func (m ApiHandler) portfolioRoi(c *gin.Context) {
	portfolioKey := c.Param("portfolioKey")

	snapshot, err := m.SnapshotRepository.Get(service.SnapshotScope, portfolioKey)
	if err != nil {
		returnErrorJsonCode(err, c, 404)
		return
	}

	out := portfolioRoiResponse{
		PortfolioKey:   snapshot.PortfolioKey,
		NeedsRecompute: snapshot.NeedsRecompute,
		RoiInception:   snapshot.RoiInception,
		Roi30d:         snapshot.Roi30d,
		MaxDrawdown:    snapshot.MaxDrawdown,
		Volatility:     snapshot.Volatility,
		LastComputedAt: snapshot.LastComputedAt,
		Nav:            []navPointResponse{},
	}
	if snapshot.AsOfDate != nil {
		asOf := snapshot.AsOfDate.Format(time.DateOnly)
		out.AsOfDate = &asOf
	}

	if snapshot.AsOfDate != nil {
		points, err := m.SeriesRepository.List(
			model.SeriesType_PortfolioNav,
			portfolioKey,
			time.Time{},
			*snapshot.AsOfDate,
		)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		for _, p := range points {
			out.Nav = append(out.Nav, navPointResponse{
				Date:  p.Date.Format(time.DateOnly),
				Value: p.Value,
			})
		}
	}

	c.JSON(200, out)
}
