package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type updatePricesRequest struct {
	Tickers   []string `json:"tickers"`
	StartDate string   `json:"startDate"`
	EndDate   *string  `json:"endDate"`
}

// updatePrices re-ingests a price window on demand, outside a job run. Useful
// when the supplier restates history and the cache needs refreshing before
// the next scheduled recompute.
func (m ApiHandler) updatePrices(c *gin.Context) {
	var requestBody updatePricesRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if len(requestBody.Tickers) == 0 {
		returnErrorJsonCode(fmt.Errorf("at least one ticker is required"), c, 400)
		return
	}

	start, err := time.Parse(time.DateOnly, requestBody.StartDate)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid startDate: %w", err), c, 400)
		return
	}
	end := time.Now().UTC()
	if requestBody.EndDate != nil {
		end, err = time.Parse(time.DateOnly, *requestBody.EndDate)
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid endDate: %w", err), c, 400)
			return
		}
	}

	err = m.PriceService.EnsurePrices(c.Request.Context(), requestBody.Tickers, start, end)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, map[string]string{
		"message": "ok",
	})
}
