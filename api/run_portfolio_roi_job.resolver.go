package api

import (
	"fmt"
	"time"

	"roiengine/internal/service"

	"github.com/gin-gonic/gin"
)

type runPortfolioRoiJobRequest struct {
	PortfolioKey   *string `json:"portfolioKey"`
	ForceStartDate *string `json:"forceStartDate"`
	ForceEndDate   *string `json:"forceEndDate"`
	IncludeClean   bool    `json:"includeClean"`
}

func (m ApiHandler) runPortfolioRoiJob(c *gin.Context) {
	var requestBody runPortfolioRoiJobRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	in := service.RunPortfolioRoiJobInput{
		PortfolioKey: requestBody.PortfolioKey,
		IncludeClean: requestBody.IncludeClean,
		Trigger:      "api",
		RequestedBy:  m.requestedBy(c),
	}

	if requestBody.ForceStartDate != nil {
		start, err := time.Parse(time.DateOnly, *requestBody.ForceStartDate)
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid forceStartDate: %w", err), c, 400)
			return
		}
		in.ForceStartDate = &start
	}
	if requestBody.ForceEndDate != nil {
		end, err := time.Parse(time.DateOnly, *requestBody.ForceEndDate)
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid forceEndDate: %w", err), c, 400)
			return
		}
		in.ForceEndDate = &end
	}

	result, err := m.RoiJobService.RunPortfolioRoiJob(c.Request.Context(), in)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result)
}
