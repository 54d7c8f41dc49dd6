package api

import (
	"fmt"
	"strings"

	"roiengine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var defaultStartingEquity = decimal.NewFromInt(10000)

func (m ApiHandler) equityCurve(c *gin.Context) {
	portfolioKey := c.Param("portfolioKey")

	in := service.SimulateEquityCurveInput{
		PortfolioKey:   portfolioKey,
		StartingEquity: defaultStartingEquity,
		Sizing:         service.SizingPolicyRiskPct,
	}

	if raw := c.Query("startingEquity"); raw != "" {
		equity, err := decimal.NewFromString(raw)
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid startingEquity: %w", err), c, 400)
			return
		}
		in.StartingEquity = equity
	}
	if raw := c.Query("sizing"); raw != "" {
		switch service.SizingPolicy(strings.ToLower(raw)) {
		case service.SizingPolicyRiskPct:
			in.Sizing = service.SizingPolicyRiskPct
		case service.SizingPolicyFixedFraction:
			in.Sizing = service.SizingPolicyFixedFraction
		default:
			returnErrorJsonCode(fmt.Errorf("unknown sizing policy %q", raw), c, 400)
			return
		}
	}
	if raw := c.Query("feeBps"); raw != "" {
		fee, err := decimal.NewFromString(raw)
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid feeBps: %w", err), c, 400)
			return
		}
		in.FeeBps = fee
	}
	if raw := c.Query("slippageBps"); raw != "" {
		slippage, err := decimal.NewFromString(raw)
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid slippageBps: %w", err), c, 400)
			return
		}
		in.SlippageBps = slippage
	}

	result, err := m.TradeSimService.SimulateEquityCurve(c.Request.Context(), in)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result)
}
