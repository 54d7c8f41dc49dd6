package api

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"roiengine/internal/logger"
	"roiengine/internal/repository"
	"roiengine/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	Db                 *sql.DB
	RoiJobService      service.RoiJobService
	TradeSimService    service.TradeSimService
	PriceService       service.PriceService
	SnapshotRepository repository.RoiSnapshotRepository
	SeriesRepository   repository.PerformanceSeriesRepository
	JwtDecodeToken     string
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddlware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "portfolio roi engine"})
	})
	router.POST("/jobs/portfolio-roi", m.runPortfolioRoiJob)
	router.POST("/prices/update", m.updatePrices)
	router.GET("/portfolios/:portfolioKey/equity-curve", m.equityCurve)
	router.GET("/portfolios/:portfolioKey/roi", m.portfolioRoi)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	logger.FromContext(c.Request.Context()).Error(err.Error())
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Error(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddlware(ctx *gin.Context) {
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	log := logger.New().With(
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"ip", ctx.ClientIP(),
	)
	ctx.Request = ctx.Request.WithContext(
		context.WithValue(ctx.Request.Context(), logger.ContextKey, log),
	)

	start := time.Now().UTC()
	ctx.Next()

	log.Infow("request complete",
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"responseBytes", w.body.Len(),
	)
}
