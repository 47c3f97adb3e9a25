package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// AnalyticsHandler exposes the statistical computations directly, for
// dashboard widgets that want numbers without generating insight records.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetForecast returns next month's projected spend.
// @Summary     Spending forecast
// @Description Project next month's spend from the last 3 months, in cents
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int64 "Forecast"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/forecast [get]
func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	forecast := h.analyticsService.ForecastNextMonth(userID, time.Now().UTC())
	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}

// GetRiskScore returns the month's overspend risk score.
// @Summary     Budget risk score
// @Description Estimate the 0-100 likelihood of exceeding this month's budget
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int false "Year (default: current)"
// @Param       month query int false "Month 1-12 (default: current)"
// @Success     200 {object} map[string]int "Risk score"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/risk [get]
func (h *AnalyticsHandler) GetRiskScore(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	score := h.analyticsService.CalculateRiskScore(userID, year, month, time.Now().UTC())
	c.JSON(http.StatusOK, gin.H{"risk_score": score})
}

// GetAnomalies returns the month's statistical outlier expenses.
// @Summary     Spending anomalies
// @Description List expenses more than two standard deviations above the month's mean, most anomalous first
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int false "Year (default: current)"
// @Param       month query int false "Month 1-12 (default: current)"
// @Success     200 {array} services.AnomalousExpense "Anomalies"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/anomalies [get]
func (h *AnalyticsHandler) GetAnomalies(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	anomalies := h.analyticsService.DetectAnomalies(userID, year, month)
	if anomalies == nil {
		anomalies = []services.AnomalousExpense{}
	}
	c.JSON(http.StatusOK, gin.H{"anomalies": anomalies})
}

// GetCategoryTrend returns one category's spending trend.
// @Summary     Category trend
// @Description Classify a category's spend direction over a window of months
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id     path  string true  "Category ID"
// @Param       window query int    false "Window in months (default 3)"
// @Success     200 {object} services.TrendResult "Trend"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/trends/{id} [get]
func (h *AnalyticsHandler) GetCategoryTrend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	window := 0
	if v := c.Query("window"); v != "" {
		window, err = strconv.Atoi(v)
		if err != nil || window < 1 || window > 24 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid window"))
			return
		}
	}

	trend := h.analyticsService.AnalyzeCategoryTrend(userID, categoryID, window, time.Now().UTC())
	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
