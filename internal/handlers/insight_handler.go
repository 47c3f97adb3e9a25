package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
)

// InsightHandler handles insight generation and access requests.
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// InsightListQuery holds the optional filters for listing insights.
type InsightListQuery struct {
	pagination.PageRequest
	Kind   string `form:"kind" binding:"omitempty,insight_kind"`
	Unread bool   `form:"unread"`
}

// GenerateInsights runs a full insight generation pass for the user.
// @Summary     Generate insights
// @Description Run a generation pass: sweep expired insights, then create forecast, risk, anomaly, and trend insights
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Insight "Insights created this pass"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /insights/generate [post]
func (h *InsightHandler) GenerateInsights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	insights := h.insightService.GenerateInsights(userID, time.Now().UTC())
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// GetUserInsights lists the user's insights.
// @Summary     Get insights
// @Description Get a paginated list of insights, newest first
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       kind      query string false "Filter by kind (forecast/anomaly/trend/risk/suggestion)"
// @Param       unread    query bool   false "Only unread insights"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Insight] "Paginated insights"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights [get]
func (h *InsightHandler) GetUserInsights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query InsightListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var kind *models.InsightKind
	if query.Kind != "" {
		k := models.InsightKind(query.Kind)
		kind = &k
	}

	result, err := h.insightService.GetUserInsights(userID, query.PageRequest, kind, query.Unread)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkInsightRead flips an insight's read flag.
// @Summary     Mark insight read
// @Description Mark an insight as read
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Insight ID"
// @Success     200 {object} models.Insight "Insight"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/{id}/read [put]
func (h *InsightHandler) MarkInsightRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	insightID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	insight, err := h.insightService.MarkInsightRead(userID, insightID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

// GetUnreadCount returns how many insights are unread.
// @Summary     Unread insight count
// @Description Get the number of unread insights
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int64 "Unread count"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/unread-count [get]
func (h *InsightHandler) GetUnreadCount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	count, err := h.insightService.UnreadInsightCount(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// DeleteInsight removes an insight permanently.
// @Summary     Delete an insight
// @Description Permanently delete an insight
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Insight ID"
// @Success     204 "Insight deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/{id} [delete]
func (h *InsightHandler) DeleteInsight(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	insightID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.insightService.DeleteInsight(userID, insightID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
