package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/logger"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

const (
	// insightRetentionDays bounds how long generated insights live.
	insightRetentionDays = 30

	// maxAnomalyInsights caps anomaly insights per generation pass.
	maxAnomalyInsights = 3

	// trendChangeThreshold is the absolute percentage change a category
	// trend must reach to produce an insight.
	trendChangeThreshold = 20.0

	riskInsightThreshold = 50
	riskDangerThreshold  = 80
)

// insightService orchestrates insight generation and owns the insight
// record lifecycle.
type insightService struct {
	db        *gorm.DB
	analytics AnalyticsServicer
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(db *gorm.DB, analytics AnalyticsServicer) InsightServicer {
	return &insightService{db: db, analytics: analytics}
}

// formatCents renders a cent amount as a fixed two-decimal string, so
// insight titles and messages stay mechanically derivable from the
// numeric payload.
func formatCents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}

// GenerateInsights runs a full generation pass for one user: sweep
// expired insights, then create forecast, risk, anomaly, and trend
// insights from the current state of the expense store. The pass never
// fails as a whole; any step that errors is logged and skipped, and the
// insights created so far are returned.
func (s *insightService) GenerateInsights(userID string, now time.Time) []models.Insight {
	log := logger.Get()
	insights := []models.Insight{}

	cutoff := now.AddDate(0, 0, -insightRetentionDays)
	if err := s.db.Where("user_id = ? AND created_at < ?", userID, cutoff).
		Delete(&models.Insight{}).Error; err != nil {
		log.Warnw("insight retention sweep failed", "user_id", userID, "error", err)
	}

	year, month := now.Year(), int(now.Month())

	if forecast := s.analytics.ForecastNextMonth(userID, now); forecast > 0 {
		nextYear, nextMo := nextMonth(year, month)
		predicted := forecast
		s.persist(&models.Insight{
			UserID:          userID,
			Kind:            models.InsightKindForecast,
			Severity:        models.SeverityInfo,
			Title:           fmt.Sprintf("Next month forecast: %s", formatCents(forecast)),
			Message:         fmt.Sprintf("Based on your last 3 months, you're likely to spend %s next month.", formatCents(forecast)),
			PredictedAmount: &predicted,
			AppliesToMonth:  nextMo,
			AppliesToYear:   nextYear,
		}, &insights)
	}

	if score := s.analytics.CalculateRiskScore(userID, year, month, now); score > riskInsightThreshold {
		severity := models.SeverityWarning
		if score > riskDangerThreshold {
			severity = models.SeverityDanger
		}
		riskScore := score
		s.persist(&models.Insight{
			UserID:         userID,
			Kind:           models.InsightKindRisk,
			Severity:       severity,
			Title:          fmt.Sprintf("Budget risk: %d%% likelihood of overspending", score),
			Message:        fmt.Sprintf("At your current pace, you have a %d%% chance of exceeding your budget this month.", score),
			RiskScore:      &riskScore,
			AppliesToMonth: month,
			AppliesToYear:  year,
		}, &insights)
	}

	for i, anomaly := range s.analytics.DetectAnomalies(userID, year, month) {
		if i == maxAnomalyInsights {
			break
		}
		actual := anomaly.Amount
		s.persist(&models.Insight{
			UserID:         userID,
			Kind:           models.InsightKindAnomaly,
			Severity:       models.SeverityWarning,
			Title:          fmt.Sprintf("Unusual expense detected: %s", formatCents(anomaly.Amount)),
			Message:        fmt.Sprintf("%s (%s) is significantly higher than your average.", anomaly.Title, formatCents(anomaly.Amount)),
			ActualAmount:   &actual,
			AppliesToMonth: month,
			AppliesToYear:  year,
		}, &insights)
	}

	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&categories).Error; err != nil {
		log.Warnw("category listing failed, returning partial insights",
			"user_id", userID, "error", err)
		return insights
	}
	for _, category := range categories {
		trend := s.analytics.AnalyzeCategoryTrend(userID, category.ID, defaultTrendWindow, now)
		if math.Abs(trend.ChangePct) <= trendChangeThreshold {
			continue
		}
		s.persist(&models.Insight{
			UserID:         userID,
			Kind:           models.InsightKindTrend,
			Severity:       models.SeverityInfo,
			Title:          fmt.Sprintf("%s spending %s", category.Name, trend.Trend),
			Message:        fmt.Sprintf("Your %s spending has changed by %.1f%% compared to %d months ago.", category.Name, trend.ChangePct, defaultTrendWindow),
			AppliesToMonth: month,
			AppliesToYear:  year,
		}, &insights)
	}

	log.Infow("insight generation pass complete", "user_id", userID, "created", len(insights))
	return insights
}

// persist writes an insight and appends it to the pass result. Failures
// are logged and skipped so one bad record never aborts the pass.
func (s *insightService) persist(insight *models.Insight, out *[]models.Insight) {
	if err := s.db.Create(insight).Error; err != nil {
		logger.Get().Warnw("insight create failed",
			"user_id", insight.UserID, "kind", insight.Kind, "error", err)
		return
	}
	*out = append(*out, *insight)
}

// GetUserInsights returns a paginated list of the user's insights,
// newest first, optionally filtered by kind or unread status.
func (s *insightService) GetUserInsights(
	userID string,
	page pagination.PageRequest,
	kind *models.InsightKind,
	unreadOnly bool,
) (*pagination.PageResponse[models.Insight], error) {
	page.Defaults()

	base := s.db.Model(&models.Insight{}).Where("user_id = ?", userID)
	if kind != nil {
		base = base.Where("kind = ?", *kind)
	}
	if unreadOnly {
		base = base.Where("is_read = ?", false)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var insights []models.Insight
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&insights).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(insights, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// MarkInsightRead flips an insight's read flag.
func (s *insightService) MarkInsightRead(userID, insightID string) (*models.Insight, error) {
	insight, err := s.getInsightByID(userID, insightID)
	if err != nil {
		return nil, err
	}

	if !insight.IsRead {
		if err := s.db.Model(insight).Update("is_read", true).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		insight.IsRead = true
	}
	return insight, nil
}

// UnreadInsightCount returns the number of unread insights for the user.
func (s *insightService) UnreadInsightCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Insight{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// DeleteInsight removes an insight permanently.
func (s *insightService) DeleteInsight(userID, insightID string) error {
	insight, err := s.getInsightByID(userID, insightID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(insight).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *insightService) getInsightByID(userID, insightID string) (*models.Insight, error) {
	var insight models.Insight
	if err := s.db.Where("id = ? AND user_id = ?", insightID, userID).First(&insight).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInsightNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &insight, nil
}
