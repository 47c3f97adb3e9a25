package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"spendwise/internal/cache"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/logger"
	"spendwise/internal/models"
)

const (
	// forecastLookbackMonths is how many whole calendar months feed the
	// moving-average forecast.
	forecastLookbackMonths = 3

	// projectionDays is the fixed horizon for end-of-month projection.
	// The scoring curve below is calibrated against this constant, so it
	// is not calendar-accurate on purpose.
	projectionDays = 30

	// defaultTrendWindow is the trend comparison window in months.
	defaultTrendWindow = 3
)

// analyticsService computes forecasts, anomaly flags, risk scores, and
// trends over a user's expense history. The cache is advisory: a nil
// cache disables memoization and every answer is computed fresh.
type analyticsService struct {
	db     *gorm.DB
	totals *cache.MonthlyTotals
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, totals *cache.MonthlyTotals) AnalyticsServicer {
	return &analyticsService{db: db, totals: totals}
}

// SumExpenses returns the total of non-deleted expense amounts for the
// month, optionally narrowed to one category. A month with no expenses
// sums to zero, not an error. Whole-month totals are memoized.
func (s *analyticsService) SumExpenses(userID string, year, month int, categoryID *string) (int64, error) {
	if categoryID == nil {
		if total, ok := s.totals.Get(userID, year, month); ok {
			return total, nil
		}
	}

	start := monthStart(year, month)
	end := start.AddDate(0, 1, 0)

	query := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND is_deleted = ? AND expense_date >= ? AND expense_date < ?",
			userID, false, start, end)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := query.Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if categoryID == nil {
		s.totals.Set(userID, year, month, total)
	}
	return total, nil
}

// ForecastNextMonth projects next month's spend as the mean of the three
// calendar months preceding the anchor, rounded to whole cents. No
// history forecasts zero; a store failure degrades to zero so that
// forecasting never blocks the rest of a generation pass.
func (s *analyticsService) ForecastNextMonth(userID string, now time.Time) int64 {
	var sum int64
	for i := 1; i <= forecastLookbackMonths; i++ {
		year, month := monthsBefore(now.Year(), int(now.Month()), i)
		total, err := s.SumExpenses(userID, year, month, nil)
		if err != nil {
			logger.Get().Warnw("forecast aggregation failed",
				"user_id", userID, "year", year, "month", month, "error", err)
			return 0
		}
		sum += total
	}

	forecast := int64(math.Round(float64(sum) / forecastLookbackMonths))
	if forecast < 0 {
		return 0
	}
	return forecast
}

// DetectAnomalies flags every expense in the month whose amount exceeds
// the month's population mean by more than two population standard
// deviations. Results are ordered most anomalous first. An empty month
// or a store failure yields an empty result.
func (s *analyticsService) DetectAnomalies(userID string, year, month int) []AnomalousExpense {
	start := monthStart(year, month)
	end := start.AddDate(0, 1, 0)

	var expenses []models.Expense
	err := s.db.Preload("Category").
		Where("user_id = ? AND is_deleted = ? AND expense_date >= ? AND expense_date < ?",
			userID, false, start, end).
		Find(&expenses).Error
	if err != nil {
		logger.Get().Warnw("anomaly expense lookup failed",
			"user_id", userID, "year", year, "month", month, "error", err)
		return nil
	}
	if len(expenses) == 0 {
		return nil
	}

	var sum float64
	for _, e := range expenses {
		sum += float64(e.Amount)
	}
	mean := sum / float64(len(expenses))

	var sqDiff float64
	for _, e := range expenses {
		d := float64(e.Amount) - mean
		sqDiff += d * d
	}
	std := math.Sqrt(sqDiff / float64(len(expenses)))

	// With zero spread the threshold equals the mean and nothing can
	// strictly exceed it.
	threshold := mean + 2*std

	var anomalies []AnomalousExpense
	for _, e := range expenses {
		if float64(e.Amount) > threshold {
			anomalies = append(anomalies, AnomalousExpense{
				ExpenseID:    e.ID,
				Title:        e.Title,
				Amount:       e.Amount,
				CategoryName: e.Category.Name,
				Date:         e.ExpenseDate,
				Deviation:    float64(e.Amount) - mean,
			})
		}
	}

	sort.Slice(anomalies, func(i, j int) bool {
		return anomalies[i].Deviation > anomalies[j].Deviation
	})
	return anomalies
}

// CalculateRiskScore estimates the likelihood (0-100) of exceeding the
// month's budget at the current spending pace. No budget for the month,
// a zero budget, or any lookup failure scores zero.
func (s *analyticsService) CalculateRiskScore(userID string, year, month int, now time.Time) int {
	var budget models.MonthlyBudget
	err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&budget).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Get().Warnw("risk budget lookup failed",
				"user_id", userID, "year", year, "month", month, "error", err)
		}
		return 0
	}
	if budget.Amount <= 0 {
		return 0
	}

	spend, err := s.SumExpenses(userID, year, month, nil)
	if err != nil {
		logger.Get().Warnw("risk aggregation failed",
			"user_id", userID, "year", year, "month", month, "error", err)
		return 0
	}

	daysElapsed := now.Day()
	if daysElapsed == 0 {
		return 0
	}

	dailyRate := float64(spend) / float64(daysElapsed)
	projected := float64(spend) + dailyRate*float64(projectionDays-daysElapsed)
	pct := projected / float64(budget.Amount) * 100

	return scoreFromPct(pct)
}

// scoreFromPct maps the projected-spend-to-budget percentage onto a
// monotonic piecewise-linear 0-100 score: gentle slope below 80% of
// budget, steep between 80% and 100% for resolution near the boundary,
// gentle again past the limit, clamped at 100.
func scoreFromPct(pct float64) int {
	switch {
	case pct <= 80:
		return int(math.Floor(pct * 0.5))
	case pct <= 100:
		return int(math.Floor(40 + (pct-80)*2))
	default:
		score := int(math.Floor(80 + (pct-100)*0.5))
		if score > 100 {
			return 100
		}
		return score
	}
}

// AnalyzeCategoryTrend compares the current month's category total
// against the oldest month in the window. Change is a percentage of the
// older total, rounded to one decimal. A category first seen this month
// reports "new" with a 100% change; a lookup failure reports "unknown".
func (s *analyticsService) AnalyzeCategoryTrend(userID, categoryID string, window int, now time.Time) TrendResult {
	if window <= 0 {
		window = defaultTrendWindow
	}

	totals := make([]int64, 0, window)
	for i := 0; i < window; i++ {
		year, month := monthsBefore(now.Year(), int(now.Month()), i)
		total, err := s.SumExpenses(userID, year, month, &categoryID)
		if err != nil {
			logger.Get().Warnw("trend aggregation failed",
				"user_id", userID, "category_id", categoryID, "year", year, "month", month, "error", err)
			return TrendResult{Trend: TrendUnknown}
		}
		totals = append(totals, total)
	}

	if len(totals) < 2 {
		return TrendResult{Trend: TrendStable, Recent: totals[0]}
	}

	recent := totals[0]
	older := totals[len(totals)-1]

	if older == 0 {
		if recent > 0 {
			return TrendResult{Trend: TrendNew, ChangePct: 100, Recent: recent, Older: older}
		}
		return TrendResult{Trend: TrendStable, Recent: recent, Older: older}
	}

	change := float64(recent-older) / float64(older) * 100
	change = math.Round(change*10) / 10

	trend := TrendStable
	switch {
	case change > 10:
		trend = TrendIncreasing
	case change < -10:
		trend = TrendDecreasing
	}

	return TrendResult{Trend: trend, ChangePct: change, Recent: recent, Older: older}
}
