package services

import (
	"time"

	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Year       *int
	Month      *int
	CategoryID *string
}

// CategoryTotal is one category's share of a monthly summary.
type CategoryTotal struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        int64  `json:"total"`
}

// MonthlySummary aggregates one month of spending for the dashboard.
type MonthlySummary struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Total      int64           `json:"total"`
	ByCategory []CategoryTotal `json:"by_category"`
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID, categoryID, title string, amount int64, expenseDate time.Time, notes string) (*models.Expense, error)
	GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, title *string, amount *int64, categoryID *string, expenseDate *time.Time, notes *string) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
	MonthlySummary(userID string, year, month int) (*MonthlySummary, error)
}

// BudgetServicer defines the contract for budget-related business logic.
// Set operations upsert: at most one budget exists per (user, year,
// month) and per (user, category, year, month).
type BudgetServicer interface {
	SetMonthlyBudget(userID string, year, month int, amount int64) (*models.MonthlyBudget, error)
	GetMonthlyBudget(userID string, year, month int) (*models.MonthlyBudget, error)
	SetCategoryBudget(userID, categoryID string, year, month int, amount int64) (*models.CategoryBudget, error)
	GetCategoryBudgets(userID string, year, month int) ([]models.CategoryBudget, error)
}

// TrendDirection classifies how a category's spend is moving.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
	TrendNew        TrendDirection = "new"
	TrendUnknown    TrendDirection = "unknown"
)

// AnomalousExpense describes an expense flagged as a statistical outlier
// within its month. Deviation is the distance from the month's mean, in
// cents.
type AnomalousExpense struct {
	ExpenseID    string    `json:"expense_id"`
	Title        string    `json:"title"`
	Amount       int64     `json:"amount"`
	CategoryName string    `json:"category_name"`
	Date         time.Time `json:"date"`
	Deviation    float64   `json:"deviation"`
}

// TrendResult holds the outcome of a category trend analysis. Recent and
// Older are the raw totals compared, in cents.
type TrendResult struct {
	Trend     TrendDirection `json:"trend"`
	ChangePct float64        `json:"change_pct"`
	Recent    int64          `json:"recent"`
	Older     int64          `json:"older"`
}

// AnalyticsServicer defines the statistical computations behind insight
// generation. Apart from SumExpenses, every method is total: store
// failures degrade to the documented zero value and are logged, never
// returned.
type AnalyticsServicer interface {
	SumExpenses(userID string, year, month int, categoryID *string) (int64, error)
	ForecastNextMonth(userID string, now time.Time) int64
	DetectAnomalies(userID string, year, month int) []AnomalousExpense
	CalculateRiskScore(userID string, year, month int, now time.Time) int
	AnalyzeCategoryTrend(userID, categoryID string, window int, now time.Time) TrendResult
}

// InsightServicer defines the contract for insight generation and access.
type InsightServicer interface {
	GenerateInsights(userID string, now time.Time) []models.Insight
	GetUserInsights(userID string, page pagination.PageRequest, kind *models.InsightKind, unreadOnly bool) (*pagination.PageResponse[models.Insight], error)
	MarkInsightRead(userID, insightID string) (*models.Insight, error)
	UnreadInsightCount(userID string) (int64, error)
	DeleteInsight(userID, insightID string) error
}
