package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"spendwise/internal/cache"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// expenseService handles expense-related business logic. Every write
// invalidates the memoized monthly total for the month it touches.
type expenseService struct {
	db     *gorm.DB
	totals *cache.MonthlyTotals
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, totals *cache.MonthlyTotals) ExpenseServicer {
	return &expenseService{db: db, totals: totals}
}

// CreateExpense records a new expense against one of the user's categories.
func (s *expenseService) CreateExpense(
	userID, categoryID, title string,
	amount int64,
	expenseDate time.Time,
	notes string,
) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	// Verify category exists and belongs to user
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       title,
		Amount:      amount,
		ExpenseDate: expenseDate,
		Notes:       notes,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.totals.Invalidate(userID, expenseDate.Year(), int(expenseDate.Month()))
	expense.Category = category
	return expense, nil
}

// GetUserExpenses returns a paginated list of the user's non-deleted
// expenses, newest first, with optional month and category filters.
func (s *expenseService) GetUserExpenses(
	userID string,
	page pagination.PageRequest,
	filter ExpenseFilter,
) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)
	if filter.Year != nil && filter.Month != nil {
		start := monthStart(*filter.Year, *filter.Month)
		base = base.Where("expense_date >= ? AND expense_date < ?", start, start.AddDate(0, 1, 0))
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Preload("Category").Order("expense_date DESC").
		Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID returns a non-deleted expense by ID if it belongs to the user.
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.Preload("Category").
		Where("id = ? AND user_id = ? AND is_deleted = ?", expenseID, userID, false).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense updates an existing expense's fields. Both the original
// and the new month's memoized totals are invalidated.
func (s *expenseService) UpdateExpense(
	userID, expenseID string,
	title *string,
	amount *int64,
	categoryID *string,
	expenseDate *time.Time,
	notes *string,
) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if title != nil && *title != "" {
		updates["title"] = *title
	}
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *amount
	}
	if categoryID != nil {
		var category models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["category_id"] = *categoryID
	}
	if expenseDate != nil {
		updates["expense_date"] = *expenseDate
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) > 0 {
		oldDate := expense.ExpenseDate
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.totals.Invalidate(userID, oldDate.Year(), int(oldDate.Month()))
		if expenseDate != nil {
			s.totals.Invalidate(userID, expenseDate.Year(), int(expenseDate.Month()))
		}
	}

	return s.GetExpenseByID(userID, expenseID)
}

// DeleteExpense soft-deletes an expense. The row stays in the store but
// is invisible to listings and analytics.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Model(expense).Update("is_deleted", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.totals.Invalidate(userID, expense.ExpenseDate.Year(), int(expense.ExpenseDate.Month()))
	return nil
}

// MonthlySummary aggregates one month of non-deleted expenses into an
// overall total and per-category totals.
func (s *expenseService) MonthlySummary(userID string, year, month int) (*MonthlySummary, error) {
	start := monthStart(year, month)
	end := start.AddDate(0, 1, 0)

	var rows []CategoryTotal
	err := s.db.Model(&models.Expense{}).
		Select("expenses.category_id AS category_id, categories.name AS category_name, COALESCE(SUM(expenses.amount), 0) AS total").
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ? AND expenses.is_deleted = ? AND expenses.expense_date >= ? AND expenses.expense_date < ?",
			userID, false, start, end).
		Group("expenses.category_id, categories.name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &MonthlySummary{Year: year, Month: month, ByCategory: rows}
	for _, row := range rows {
		summary.Total += row.Total
	}
	if summary.ByCategory == nil {
		summary.ByCategory = []CategoryTotal{}
	}
	return summary, nil
}
