package services

import (
	"errors"

	"gorm.io/gorm"

	"spendwise/internal/cache"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// budgetService handles monthly and per-category budget business logic.
type budgetService struct {
	db     *gorm.DB
	totals *cache.MonthlyTotals
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, totals *cache.MonthlyTotals) BudgetServicer {
	return &budgetService{db: db, totals: totals}
}

func validateBudgetInput(year, month int, amount int64) error {
	if month < 1 || month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if year < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be positive")
	}
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	return nil
}

// SetMonthlyBudget creates or replaces the single budget for (user, year, month).
func (s *budgetService) SetMonthlyBudget(userID string, year, month int, amount int64) (*models.MonthlyBudget, error) {
	if err := validateBudgetInput(year, month, amount); err != nil {
		return nil, err
	}

	var budget models.MonthlyBudget
	err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&budget).Error
	switch {
	case err == nil:
		if err := s.db.Model(&budget).Update("amount", amount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget.Amount = amount
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.MonthlyBudget{UserID: userID, Year: year, Month: month, Amount: amount}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.totals.Invalidate(userID, year, month)
	return &budget, nil
}

// GetMonthlyBudget returns the budget for (user, year, month), if set.
func (s *budgetService) GetMonthlyBudget(userID string, year, month int) (*models.MonthlyBudget, error) {
	var budget models.MonthlyBudget
	err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// SetCategoryBudget creates or replaces the single budget for
// (user, category, year, month).
func (s *budgetService) SetCategoryBudget(userID, categoryID string, year, month int, amount int64) (*models.CategoryBudget, error) {
	if err := validateBudgetInput(year, month, amount); err != nil {
		return nil, err
	}

	// Verify category exists and belongs to user
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budget models.CategoryBudget
	err := s.db.Where("user_id = ? AND category_id = ? AND year = ? AND month = ?",
		userID, categoryID, year, month).First(&budget).Error
	switch {
	case err == nil:
		if err := s.db.Model(&budget).Update("amount", amount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget.Amount = amount
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.CategoryBudget{
			UserID:     userID,
			CategoryID: categoryID,
			Year:       year,
			Month:      month,
			Amount:     amount,
		}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget.Category = category
	return &budget, nil
}

// GetCategoryBudgets returns all category budgets for (user, year, month).
func (s *budgetService) GetCategoryBudgets(userID string, year, month int) ([]models.CategoryBudget, error) {
	var budgets []models.CategoryBudget
	err := s.db.Preload("Category").
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}
