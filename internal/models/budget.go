package models

// MonthlyBudget is the overall spending limit for one calendar month.
// At most one row exists per (user, year, month).
type MonthlyBudget struct {
	Base
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_budgets_user_month" json:"user_id"`
	Year   int    `gorm:"not null;uniqueIndex:idx_monthly_budgets_user_month" json:"year"`
	Month  int    `gorm:"not null;uniqueIndex:idx_monthly_budgets_user_month" json:"month"`
	Amount int64  `gorm:"type:bigint;not null" json:"amount"`
}

// CategoryBudget is a per-category spending limit for one calendar month.
// At most one row exists per (user, category, year, month).
type CategoryBudget struct {
	Base
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:idx_category_budgets_key" json:"user_id"`
	CategoryID string `gorm:"type:uuid;not null;uniqueIndex:idx_category_budgets_key" json:"category_id"`
	Year       int    `gorm:"not null;uniqueIndex:idx_category_budgets_key" json:"year"`
	Month      int    `gorm:"not null;uniqueIndex:idx_category_budgets_key" json:"month"`
	Amount     int64  `gorm:"type:bigint;not null" json:"amount"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
