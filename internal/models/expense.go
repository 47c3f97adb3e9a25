package models

import "time"

// Expense is a single recorded expense. Amount is stored in minor
// currency units (cents). Deleting an expense only flips IsDeleted;
// analytics never read soft-deleted rows.
type Expense struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index:idx_expenses_user_date" json:"user_id"`
	CategoryID  string    `gorm:"type:uuid;not null" json:"category_id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	ExpenseDate time.Time `gorm:"not null;index:idx_expenses_user_date" json:"expense_date"`
	Notes       string    `json:"notes,omitempty"`
	IsDeleted   bool      `gorm:"default:false;index" json:"is_deleted"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
