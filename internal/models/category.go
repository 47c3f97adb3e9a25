package models

// Category is a user-scoped expense category. Names are unique per user.
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name" json:"user_id"`
	Name   string `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"name"`

	// Relationships
	Expenses []Expense        `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
	Budgets  []CategoryBudget `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}
