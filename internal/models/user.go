package models

import "time"

// User represents an account holder. All expenses, budgets, and insights
// are scoped to exactly one user.
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	Categories []Category      `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Expenses   []Expense       `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Budgets    []MonthlyBudget `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Insights   []Insight       `gorm:"foreignKey:UserID" json:"insights,omitempty"`
}
