package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendwise/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, userID, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, userID, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   name,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense with the given amount (in cents)
// dated at the given time.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID string, amount int64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      amount,
		ExpenseDate: date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestMonthlyBudget creates a monthly budget with the given amount (in cents).
func CreateTestMonthlyBudget(t *testing.T, db *gorm.DB, userID string, year, month int, amount int64) *models.MonthlyBudget {
	t.Helper()

	budget := &models.MonthlyBudget{
		UserID: userID,
		Year:   year,
		Month:  month,
		Amount: amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test monthly budget: %v", err)
	}
	return budget
}

// CreateTestInsight creates an insight created at the given time.
func CreateTestInsight(t *testing.T, db *gorm.DB, userID string, kind models.InsightKind, createdAt time.Time) *models.Insight {
	t.Helper()

	insight := &models.Insight{
		UserID:         userID,
		Kind:           kind,
		Severity:       models.SeverityInfo,
		Title:          fmt.Sprintf("Test Insight %d", nextID()),
		Message:        "test insight",
		AppliesToMonth: int(createdAt.Month()),
		AppliesToYear:  createdAt.Year(),
	}
	if err := db.Create(insight).Error; err != nil {
		t.Fatalf("failed to create test insight: %v", err)
	}
	// CreatedAt is set by GORM on insert; backdate explicitly.
	if err := db.Model(insight).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to backdate test insight: %v", err)
	}
	insight.CreatedAt = createdAt
	return insight
}
