package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

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
// The password is always "password123".
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	hashStr := string(hash)
	user := &models.User{
		Email:        email,
		PasswordHash: &hashStr,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGuestUser creates a passwordless guest user.
func CreateTestGuestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Email:        fmt.Sprintf("guest%d@guest.test", nextID()),
		PasswordHash: nil,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test guest user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Category %d", nextID()),
		Icon:   "🛒",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense dated now with the given amount in cents.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID string, amount int64) *models.Expense {
	t.Helper()
	return CreateTestExpenseOn(t, db, userID, categoryID, amount, time.Now())
}

// CreateTestExpenseOn creates an expense on the given date.
func CreateTestExpenseOn(t *testing.T, db *gorm.DB, userID, categoryID string, amount int64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: fmt.Sprintf("Expense %d", nextID()),
		Date:        date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
