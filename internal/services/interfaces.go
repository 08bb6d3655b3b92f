package services

import (
	"time"

	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for account persistence. Password hashing
// happens inside CreateUser; callers never handle digests directly. Reads omit
// secret columns unless the method name says otherwise.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	CreateGuestUser() (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByEmailWithSecrets(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID, tokenHash string) error
	ClearRefreshTokenHash(userID string) error
	GetRefreshTokenHash(userID string) (string, error)
	RotateRefreshTokenHash(userID, oldHash, newHash string) error
	DeleteUser(tx *gorm.DB, userID string) error
}

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is the outcome of an operation that establishes a session.
type AuthResult struct {
	TokenPair
	User *models.User `json:"user"`
}

// AuthServicer defines the contract for the session lifecycle: registration,
// login, guest bootstrap, refresh rotation, logout, and account deletion.
type AuthServicer interface {
	Register(email, password string) (*AuthResult, error)
	GuestLogin() (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	Refresh(refreshToken string) (*TokenPair, error)
	Logout(userID string) error
	DeleteAccount(userID string) error
	GetProfile(userID string) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name, icon string) (*models.Category, error)
	GetUserCategories(userID string) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name, icon string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
	DeleteAllForUser(tx *gorm.DB, userID string) error
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	CategoryID *string
	FromDate   *time.Time
	ToDate     *time.Time
	SortBy     string
	Order      string
}

// CategoryTotal is the spend aggregated over one category.
type CategoryTotal struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Total      int64  `json:"total"`
}

// MonthlySummary aggregates a user's spending for one calendar month.
type MonthlySummary struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Total      int64           `json:"total"`
	Categories []CategoryTotal `json:"categories"`
}

// DashboardStats holds the headline numbers for the dashboard view.
type DashboardStats struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	Total        int64            `json:"total"`
	ExpenseCount int64            `json:"expense_count"`
	TopCategory  *CategoryTotal   `json:"top_category,omitempty"`
	Recent       []models.Expense `json:"recent"`
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID, categoryID string, amount int64, description string, date time.Time) (*models.Expense, error)
	GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
	GetMonthlySummary(userID string, year, month int) (*MonthlySummary, error)
	GetDashboard(userID string, year, month int) (*DashboardStats, error)
	DeleteAllForUser(tx *gorm.DB, userID string) error
}
