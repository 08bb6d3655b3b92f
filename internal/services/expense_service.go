package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db         *gorm.DB
	categories CategoryServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, categories CategoryServicer) ExpenseServicer {
	return &expenseService{db: db, categories: categories}
}

// CreateExpense creates a new expense. The category must exist and belong to
// the user.
func (s *expenseService) CreateExpense(userID, categoryID string, amount int64, description string, date time.Time) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than 0")
	}

	if _, err := s.categories.GetCategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = time.Now()
	}

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetUserExpenses retrieves a paginated, filtered list of the user's expenses,
// newest first by default, with the category preloaded.
func (s *expenseService) GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sortBy := filter.SortBy
	switch sortBy {
	case "amount", "created_at":
	default:
		sortBy = "date"
	}
	order := "DESC"
	if filter.Order == "asc" {
		order = "ASC"
	}

	var expenses []models.Expense
	if err := base.Preload("Category").
		Order(fmt.Sprintf("%s %s", sortBy, order)).
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", expenseID, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// DeleteExpense deletes an expense owned by the user.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	res := s.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// monthBounds returns the half-open interval [start, end) of a calendar month.
func monthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// GetMonthlySummary aggregates the user's spending for one calendar month,
// broken down per category.
func (s *expenseService) GetMonthlySummary(userID string, year, month int) (*MonthlySummary, error) {
	start, end := monthBounds(year, month)

	var totals []CategoryTotal
	if err := s.db.Model(&models.Expense{}).
		Select("categories.id AS category_id, categories.name AS name, categories.icon AS icon, SUM(expenses.amount) AS total").
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ? AND expenses.date >= ? AND expenses.date < ?", userID, start, end).
		Group("categories.id, categories.name, categories.icon").
		Order("total DESC").
		Scan(&totals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &MonthlySummary{
		Year:       year,
		Month:      month,
		Categories: totals,
	}
	if summary.Categories == nil {
		summary.Categories = []CategoryTotal{}
	}
	for _, ct := range totals {
		summary.Total += ct.Total
	}

	return summary, nil
}

// GetDashboard returns the headline numbers for the given month: total spend,
// expense count, the top category, and the most recent expenses.
func (s *expenseService) GetDashboard(userID string, year, month int) (*DashboardStats, error) {
	summary, err := s.GetMonthlySummary(userID, year, month)
	if err != nil {
		return nil, err
	}

	start, end := monthBounds(year, month)
	var count int64
	if err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var recent []models.Expense
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if recent == nil {
		recent = []models.Expense{}
	}

	stats := &DashboardStats{
		Year:         year,
		Month:        month,
		Total:        summary.Total,
		ExpenseCount: count,
		Recent:       recent,
	}
	if len(summary.Categories) > 0 {
		stats.TopCategory = &summary.Categories[0]
	}

	return stats, nil
}

// DeleteAllForUser removes every expense owned by the user inside the given
// transaction. Runs before category deletion to respect the foreign key.
func (s *expenseService) DeleteAllForUser(tx *gorm.DB, userID string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.Expense{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
