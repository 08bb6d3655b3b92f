package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
// Amount is in cents.
type CreateExpenseRequest struct {
	Amount      int64      `json:"amount" binding:"required,gt=0"`
	CategoryID  string     `json:"category_id" binding:"required,uuid"`
	Description string     `json:"description" binding:"max=255"`
	Date        *time.Time `json:"date"`
}

// ListExpensesRequest represents the query parameters for listing expenses
type ListExpensesRequest struct {
	pagination.PageRequest
	CategoryID *string    `form:"category_id" binding:"omitempty,uuid"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	SortBy     string     `form:"sort_by" binding:"omitempty,expense_sort"`
	Order      string     `form:"order" binding:"omitempty,sort_order"`
}

// MonthlySummaryRequest represents the query parameters for the monthly summary
type MonthlySummaryRequest struct {
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// DashboardRequest represents the query parameters for the dashboard.
// Both values default to the current month when omitted.
type DashboardRequest struct {
	Year  int `form:"year" binding:"omitempty,min=2000,max=2100"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// ExpenseResponse represents an expense in the response
type ExpenseResponse struct {
	ID          string           `json:"id"`
	Amount      int64            `json:"amount"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	Category    CategoryResponse `json:"category"`
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Description Create a new expense in one of the user's categories
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} ExpenseResponse "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	expense, err := h.expenseService.CreateExpense(userID, req.CategoryID, req.Amount, req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetUserExpenses handles the retrieval of the user's expenses
// @Summary     List expenses
// @Description Get a paginated list of the user's expenses with optional category and date filters
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       limit query int false "Page size (max 100)"
// @Param       category_id query string false "Filter by category"
// @Param       from query string false "Start date (YYYY-MM-DD)"
// @Param       to query string false "End date (YYYY-MM-DD)"
// @Param       sort_by query string false "Sort field (date, amount, created_at)"
// @Param       order query string false "Sort order (asc, desc)"
// @Success     200 {array} ExpenseResponse "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetUserExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ExpenseFilter{
		CategoryID: req.CategoryID,
		FromDate:   req.From,
		ToDate:     req.To,
		SortBy:     req.SortBy,
		Order:      req.Order,
	}

	result, err := h.expenseService.GetUserExpenses(userID, req.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpenseByID handles the retrieval of a single expense
// @Summary     Get an expense
// @Description Get a single expense by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} ExpenseResponse "Expense"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles expense deletion
// @Summary     Delete an expense
// @Description Delete an expense owned by the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// GetMonthlySummary handles the monthly aggregation endpoint
// @Summary     Monthly summary
// @Description Get total spend and a per-category breakdown for one calendar month
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int true "Year (2000-2100)"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} services.MonthlySummary "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/summary/monthly [get]
func (h *ExpenseHandler) GetMonthlySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MonthlySummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.expenseService.GetMonthlySummary(userID, req.Year, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetDashboard handles the dashboard statistics endpoint
// @Summary     Dashboard statistics
// @Description Get headline spending numbers for the given (default current) month
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (2000-2100)"
// @Param       month query int false "Month (1-12)"
// @Success     200 {object} services.DashboardStats "Dashboard statistics"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/summary/dashboard [get]
func (h *ExpenseHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	now := time.Now()
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if req.Month == 0 {
		req.Month = int(now.Month())
	}

	stats, err := h.expenseService.GetDashboard(userID, req.Year, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
