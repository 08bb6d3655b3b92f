package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
	Icon string `json:"icon" binding:"max=50"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"omitempty,min=2,max=50"`
	Icon string `json:"icon" binding:"max=50"`
}

// CategoryResponse represents a category in the response
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new expense category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate category name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name, req.Icon)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": gin.H{
		"id":   category.ID,
		"name": category.Name,
		"icon": category.Icon,
	}})
}

// GetUserCategories handles the retrieval of all categories for a user
// @Summary     Get all categories
// @Description Get all expense categories for the authenticated user, ordered by name
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} CategoryResponse "List of categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetUserCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetUserCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategoryByID handles the retrieval of a single category
// @Summary     Get a category
// @Description Get a single category by ID
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} CategoryResponse "Category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(userID, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles category updates
// @Summary     Update a category
// @Description Update a category's name and/or icon
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to update"
// @Success     200 {object} CategoryResponse "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate category name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, req.Name, req.Icon)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles category deletion
// @Summary     Delete a category
// @Description Delete a category that is not referenced by any expense
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
