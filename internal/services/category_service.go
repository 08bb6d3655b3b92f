package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. Names are unique per user.
func (s *categoryService) CreateCategory(userID, name, icon string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Icon:   icon,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories retrieves all categories for a user, ordered by name.
func (s *categoryService) GetUserCategories(userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates a category's name and/or icon. A rename that collides
// with another of the user's categories is rejected.
func (s *categoryService) UpdateCategory(userID, categoryID, name, icon string) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" && name != category.Name {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("user_id = ? AND name = ? AND id <> ?", userID, name, categoryID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
		updates["name"] = name
	}
	if icon != "" {
		updates["icon"] = icon
	}

	if len(updates) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nothing to update")
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// DeleteCategory deletes a category. Categories still referenced by expenses
// cannot be deleted.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	var expenseCount int64
	if err := s.db.Model(&models.Expense{}).Where("category_id = ?", categoryID).Count(&expenseCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expenseCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteAllForUser removes every category owned by the user inside the given
// transaction. Used by account deletion after the expenses are gone.
func (s *categoryService) DeleteAllForUser(tx *gorm.DB, userID string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.Category{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
