package services

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
)

var colorFormat = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(householdID, name, color string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if len(name) > 100 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must be 100 characters or fewer")
	}
	if !colorFormat.MatchString(color) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "color must be in #RRGGBB format")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("household_id = ? AND name = ?", householdID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		HouseholdID: householdID,
		Name:        name,
		Color:       color,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategories retrieves a paginated list of categories ordered by name.
func (s *categoryService) GetCategories(householdID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Category{}).Where("household_id = ?", householdID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID for the household
func (s *categoryService) GetCategoryByID(householdID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND household_id = ?", categoryID, householdID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates an existing category. Empty fields are left unchanged.
func (s *categoryService) UpdateCategory(householdID, categoryID, name, color string) (*models.Category, error) {
	category, err := s.GetCategoryByID(householdID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name = strings.TrimSpace(name); name != "" {
		if len(name) > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must be 100 characters or fewer")
		}
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("household_id = ? AND name = ? AND id <> ?", householdID, name, categoryID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
		updates["name"] = name
	}
	if color != "" {
		if !colorFormat.MatchString(color) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "color must be in #RRGGBB format")
		}
		updates["color"] = color
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return category, nil
}

// DeleteCategory deletes a category that no transaction references.
func (s *categoryService) DeleteCategory(householdID, categoryID string) error {
	category, err := s.GetCategoryByID(householdID, categoryID)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&txCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if txCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CountCategories returns the number of categories in the household. The
// import wizard uses this as its entry precondition.
func (s *categoryService) CountCategories(householdID string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("household_id = ?", householdID).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}
