package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
)

const monthLayout = "2006-01"

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// monthRange returns the [start, end) interval covering a YYYY-MM month.
func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be in YYYY-MM format")
	}
	return start, start.AddDate(0, 1, 0), nil
}

// previousMonth returns the YYYY-MM month before the given one.
func previousMonth(month string) string {
	start, _ := time.Parse(monthLayout, month)
	return start.AddDate(0, -1, 0).Format(monthLayout)
}

// CreateBudget creates a budget for a category and month. One budget per
// (category, month).
func (s *budgetService) CreateBudget(householdID, categoryID, month string, amount int64) (*models.Budget, error) {
	if _, _, err := monthRange(month); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount must be greater than zero")
	}

	var category models.Category
	if err := s.db.Where("id = ? AND household_id = ?", categoryID, householdID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.Budget{}).
		Where("category_id = ? AND month = ?", categoryID, month).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		HouseholdID: householdID,
		CategoryID:  categoryID,
		Month:       month,
		Amount:      amount,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetBudgets retrieves a paginated list of budgets, optionally for one month.
func (s *budgetService) GetBudgets(householdID, month string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("household_id = ?", householdID)
	if month != "" {
		if _, _, err := monthRange(month); err != nil {
			return nil, err
		}
		base = base.Where("month = ?", month)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Order("month DESC").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID retrieves a budget by ID for the household
func (s *budgetService) GetBudgetByID(householdID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND household_id = ?", budgetID, householdID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget changes a budget's amount.
func (s *budgetService) UpdateBudget(householdID, budgetID string, amount int64) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(householdID, budgetID)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount must be greater than zero")
	}
	if err := s.db.Model(budget).Update("amount", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// DeleteBudget deletes a budget
func (s *budgetService) DeleteBudget(householdID, budgetID string) error {
	budget, err := s.GetBudgetByID(householdID, budgetID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetProgress computes spending against the budget for its month.
// When the household has auto-rollover enabled, the previous month's unspent
// remainder (which can be negative) carries into this month's budgeted
// figure. The carry looks back one month only.
func (s *budgetService) GetBudgetProgress(householdID, budgetID string) (*BudgetProgress, error) {
	budget, err := s.GetBudgetByID(householdID, budgetID)
	if err != nil {
		return nil, err
	}

	var household models.Household
	if err := s.db.Where("id = ?", householdID).First(&household).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoHousehold
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spent, err := s.categorySpent(budget.CategoryID, budget.Month)
	if err != nil {
		return nil, err
	}

	var carry int64
	if household.AutoRollover {
		prev := previousMonth(budget.Month)
		var prevBudget models.Budget
		err := s.db.Where("category_id = ? AND month = ?", budget.CategoryID, prev).First(&prevBudget).Error
		switch {
		case err == nil:
			prevSpent, err := s.categorySpent(budget.CategoryID, prev)
			if err != nil {
				return nil, err
			}
			carry = prevBudget.Amount - prevSpent
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No budget last month, nothing to carry.
		default:
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	budgeted := budget.Amount + carry
	progress := &BudgetProgress{
		BudgetID:  budget.ID,
		Month:     budget.Month,
		Budgeted:  budgeted,
		Carry:     carry,
		Spent:     spent,
		Remaining: budgeted - spent,
	}
	if budgeted > 0 {
		progress.Percentage = float64(spent) / float64(budgeted) * 100
	}
	return progress, nil
}

// categorySpent sums positive (expense) amounts for a category in a month.
func (s *budgetService) categorySpent(categoryID, month string) (int64, error) {
	start, end, err := monthRange(month)
	if err != nil {
		return 0, err
	}

	var spent int64
	if err := s.db.Model(&models.Transaction{}).
		Where("category_id = ? AND date >= ? AND date < ? AND amount > 0", categoryID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&spent).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return spent, nil
}
