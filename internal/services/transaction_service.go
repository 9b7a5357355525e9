package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction creates a new ledger entry. Amount is in cents; expenses
// positive, refunds negative. Zero amounts are rejected.
func (s *transactionService) CreateTransaction(householdID, categoryID string, amount int64, description string, date time.Time) (*models.Transaction, error) {
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be zero")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if len(description) > 100 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be 100 characters or fewer")
	}
	if date.IsZero() {
		date = time.Now()
	}

	// Ensure the category exists and belongs to the household.
	var category models.Category
	if err := s.db.Where("id = ? AND household_id = ?", categoryID, householdID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction := &models.Transaction{
		HouseholdID: householdID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetTransactions retrieves a paginated, filtered list of transactions.
func (s *transactionService) GetTransactions(householdID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("household_id = ?", householdID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for the household
func (s *transactionService) GetTransactionByID(householdID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND household_id = ?", transactionID, householdID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction updates an existing transaction. Nil fields are left unchanged.
func (s *transactionService) UpdateTransaction(householdID, transactionID string, categoryID *string, amount *int64, description *string, date *time.Time) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(householdID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if categoryID != nil {
		var category models.Category
		if err := s.db.Where("id = ? AND household_id = ?", *categoryID, householdID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["category_id"] = *categoryID
	}
	if amount != nil {
		if *amount == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be zero")
		}
		updates["amount"] = *amount
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
		}
		if len(trimmed) > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be 100 characters or fewer")
		}
		updates["description"] = trimmed
	}
	if date != nil {
		updates["date"] = *date
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return transaction, nil
}

// DeleteTransaction deletes a transaction
func (s *transactionService) DeleteTransaction(householdID, transactionID string) error {
	transaction, err := s.GetTransactionByID(householdID, transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
