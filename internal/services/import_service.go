package services

import (
	"errors"
	"io"

	"gorm.io/gorm"

	"hearth/internal/categorize"
	apperrors "hearth/internal/errors"
	"hearth/internal/importer"
	"hearth/internal/models"
	"hearth/internal/uuid"
)

// importService runs the CSV import pipeline: parse, suggest, dedupe, and
// the atomic batch commit.
type importService struct {
	db *gorm.DB
}

// The commit path doubles as the wizard's persistence step.
var _ importer.Committer = (*importService)(nil)

// NewImportService creates a new ImportServicer.
func NewImportService(db *gorm.DB) ImportServicer {
	return &importService{db: db}
}

// Preview parses an uploaded file and returns candidates enriched with
// category suggestions and duplicate flags. At least one category must exist
// before an import can start.
func (s *importService) Preview(householdID, fileName string, size int64, file io.Reader) (*ImportPreview, error) {
	var categoryCount int64
	if err := s.db.Model(&models.Category{}).Where("household_id = ?", householdID).Count(&categoryCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if categoryCount == 0 {
		return nil, apperrors.ErrNoCategories
	}

	if err := importer.ValidateFile(fileName, size); err != nil {
		return nil, err
	}

	result, err := importer.Parse(io.LimitReader(file, importer.MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(result.Transactions) == 0 && len(result.Errors) == 0 {
		return nil, apperrors.ErrImportEmpty
	}

	existing, err := s.existingTransactions(householdID, result.Transactions)
	if err != nil {
		return nil, err
	}
	duplicates := importer.MarkDuplicates(result.Transactions, existing)

	rows := make([]ImportRow, 0, len(result.Transactions))
	for i, candidate := range result.Transactions {
		rows = append(rows, ImportRow{
			Index:             i,
			Candidate:         candidate,
			SuggestedCategory: categorize.Suggest(candidate.Description),
			Duplicate:         duplicates[i],
		})
	}

	return &ImportPreview{
		IdempotencyKey: uuid.New(),
		FileName:       fileName,
		Rows:           rows,
		Errors:         result.Errors,
	}, nil
}

// existingTransactions loads the household transactions that could collide
// with the candidates, bounded by the candidates' date range.
func (s *importService) existingTransactions(householdID string, candidates []importer.Candidate) ([]models.Transaction, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	min, max := candidates[0].Date, candidates[0].Date
	for _, c := range candidates[1:] {
		if c.Date.Before(min) {
			min = c.Date
		}
		if c.Date.After(max) {
			max = c.Date
		}
	}

	var existing []models.Transaction
	if err := s.db.Where("household_id = ? AND date >= ? AND date <= ?", householdID, min, max).
		Find(&existing).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return existing, nil
}

// Commit persists the selected rows and returns the number inserted. A
// repeated idempotency key is a successful no-op reporting the original
// batch's row count.
func (s *importService) Commit(householdID, idempotencyKey, fileName string, rows []importer.CommitRow) (int, error) {
	if idempotencyKey == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "idempotency key is required")
	}
	if len(rows) == 0 {
		return 0, apperrors.ErrImportEmpty
	}

	var inserted int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var prior models.ImportBatch
		err := tx.Where("household_id = ? AND idempotency_key = ?", householdID, idempotencyKey).First(&prior).Error
		if err == nil {
			inserted = prior.RowCount
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// Every assigned category must belong to the household.
		categoryIDs := make([]string, 0, len(rows))
		seen := make(map[string]bool, len(rows))
		for _, row := range rows {
			if !seen[row.CategoryID] {
				seen[row.CategoryID] = true
				categoryIDs = append(categoryIDs, row.CategoryID)
			}
		}
		var categoryCount int64
		if err := tx.Model(&models.Category{}).
			Where("household_id = ? AND id IN ?", householdID, categoryIDs).
			Count(&categoryCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if int(categoryCount) != len(categoryIDs) {
			return apperrors.ErrCategoryNotFound
		}

		batch := &models.ImportBatch{
			HouseholdID:    householdID,
			IdempotencyKey: idempotencyKey,
			FileName:       fileName,
			RowCount:       len(rows),
		}
		if err := tx.Create(batch).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		transactions := make([]models.Transaction, 0, len(rows))
		for _, row := range rows {
			transactions = append(transactions, models.Transaction{
				HouseholdID:   householdID,
				CategoryID:    row.CategoryID,
				Amount:        row.AmountCents,
				Description:   row.Description,
				Date:          row.Date,
				ImportBatchID: &batch.ID,
			})
		}
		if err := tx.Create(&transactions).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		inserted = len(transactions)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
