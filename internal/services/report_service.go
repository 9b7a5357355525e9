package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
)

// reportService produces chart-ready aggregates over the ledger.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// SpendingByCategory sums expense amounts per category for one month,
// largest first. Categories with no spending that month are omitted.
func (s *reportService) SpendingByCategory(householdID, month string) ([]CategorySpending, error) {
	start, end, err := monthRange(month)
	if err != nil {
		return nil, err
	}

	var results []CategorySpending
	if err := s.db.Model(&models.Transaction{}).
		Select("categories.id AS category_id, categories.name AS category_name, categories.color AS color, SUM(transactions.amount) AS spent").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.household_id = ? AND transactions.date >= ? AND transactions.date < ? AND transactions.amount > 0", householdID, start, end).
		Group("categories.id, categories.name, categories.color").
		Order("spent DESC").
		Scan(&results).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return results, nil
}

// MonthlyTrend returns income and expense totals for the trailing months
// ending at the month containing until, oldest first. Months with no
// activity appear with zero totals so charts keep a continuous axis.
func (s *reportService) MonthlyTrend(householdID string, months int, until time.Time) ([]MonthTotals, error) {
	if months < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be at least 1")
	}

	last := time.Date(until.Year(), until.Month(), 1, 0, 0, 0, 0, time.UTC)
	trend := make([]MonthTotals, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := last.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		var row struct {
			Income   int64
			Expenses int64
		}
		if err := s.db.Model(&models.Transaction{}).
			Select("COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS income, COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS expenses").
			Where("household_id = ? AND date >= ? AND date < ?", householdID, start, end).
			Scan(&row).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		trend = append(trend, MonthTotals{
			Month:    start.Format(monthLayout),
			Income:   row.Income,
			Expenses: row.Expenses,
		})
	}
	return trend, nil
}
