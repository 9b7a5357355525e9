package services

import (
	"io"
	"time"

	"hearth/internal/importer"
	"hearth/internal/models"
	"hearth/internal/pagination"
)

// HouseholdServicer defines the contract for household setup, PIN
// verification and settings.
type HouseholdServicer interface {
	SetupHousehold(pin string) (*models.Household, error)
	GetHousehold() (*models.Household, error)
	VerifyPIN(pin string) (*models.Household, error)
	UpdateSettings(householdID string, timezone *string, autoRollover *bool) (*models.Household, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(householdID, name, color string) (*models.Category, error)
	GetCategories(householdID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(householdID, categoryID string) (*models.Category, error)
	UpdateCategory(householdID, categoryID, name, color string) (*models.Category, error)
	DeleteCategory(householdID, categoryID string) error
	CountCategories(householdID string) (int64, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *string
	MinAmount  *int64
	MaxAmount  *int64
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(householdID, categoryID string, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetTransactions(householdID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(householdID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(householdID, transactionID string, categoryID *string, amount *int64, description *string, date *time.Time) (*models.Transaction, error)
	DeleteTransaction(householdID, transactionID string) error
}

// BudgetProgress contains spending vs budget data for one budget's month.
// Budgeted includes any rollover carry from the previous month.
type BudgetProgress struct {
	BudgetID   string  `json:"budget_id"`
	Month      string  `json:"month"`
	Budgeted   int64   `json:"budgeted"`
	Carry      int64   `json:"carry"`
	Spent      int64   `json:"spent"`
	Remaining  int64   `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(householdID, categoryID, month string, amount int64) (*models.Budget, error)
	GetBudgets(householdID, month string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(householdID, budgetID string) (*models.Budget, error)
	UpdateBudget(householdID, budgetID string, amount int64) (*models.Budget, error)
	DeleteBudget(householdID, budgetID string) error
	GetBudgetProgress(householdID, budgetID string) (*BudgetProgress, error)
}

// CategorySpending is one slice of a month's spending-by-category chart.
type CategorySpending struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Color        string `json:"color"`
	Spent        int64  `json:"spent"`
}

// MonthTotals is one bar of the income-vs-expense trend chart.
type MonthTotals struct {
	Month    string `json:"month"`
	Income   int64  `json:"income"`
	Expenses int64  `json:"expenses"`
}

// ReportServicer defines the contract for chart-ready spending reports.
type ReportServicer interface {
	SpendingByCategory(householdID, month string) ([]CategorySpending, error)
	MonthlyTrend(householdID string, months int, until time.Time) ([]MonthTotals, error)
}

// ImportRow is one parsed candidate enriched for the preview step.
type ImportRow struct {
	Index             int                `json:"index"`
	Candidate         importer.Candidate `json:"candidate"`
	SuggestedCategory string             `json:"suggested_category"`
	Duplicate         bool               `json:"duplicate"`
}

// ImportPreview is the response to an upload: candidates with suggestions
// and duplicate flags, plus the rows that failed to parse.
type ImportPreview struct {
	IdempotencyKey string              `json:"idempotency_key"`
	FileName       string              `json:"file_name"`
	Rows           []ImportRow         `json:"rows"`
	Errors         []importer.RowError `json:"errors"`
}

// ImportServicer defines the contract for the CSV import pipeline.
type ImportServicer interface {
	Preview(householdID, fileName string, size int64, file io.Reader) (*ImportPreview, error)
	Commit(householdID, idempotencyKey, fileName string, rows []importer.CommitRow) (int, error)
}
