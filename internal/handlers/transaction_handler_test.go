package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/pagination"
	"hearth/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn  func(householdID, categoryID string, amount int64, description string, date time.Time) (*models.Transaction, error)
	getTransactionsFn    func(householdID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByIDFn func(householdID, transactionID string) (*models.Transaction, error)
	updateTransactionFn  func(householdID, transactionID string, categoryID *string, amount *int64, description *string, date *time.Time) (*models.Transaction, error)
	deleteTransactionFn  func(householdID, transactionID string) error
}

func (m *mockTransactionService) CreateTransaction(householdID, categoryID string, amount int64, description string, date time.Time) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(householdID, categoryID, amount, description, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactions(householdID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(householdID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(householdID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(householdID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(householdID, transactionID string, categoryID *string, amount *int64, description *string, date *time.Time) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(householdID, transactionID, categoryID, amount, description, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(householdID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(householdID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectHouseholdID("hh-1"))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.GetTransactions)
	auth.GET("/transactions/:id", handler.GetTransaction)
	auth.PUT("/transactions/:id", handler.UpdateTransaction)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(householdID, categoryID string, amount int64, description string, date time.Time) (*models.Transaction, error) {
				return &models.Transaction{
					Base:        models.Base{ID: "tx-1"},
					HouseholdID: householdID,
					CategoryID:  categoryID,
					Amount:      amount,
					Description: description,
					Date:        date,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"category_id":"3a2b8f9e-1111-7222-8333-444455556666","amount":4599,"description":"Weekly shop","date":"2026-03-14T00:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["amount"].(float64) != 4599 {
			t.Errorf("expected amount 4599, got %v", tx["amount"])
		}
	})

	t.Run("returns 400 on missing description", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"category_id":"3a2b8f9e-1111-7222-8333-444455556666","amount":4599}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes filters to the service", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		svc := &mockTransactionService{
			getTransactionsFn: func(_ string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				page.Defaults()
				resp := pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions?from=2026-03-01&to=2026-03-31&min_amount=100", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.FromDate == nil || gotFilter.FromDate.Format("2006-01-02") != "2026-03-01" {
			t.Errorf("expected from filter, got %v", gotFilter.FromDate)
		}
		if gotFilter.MinAmount == nil || *gotFilter.MinAmount != 100 {
			t.Errorf("expected min amount 100, got %v", gotFilter.MinAmount)
		}
	})

	t.Run("returns 400 on malformed date filter", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?from=yesterday", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns 404 when unknown", func(t *testing.T) {
		svc := &mockTransactionService{
			getTransactionByIDFn: func(_, _ string) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions/nope", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		svc := &mockTransactionService{
			updateTransactionFn: func(_, _ string, categoryID *string, amount *int64, description *string, date *time.Time) (*models.Transaction, error) {
				if categoryID != nil || description != nil || date != nil {
					t.Error("expected only amount to be set")
				}
				if amount == nil || *amount != 2500 {
					t.Errorf("expected amount 2500, got %v", amount)
				}
				return &models.Transaction{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/tx-1", `{"amount":2500}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
