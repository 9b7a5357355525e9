package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/pagination"
	"hearth/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. Amount is in cents; expenses positive, refunds negative.
type CreateTransactionRequest struct {
	CategoryID  string    `json:"category_id" binding:"required,uuid"`
	Amount      int64     `json:"amount" binding:"required"`
	Description string    `json:"description" binding:"required,min=1,max=100"`
	Date        time.Time `json:"date"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Absent fields are left unchanged.
type UpdateTransactionRequest struct {
	CategoryID  *string    `json:"category_id" binding:"omitempty,uuid"`
	Amount      *int64     `json:"amount"`
	Description *string    `json:"description" binding:"omitempty,min=1,max=100"`
	Date        *time.Time `json:"date"`
}

// transactionListQuery holds the filter parameters for listing transactions.
type transactionListQuery struct {
	pagination.PageRequest
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	MinAmount  *int64 `form:"min_amount"`
	MaxAmount  *int64 `form:"max_amount"`
}

// CreateTransaction handles the creation of a new transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(householdID, req.CategoryID, req.Amount, req.Description, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles listing transactions with optional filters.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query transactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{
		MinAmount: query.MinAmount,
		MaxAmount: query.MaxAmount,
	}
	if query.From != "" {
		from, _ := time.Parse("2006-01-02", query.From)
		filter.FromDate = &from
	}
	if query.To != "" {
		to, _ := time.Parse("2006-01-02", query.To)
		filter.ToDate = &to
	}
	if query.CategoryID != "" {
		filter.CategoryID = &query.CategoryID
	}

	result, err := h.transactionService.GetTransactions(householdID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransaction handles fetching a single transaction by ID.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(householdID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles partial updates to a transaction.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(householdID, c.Param("id"), req.CategoryID, req.Amount, req.Description, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(householdID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
