package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/importer"
	"hearth/internal/services"
)

// ImportHandler handles CSV import requests.
type ImportHandler struct {
	importService services.ImportServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// CommitImportRow is one selected, categorized row in a commit request.
type CommitImportRow struct {
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Description string `json:"description" binding:"required,min=1,max=100"`
	CategoryID  string `json:"category_id" binding:"required,uuid"`
}

// CommitImportRequest represents the request payload for committing an import.
type CommitImportRequest struct {
	IdempotencyKey string            `json:"idempotency_key" binding:"required"`
	FileName       string            `json:"file_name"`
	Rows           []CommitImportRow `json:"rows" binding:"required,min=1,dive"`
}

// Preview handles a CSV upload and returns parsed candidates with category
// suggestions and duplicate flags. Nothing is persisted.
func (h *ImportHandler) Preview(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "a file upload is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	preview, err := h.importService.Preview(householdID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preview": preview})
}

// Commit handles persisting a previewed import as one atomic batch.
func (h *ImportHandler) Commit(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CommitImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rows := make([]importer.CommitRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		date, _ := time.Parse("2006-01-02", row.Date)
		rows = append(rows, importer.CommitRow{
			Date:        date,
			AmountCents: row.AmountCents,
			Description: row.Description,
			CategoryID:  row.CategoryID,
		})
	}

	inserted, err := h.importService.Commit(householdID, req.IdempotencyKey, req.FileName, rows)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imported": inserted})
}
