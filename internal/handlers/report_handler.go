package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/services"
)

// defaultTrendMonths is how many months the trend report covers when the
// caller does not say.
const defaultTrendMonths = 6

// ReportHandler handles spending report requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SpendingByCategory handles the per-category spending breakdown for a month.
func (h *ReportHandler) SpendingByCategory(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	results, err := h.reportService.SpendingByCategory(householdID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": month, "categories": results})
}

// MonthlyTrend handles the income-vs-expense trend over trailing months.
func (h *ReportHandler) MonthlyTrend(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := defaultTrendMonths
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 24 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 24"))
			return
		}
		months = parsed
	}

	trend, err := h.reportService.MonthlyTrend(householdID, months, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
