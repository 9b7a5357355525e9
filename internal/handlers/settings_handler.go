package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/services"
)

// SettingsHandler handles household settings requests.
type SettingsHandler struct {
	householdService services.HouseholdServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(householdService services.HouseholdServicer) *SettingsHandler {
	return &SettingsHandler{householdService: householdService}
}

// UpdateSettingsRequest represents the request payload for updating settings.
type UpdateSettingsRequest struct {
	Timezone     *string `json:"timezone" binding:"omitempty,timezone_name"`
	AutoRollover *bool   `json:"auto_rollover"`
}

// GetSettings returns the household settings.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	household, err := h.householdService.GetHousehold()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timezone":      household.Timezone,
		"auto_rollover": household.AutoRollover,
	})
}

// UpdateSettings updates the household timezone and auto-rollover flag.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	householdID, err := getHouseholdID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	household, err := h.householdService.UpdateSettings(householdID, req.Timezone, req.AutoRollover)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timezone":      household.Timezone,
		"auto_rollover": household.AutoRollover,
	})
}
