package services

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
)

var pinFormat = regexp.MustCompile(`^[0-9]{4,6}$`)

// householdService handles household setup, PIN verification and settings.
type householdService struct {
	db *gorm.DB
}

// NewHouseholdService creates a new HouseholdServicer.
func NewHouseholdService(db *gorm.DB) HouseholdServicer {
	return &householdService{db: db}
}

// SetupHousehold creates the single household, hashing the PIN one-way.
// Rejected when a household already exists.
func (s *householdService) SetupHousehold(pin string) (*models.Household, error) {
	if !pinFormat.MatchString(pin) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "PIN must be 4-6 digits")
	}

	var count int64
	if err := s.db.Model(&models.Household{}).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrSetupDone
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	household := &models.Household{
		PINHash:  string(hash),
		Timezone: "UTC",
	}
	if err := s.db.Create(household).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return household, nil
}

// GetHousehold returns the household, or ErrNoHousehold before setup.
func (s *householdService) GetHousehold() (*models.Household, error) {
	var household models.Household
	if err := s.db.First(&household).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoHousehold
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &household, nil
}

// VerifyPIN checks the PIN against the stored hash. Wrong PINs come back as
// ErrInvalidPIN with no further detail.
func (s *householdService) VerifyPIN(pin string) (*models.Household, error) {
	household, err := s.GetHousehold()
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(household.PINHash), []byte(pin)) != nil {
		return nil, apperrors.ErrInvalidPIN
	}
	return household, nil
}

// UpdateSettings updates the household timezone and auto-rollover flag.
// Nil fields are left unchanged.
func (s *householdService) UpdateSettings(householdID string, timezone *string, autoRollover *bool) (*models.Household, error) {
	var household models.Household
	if err := s.db.Where("id = ?", householdID).First(&household).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoHousehold
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if timezone != nil {
		updates["timezone"] = *timezone
	}
	if autoRollover != nil {
		updates["auto_rollover"] = *autoRollover
	}

	if len(updates) > 0 {
		if err := s.db.Model(&household).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &household, nil
}
