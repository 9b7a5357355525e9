package ratelimit

import (
	"errors"

	"hearth/internal/models"

	"gorm.io/gorm"
)

// Store is the narrow row-store contract the limiter depends on. Get returns
// (nil, nil) when no record exists for the IP.
type Store interface {
	Get(ip string) (*models.RateLimitRecord, error)
	Upsert(record *models.RateLimitRecord) error
	Delete(ip string) error
}

// gormStore persists rate-limit records through GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given database.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ip string) (*models.RateLimitRecord, error) {
	var record models.RateLimitRecord
	if err := s.db.Where("ip_address = ?", ip).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *gormStore) Upsert(record *models.RateLimitRecord) error {
	if record.ID == "" {
		return s.db.Create(record).Error
	}
	return s.db.Save(record).Error
}

func (s *gormStore) Delete(ip string) error {
	// Hard delete: a resurrected record must never carry a stale lockout.
	return s.db.Unscoped().Where("ip_address = ?", ip).Delete(&models.RateLimitRecord{}).Error
}

var _ Store = (*gormStore)(nil)
