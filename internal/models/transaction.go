package models

import "time"

// Transaction represents a committed ledger entry. Amount is stored in cents;
// expenses are positive, refunds negative.
type Transaction struct {
	Base
	HouseholdID   string    `gorm:"type:uuid;not null" json:"household_id"`
	CategoryID    string    `gorm:"type:uuid;not null" json:"category_id"`
	Amount        int64     `gorm:"type:bigint;not null" json:"amount"`
	Description   string    `gorm:"size:100;not null" json:"description"`
	Date          time.Time `gorm:"not null" json:"date"`
	ImportBatchID *string   `gorm:"type:uuid" json:"import_batch_id,omitempty"`

	// Relationships
	Category    Category     `gorm:"foreignKey:CategoryID" json:"category"`
	ImportBatch *ImportBatch `gorm:"foreignKey:ImportBatchID" json:"-"`
}
