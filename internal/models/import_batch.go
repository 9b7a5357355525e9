package models

// ImportBatch records one committed CSV import. The idempotency key makes a
// retried commit a no-op instead of a double insert.
type ImportBatch struct {
	Base
	HouseholdID    string `gorm:"type:uuid;not null" json:"household_id"`
	IdempotencyKey string `gorm:"size:36;not null;uniqueIndex" json:"idempotency_key"`
	FileName       string `gorm:"size:255" json:"file_name"`
	RowCount       int    `gorm:"not null" json:"row_count"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:ImportBatchID" json:"transactions,omitempty"`
}
