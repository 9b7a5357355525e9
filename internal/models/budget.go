package models

// Budget represents a monthly spending target for a category.
// Month uses the YYYY-MM format; Amount is in cents.
type Budget struct {
	Base
	HouseholdID string `gorm:"type:uuid;not null" json:"household_id"`
	CategoryID  string `gorm:"type:uuid;not null;uniqueIndex:idx_budget_category_month" json:"category_id"`
	Month       string `gorm:"size:7;not null;uniqueIndex:idx_budget_category_month" json:"month"`
	Amount      int64  `gorm:"type:bigint;not null" json:"amount"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
