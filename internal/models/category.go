package models

// Category represents a transaction category
type Category struct {
	Base
	HouseholdID string `gorm:"type:uuid;not null" json:"household_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Color       string `gorm:"size:7;not null" json:"color"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}
