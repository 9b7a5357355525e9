package models

// Household represents the single tenant of the application. Exactly one row
// exists after setup; every category, transaction and budget belongs to it.
type Household struct {
	Base
	PINHash      string `gorm:"not null" json:"-"`
	Timezone     string `gorm:"not null;default:UTC" json:"timezone"`
	AutoRollover bool   `gorm:"default:false" json:"auto_rollover"`

	// Relationships
	Categories   []Category    `gorm:"foreignKey:HouseholdID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:HouseholdID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:HouseholdID" json:"budgets,omitempty"`
}
