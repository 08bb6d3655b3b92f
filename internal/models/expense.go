package models

import "time"

// Expense represents a single expense entry. Amounts are stored in cents.
type Expense struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index:idx_expenses_user_date" json:"user_id"`
	CategoryID  string    `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"not null;index:idx_expenses_user_date" json:"date"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
