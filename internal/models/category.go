package models

// Category represents an expense category. Names are unique per user.
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
	Icon   string `json:"icon"`

	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
}
