package models

// User represents an account in the database. Guest accounts have a nil
// PasswordHash and a synthesized unique email; they are otherwise
// indistinguishable from normal accounts.
type User struct {
	Base
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash *string `gorm:"column:password_hash" json:"-"`

	// RefreshTokenHash is the SHA-256 hex digest of the single outstanding
	// refresh token, or empty when the account has no active session.
	RefreshTokenHash string `gorm:"size:64" json:"-"`

	Categories []Category `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Expenses   []Expense  `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}

// IsGuest reports whether the user is a passwordless guest account.
func (u *User) IsGuest() bool {
	return u.PasswordHash == nil
}
