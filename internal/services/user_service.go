package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack/internal/credential"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// userService is the account store. It owns the User entity and is the only
// place passwords are hashed on write.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// secretColumns are excluded from every read unless a WithSecrets method is
// used, so ordinary profile lookups can never surface a digest.
var secretColumns = []string{"password_hash", "refresh_token_hash"}

// CreateUser registers a new user with a hashed password.
func (s *userService) CreateUser(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	email = strings.ToLower(email)

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := credential.HashPassword(password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: &hash,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// CreateGuestUser creates a passwordless account with a synthesized unique
// email, so the email uniqueness constraint is never violated. A collision on
// the generated email cannot happen in practice but is still handled.
func (s *userService) CreateGuestUser() (*models.User, error) {
	user := &models.User{
		Email:        guestEmail(),
		PasswordHash: nil,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// guestEmail synthesizes a globally unique placeholder address from the
// current timestamp and a random suffix.
func guestEmail() string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("guest-%d-%s@guest.fintrack.local", time.Now().UnixMilli(), suffix)
}

// GetUserByEmail retrieves a user by email with secret columns omitted.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Omit(secretColumns...).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByEmailWithSecrets retrieves a user by email including the password
// hash. Only the login path may use this.
func (s *userService) GetUserByEmailWithSecrets(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID with secret columns omitted.
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Omit(secretColumns...).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash.
// Guest accounts have no password and can never verify.
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	if user.PasswordHash == nil {
		return false
	}
	return credential.VerifyPassword(password, *user.PasswordHash)
}

// StoreRefreshTokenHash records the digest of the account's current refresh
// token, overwriting any previous one. There is at most one active refresh
// token per account.
func (s *userService) StoreRefreshTokenHash(userID, tokenHash string) error {
	return s.updateRefreshTokenHash(userID, tokenHash)
}

// ClearRefreshTokenHash removes the account's session. Clearing an account
// with no session is a no-op.
func (s *userService) ClearRefreshTokenHash(userID string) error {
	return s.updateRefreshTokenHash(userID, "")
}

func (s *userService) updateRefreshTokenHash(userID, tokenHash string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token_hash", tokenHash)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh-token digest for an account,
// or an empty string when no session is active.
func (s *userService) GetRefreshTokenHash(userID string) (string, error) {
	var user models.User
	if err := s.db.Select("id", "refresh_token_hash").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user.RefreshTokenHash, nil
}

// RotateRefreshTokenHash replaces the stored digest with newHash only if it
// still equals oldHash, in a single conditional UPDATE. When two refresh calls
// race with the same token, the row is the arbitration point: exactly one
// UPDATE matches, the other observes zero affected rows and fails.
func (s *userService) RotateRefreshTokenHash(userID, oldHash, newHash string) error {
	res := s.db.Model(&models.User{}).
		Where("id = ? AND refresh_token_hash = ?", userID, oldHash).
		Update("refresh_token_hash", newHash)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// DeleteUser removes the account row inside the given transaction. The caller
// is responsible for removing dependent records first.
func (s *userService) DeleteUser(tx *gorm.DB, userID string) error {
	res := tx.Where("id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
