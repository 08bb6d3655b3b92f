package services

import (
	"errors"

	"gorm.io/gorm"

	"fintrack/internal/credential"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/token"
)

// authService orchestrates the session lifecycle. It issues tokens through the
// token manager, persists refresh-token digests through the account store, and
// drives cascading deletion through the category and expense stores.
type authService struct {
	db         *gorm.DB
	users      UserServicer
	categories CategoryServicer
	expenses   ExpenseServicer
	tokens     *token.Manager
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(db *gorm.DB, users UserServicer, categories CategoryServicer, expenses ExpenseServicer, tokens *token.Manager) AuthServicer {
	return &authService{
		db:         db,
		users:      users,
		categories: categories,
		expenses:   expenses,
		tokens:     tokens,
	}
}

// Register creates an account and immediately establishes a session.
func (s *authService) Register(email, password string) (*AuthResult, error) {
	user, err := s.users.CreateUser(email, password)
	if err != nil {
		return nil, err
	}
	return s.startSession(user)
}

// GuestLogin bootstraps a passwordless account and establishes a session. The
// issuance path is identical to Register, so downstream logic never needs a
// guest-specific branch.
func (s *authService) GuestLogin() (*AuthResult, error) {
	user, err := s.users.CreateGuestUser()
	if err != nil {
		return nil, err
	}
	return s.startSession(user)
}

// Login authenticates with email and password and establishes a fresh session,
// implicitly invalidating any previous one. Unknown email and wrong password
// produce the identical error.
func (s *authService) Login(email, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmailWithSecrets(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.users.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.startSession(user)
}

// startSession issues an access/refresh pair and stores the refresh digest.
func (s *authService) startSession(user *models.User) (*AuthResult, error) {
	pair, refreshHash, err := s.issuePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.users.StoreRefreshTokenHash(user.ID, refreshHash); err != nil {
		return nil, err
	}
	return &AuthResult{TokenPair: *pair, User: user}, nil
}

func (s *authService) issuePair(userID string) (*TokenPair, string, error) {
	access, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, credential.TokenDigest(refresh), nil
}

// Refresh exchanges a valid refresh token for a new access/refresh pair.
// Rotation is unconditional: the presented token is consumed even though the
// new access token alone would suffice, limiting any single refresh token's
// replay window to one use. The rotation itself is a compare-and-swap on the
// stored digest, so two racing calls with the same token cannot both succeed.
func (s *authService) Refresh(presented string) (*TokenPair, error) {
	userID, err := s.tokens.ParseRefreshToken(presented)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			logger.Get().Infow("refresh token expired", "error", err.Error())
		} else {
			logger.Get().Warnw("invalid refresh token presented", "error", err.Error())
		}
		return nil, apperrors.ErrUnauthorized
	}

	storedHash, err := s.users.GetRefreshTokenHash(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if storedHash == "" {
		// Account has no active session.
		return nil, apperrors.ErrUnauthorized
	}

	if !credential.VerifyTokenDigest(presented, storedHash) {
		// A well-signed, unexpired token that no longer matches the stored
		// digest was already consumed by a rotation: possible token theft.
		// The client still sees a generic unauthorized response.
		logger.Get().Warnw("refresh token reuse detected", "user_id", userID)
		return nil, apperrors.ErrUnauthorized
	}

	pair, newHash, err := s.issuePair(userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.RotateRefreshTokenHash(userID, storedHash, newHash); err != nil {
		// Lost the rotation race to a concurrent refresh.
		return nil, err
	}

	return pair, nil
}

// Logout terminates the session by clearing the stored refresh-token digest.
// Logging out an already-logged-out account is a no-op success.
func (s *authService) Logout(userID string) error {
	err := s.users.ClearRefreshTokenHash(userID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return apperrors.ErrUnauthorized
	}
	return err
}

// DeleteAccount removes the user's expenses, then categories, then the account
// row itself, in dependency order, inside a single transaction so a
// mid-sequence failure cannot leave orphaned rows.
func (s *authService) DeleteAccount(userID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.expenses.DeleteAllForUser(tx, userID); err != nil {
			return err
		}
		if err := s.categories.DeleteAllForUser(tx, userID); err != nil {
			return err
		}
		return s.users.DeleteUser(tx, userID)
	})
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return apperrors.ErrUnauthorized
	}
	return err
}

// GetProfile returns the public profile fields for an account. Secret columns
// never leave the account store on this path.
func (s *authService) GetProfile(userID string) (*models.User, error) {
	return s.users.GetUserByID(userID)
}
