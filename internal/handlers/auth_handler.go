package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

// AuthHandler handles authentication and session-lifecycle requests
type AuthHandler struct {
	authService services.AuthServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// AuthResponse represents the authentication response with tokens
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// ProfileResponse represents the authenticated user's public profile
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse represents a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with email and password; a session is established immediately
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and tokens issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
		},
	})
}

// GuestLogin handles guest account bootstrapping
// @Summary     Log in as a guest
// @Description Create a passwordless guest account and establish a session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Success     201 {object} AuthResponse "Guest account created and tokens issued"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/guest [post]
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	result, err := h.authService.GuestLogin()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"user": gin.H{
			"id": result.User.ID,
		},
	})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and establish a fresh session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and tokens issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
		},
	})
}

// Refresh handles refresh-token rotation
// @Summary     Refresh tokens
// @Description Exchange a valid refresh token for a new access/refresh pair; the presented token is consumed
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       Authorization header string true "Bearer refresh token"
// @Success     200 {object} services.TokenPair "New token pair"
// @Failure     401 {object} ErrorResponse "Invalid, expired, or already-used refresh token"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, ok := middleware.BearerToken(c)
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	pair, err := h.authService.Refresh(refreshToken)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Logout handles session termination
// @Summary     Logout
// @Description Terminate the current session; idempotent
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.authService.Logout(userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetMe returns the authenticated user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's public profile fields
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ProfileResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

// DeleteAccount handles cascading account deletion
// @Summary     Delete account
// @Description Delete the authenticated user's account together with all expenses and categories
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Account deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/delete-account [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.authService.DeleteAccount(userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
