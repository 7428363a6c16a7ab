package handlers

import (
	"net/http"
	"strings"

	"stocktracker/internal/dto"
	"stocktracker/internal/errors"
	"stocktracker/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user with email, password, and an optional display name
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} SuccessResponse "User created successfully"
// @Failure 400 {object} errors.ErrorResponse "Validation error"
// @Failure 409 {object} errors.ErrorResponse "User already exists - AUTH_007"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	user, err := h.authService.Register(&req, ipAddress, userAgent)
	if err != nil {
		if err == services.ErrUserAlreadyExists {
			return SendError(c, errors.AuthUserAlreadyExists)
		}
		return SendSystemError(c, err)
	}

	response := dto.UserProfileResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    response,
		Message: "User registered successfully",
	})
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate with email and password, receive JWT access and refresh tokens
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenResponse "Login successful with JWT tokens"
// @Failure 401 {object} errors.ErrorResponse "Invalid credentials - AUTH_002"
// @Failure 403 {object} errors.ErrorResponse "Account locked - AUTH_006"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	tokens, err := h.authService.Login(&req, ipAddress, userAgent)
	if err != nil {
		if err == services.ErrAccountLocked {
			return SendError(c, errors.AuthAccountLocked)
		}
		if err == services.ErrInvalidCredentials {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Get a new access token and refresh token pair using a valid refresh token
// @Tags Authentication
// @Accept json
// @Produce json
// @Success 200 {object} dto.TokenResponse "Token refreshed successfully"
// @Failure 401 {object} errors.ErrorResponse "Invalid refresh token - AUTH_003"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req dto.RefreshTokenRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	tokens, err := h.authService.RefreshTokens(req.RefreshToken, ipAddress, userAgent)
	if err != nil {
		if err == services.ErrInvalidRefreshToken {
			return SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Invalid or expired refresh token"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// Logout handles user logout
// @Summary Logout user
// @Description Invalidate the access token and revoke refresh tokens. Requires Bearer token.
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse "Logout successful"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return SendError(c, errors.AuthMissingToken)
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return SendError(c, errors.AuthInvalidTokenFormat)
	}

	accessToken := tokenParts[1]
	ipAddress := getClientIP(c)
	userAgent := c.Request().UserAgent()

	if err := h.authService.Logout(accessToken, ipAddress, userAgent); err != nil {
		// Always return success to prevent information leakage about system internals
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Logout successful",
	})
}
