package handlers

import (
	"errors"
	"net/http"

	"lexai-backend/middleware"
	"lexai-backend/models"
	"lexai-backend/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for registration and sessions
type AuthHandler struct {
	authService *service.AuthService
	jwtSecret   string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   jwtSecret,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "All fields are required")
	case errors.Is(err, service.ErrWeakPassword):
		fail(c, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 6 characters")
	case errors.Is(err, service.ErrEmailRegistered):
		fail(c, http.StatusConflict, "EMAIL_REGISTERED", "Email already registered")
	case err != nil:
		fail(c, http.StatusInternalServerError, "REGISTER_FAILED", "Something went wrong")
	default:
		ok(c, http.StatusCreated, gin.H{"message": "OTP sent to your email"})
	}
}

// VerifyOTPRequest represents the request body for OTP verification
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Email == "" || req.OTP == "" {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Email and OTP are required")
		return
	}

	user, err := h.authService.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		fail(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	case errors.Is(err, service.ErrAlreadyVerified):
		fail(c, http.StatusBadRequest, "ALREADY_VERIFIED", "Email already verified")
		return
	case errors.Is(err, service.ErrNoOTPRequested):
		fail(c, http.StatusBadRequest, "NO_OTP", "No OTP requested")
		return
	case errors.Is(err, service.ErrOTPExpired):
		fail(c, http.StatusBadRequest, "OTP_EXPIRED", "OTP has expired. Please register again.")
		return
	case errors.Is(err, service.ErrInvalidOTP):
		fail(c, http.StatusBadRequest, "INVALID_OTP", "Invalid OTP")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, "VERIFY_FAILED", "Something went wrong")
		return
	}

	if err := h.setSessionCookie(c, user); err != nil {
		fail(c, http.StatusInternalServerError, "TOKEN_FAILED", "Something went wrong")
		return
	}

	ok(c, http.StatusOK, gin.H{
		"message": "Email verified successfully",
		"user":    sessionUser(user.ID.String(), user.Name, user.Email),
	})
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Email and password are required")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	case errors.Is(err, service.ErrEmailNotVerified):
		fail(c, http.StatusForbidden, "EMAIL_NOT_VERIFIED", "Please verify your email first")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, "LOGIN_FAILED", "Something went wrong")
		return
	}

	if err := h.setSessionCookie(c, user); err != nil {
		fail(c, http.StatusInternalServerError, "TOKEN_FAILED", "Something went wrong")
		return
	}

	ok(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    sessionUser(user.ID.String(), user.Name, user.Email),
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{
		"user": sessionUser(
			middleware.GetUserID(c).String(),
			middleware.GetUserName(c),
			middleware.GetUserEmail(c),
		),
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", gin.Mode() == gin.ReleaseMode, true)
	ok(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, user *models.User) error {
	token, err := middleware.GenerateToken(user, h.jwtSecret)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AuthCookieName,
		token,
		int(middleware.TokenValidity.Seconds()),
		"/",
		"",
		gin.Mode() == gin.ReleaseMode,
		true,
	)
	return nil
}

func sessionUser(id, name, email string) gin.H {
	return gin.H{
		"userId": id,
		"name":   name,
		"email":  email,
	}
}
