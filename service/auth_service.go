package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"lexai-backend/models"
	"lexai-backend/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingFields is returned when a required registration field is empty
	ErrMissingFields = errors.New("all fields are required")

	// ErrWeakPassword is returned when the password is under six characters
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrEmailRegistered is returned when a verified account already owns the email
	ErrEmailRegistered = errors.New("email already registered")

	// ErrUserNotFound is returned when no account matches the email
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyVerified is returned when verifying an already verified account
	ErrAlreadyVerified = errors.New("email already verified")

	// ErrNoOTPRequested is returned when no OTP is pending for the account
	ErrNoOTPRequested = errors.New("no OTP requested")

	// ErrOTPExpired is returned when the OTP is past its validity window
	ErrOTPExpired = errors.New("OTP has expired, please register again")

	// ErrInvalidOTP is returned when the submitted code does not match
	ErrInvalidOTP = errors.New("invalid OTP")

	// ErrInvalidCredentials is returned for a wrong email or password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified is returned when an unverified account tries to log in
	ErrEmailNotVerified = errors.New("please verify your email first")
)

const (
	bcryptCost  = 12
	otpValidity = 10 * time.Minute
	minPassword = 6
)

// UserStore persists user accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUnverified(ctx context.Context, user *models.User) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
}

// OTPMailer delivers verification codes
type OTPMailer interface {
	SendOTP(to, otp string) error
}

// AuthService handles registration, OTP verification and login
type AuthService struct {
	users      UserStore
	mailer     OTPMailer
	activities ActivityRecorder
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, mailer OTPMailer, activities ActivityRecorder) *AuthService {
	return &AuthService{
		users:      users,
		mailer:     mailer,
		activities: activities,
	}
}

// Register creates an unverified account and emails its OTP. Registering
// again with an unverified email restarts the flow with fresh credentials.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return ErrMissingFields
	}
	if len(password) < minPassword {
		return ErrWeakPassword
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if existing != nil && existing.IsVerified {
		return ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	otp := newOTP()
	expiry := time.Now().Add(otpValidity)

	if existing != nil {
		existing.Name = name
		existing.PasswordHash = string(hash)
		existing.OTP = &otp
		existing.OTPExpiry = &expiry
		if err := s.users.UpdateUnverified(ctx, existing); err != nil {
			return err
		}
	} else {
		user := &models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			OTP:          &otp,
			OTPExpiry:    &expiry,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
	}

	return s.mailer.SendOTP(email, otp)
}

// VerifyOTP confirms the emailed code and activates the account
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if user.IsVerified {
		return nil, ErrAlreadyVerified
	}
	if user.OTP == nil || user.OTPExpiry == nil {
		return nil, ErrNoOTPRequested
	}
	if time.Now().After(*user.OTPExpiry) {
		return nil, ErrOTPExpired
	}
	if *user.OTP != otp {
		return nil, ErrInvalidOTP
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	user.IsVerified = true
	user.OTP = nil
	user.OTPExpiry = nil

	return user, nil
}

// Login checks credentials for a verified account. Unknown emails and wrong
// passwords return the same error so the endpoint never leaks which was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsVerified {
		return nil, ErrEmailNotVerified
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	recordActivity(ctx, s.activities, &models.Activity{
		UserID:      user.ID,
		Type:        models.ActivityLogin,
		Description: "Logged in",
	})

	return user, nil
}

// GetUser loads an account by ID
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func newOTP() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
