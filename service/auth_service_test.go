package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lexai-backend/models"
	"lexai-backend/repository"

	"github.com/google/uuid"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) UpdateUnverified(ctx context.Context, user *models.User) error {
	existing, ok := f.byEmail[user.Email]
	if !ok || existing.IsVerified {
		return repository.ErrNotFound
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) MarkVerified(ctx context.Context, id uuid.UUID) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.IsVerified = true
			u.OTP = nil
			u.OTPExpiry = nil
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeMailer struct {
	to   string
	otp  string
	sent int
}

func (f *fakeMailer) SendOTP(to, otp string) error {
	f.to = to
	f.otp = otp
	f.sent++
	return nil
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), &fakeMailer{}, nil)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"missing name", "", "a@b.com", "secret1", ErrMissingFields},
		{"missing email", "Jane", "", "secret1", ErrMissingFields},
		{"missing password", "Jane", "a@b.com", "", ErrMissingFields},
		{"short password", "Jane", "a@b.com", "12345", ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegisterSendsOTP(t *testing.T) {
	store := newFakeUserStore()
	mailer := &fakeMailer{}
	svc := NewAuthService(store, mailer, nil)

	if err := svc.Register(context.Background(), "Jane", "Jane@Example.COM", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, ok := store.byEmail["jane@example.com"]
	if !ok {
		t.Fatal("Expected user stored under lowercased email")
	}
	if user.IsVerified {
		t.Error("New registration must start unverified")
	}
	if user.OTP == nil || len(*user.OTP) != 6 {
		t.Fatal("Expected a 6-digit OTP on the account")
	}
	if mailer.sent != 1 || mailer.to != "jane@example.com" || mailer.otp != *user.OTP {
		t.Errorf("Expected OTP mailed to the user, got to=%q otp=%q", mailer.to, mailer.otp)
	}
	if user.PasswordHash == "secret1" {
		t.Error("Password must be stored hashed")
	}
}

func TestRegisterVerifiedEmailConflict(t *testing.T) {
	store := newFakeUserStore()
	store.byEmail["jane@example.com"] = &models.User{
		ID: uuid.New(), Email: "jane@example.com", IsVerified: true,
	}
	svc := NewAuthService(store, &fakeMailer{}, nil)

	err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret1")
	if !errors.Is(err, ErrEmailRegistered) {
		t.Errorf("Expected ErrEmailRegistered, got %v", err)
	}
}

func TestRegisterUnverifiedEmailRestartsFlow(t *testing.T) {
	store := newFakeUserStore()
	mailer := &fakeMailer{}
	svc := NewAuthService(store, mailer, nil)

	if err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret1"); err != nil {
		t.Fatalf("First register failed: %v", err)
	}
	firstOTP := *store.byEmail["jane@example.com"].OTP

	if err := svc.Register(context.Background(), "Jane D", "jane@example.com", "newsecret"); err != nil {
		t.Fatalf("Re-register failed: %v", err)
	}

	user := store.byEmail["jane@example.com"]
	if user.Name != "Jane D" {
		t.Errorf("Expected updated name, got %q", user.Name)
	}
	if mailer.sent != 2 {
		t.Errorf("Expected a second OTP mail, got %d", mailer.sent)
	}
	_ = firstOTP // OTPs are random, a collision is possible, only delivery is asserted
}

func TestVerifyOTP(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, &fakeMailer{}, nil)

	if err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	otp := *store.byEmail["jane@example.com"].OTP

	if _, err := svc.VerifyOTP(context.Background(), "nobody@example.com", otp); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.VerifyOTP(context.Background(), "jane@example.com", "000000"); !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("Expected ErrInvalidOTP, got %v", err)
	}

	user, err := svc.VerifyOTP(context.Background(), "jane@example.com", otp)
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if !user.IsVerified {
		t.Error("Expected verified user after OTP")
	}

	if _, err := svc.VerifyOTP(context.Background(), "jane@example.com", otp); !errors.Is(err, ErrAlreadyVerified) {
		t.Errorf("Expected ErrAlreadyVerified, got %v", err)
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, &fakeMailer{}, nil)

	if err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user := store.byEmail["jane@example.com"]
	expired := time.Now().Add(-time.Minute)
	user.OTPExpiry = &expired

	if _, err := svc.VerifyOTP(context.Background(), "jane@example.com", *user.OTP); !errors.Is(err, ErrOTPExpired) {
		t.Errorf("Expected ErrOTPExpired, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, &fakeMailer{}, nil)

	if err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Unverified accounts cannot log in
	if _, err := svc.Login(context.Background(), "jane@example.com", "secret1"); !errors.Is(err, ErrEmailNotVerified) {
		t.Errorf("Expected ErrEmailNotVerified, got %v", err)
	}

	store.byEmail["jane@example.com"].IsVerified = true

	// Unknown email and wrong password must return the same error
	if _, err := svc.Login(context.Background(), "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "jane@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	user, err := svc.Login(context.Background(), "JANE@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("Unexpected user: %q", user.Email)
	}
}
