package repository

import (
	"context"
	"errors"

	"lexai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("record not found")

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			name, email, password_hash, is_verified, otp, otp_expiry
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsVerified,
		user.OTP,
		user.OTPExpiry,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	return err
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, is_verified, otp, otp_expiry,
			created_at, updated_at
		FROM users
		WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.OTP,
		&user.OTPExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, is_verified, otp, otp_expiry,
			created_at, updated_at
		FROM users
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.OTP,
		&user.OTPExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUnverified refreshes the name, password and OTP of a user who
// registered but never verified, so re-registration restarts the flow.
func (r *UserRepository) UpdateUnverified(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			name = $2,
			password_hash = $3,
			otp = $4,
			otp_expiry = $5,
			updated_at = NOW()
		WHERE id = $1 AND is_verified = FALSE
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		user.ID,
		user.Name,
		user.PasswordHash,
		user.OTP,
		user.OTPExpiry,
	).Scan(&user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// MarkVerified flags the user as verified and clears the stored OTP
func (r *UserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users SET
			is_verified = TRUE,
			otp = NULL,
			otp_expiry = NULL,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	return err
}
