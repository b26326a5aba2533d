package repository

import (
	"context"
	"time"

	"lexai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository handles database operations for the activity log
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends an activity entry
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	query := `
		INSERT INTO activities (
			user_id, type, description, metadata, date
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id, created_at`

	date := activity.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	err := r.db.QueryRow(
		ctx, query,
		activity.UserID,
		activity.Type,
		activity.Description,
		activity.Metadata,
		date,
	).Scan(&activity.ID, &activity.CreatedAt)

	return err
}

// ListSince retrieves all activities for a user from the given time onward,
// oldest first.
func (r *ActivityRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*models.Activity, error) {
	query := `
		SELECT id, user_id, type, description, metadata, date, created_at
		FROM activities
		WHERE user_id = $1 AND date >= $2
		ORDER BY date`

	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		activity := &models.Activity{}
		err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.Type,
			&activity.Description,
			&activity.Metadata,
			&activity.Date,
			&activity.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

// ListRecent retrieves the newest n activities for a user
func (r *ActivityRepository) ListRecent(ctx context.Context, userID uuid.UUID, n int) ([]*models.Activity, error) {
	query := `
		SELECT id, user_id, type, description, metadata, date, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		activity := &models.Activity{}
		err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.Type,
			&activity.Description,
			&activity.Metadata,
			&activity.Date,
			&activity.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}
