package repository

import (
	"context"
	"errors"

	"lexai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatRepository handles database operations for chats and their messages
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create creates a new chat thread
func (r *ChatRepository) Create(ctx context.Context, chat *models.Chat) error {
	query := `
		INSERT INTO chats (
			user_id, title, category, last_message_at
		) VALUES (
			$1, $2, $3, NOW()
		) RETURNING id, last_message_at, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		chat.UserID,
		chat.Title,
		chat.Category,
	).Scan(&chat.ID, &chat.LastMessageAt, &chat.CreatedAt, &chat.UpdatedAt)

	return err
}

// GetByID retrieves a chat owned by the given user
func (r *ChatRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Chat, error) {
	chat := &models.Chat{}
	query := `
		SELECT id, user_id, title, category, last_message_at, created_at, updated_at
		FROM chats
		WHERE id = $1 AND user_id = $2`

	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Title,
		&chat.Category,
		&chat.LastMessageAt,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return chat, nil
}

// ListByUserID retrieves chat summaries for a user ordered by recency
func (r *ChatRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.ChatSummary, error) {
	query := `
		SELECT c.id, c.title, c.category, c.last_message_at,
			COUNT(m.id),
			COALESCE((
				SELECT content FROM chat_messages
				WHERE chat_id = c.id
				ORDER BY id DESC LIMIT 1
			), '')
		FROM chats c
		LEFT JOIN chat_messages m ON m.chat_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.last_message_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []*models.ChatSummary
	for rows.Next() {
		summary := &models.ChatSummary{}
		err := rows.Scan(
			&summary.ID,
			&summary.Title,
			&summary.Category,
			&summary.LastMessageAt,
			&summary.MessageCount,
			&summary.LastMessage,
		)
		if err != nil {
			return nil, err
		}
		chats = append(chats, summary)
	}

	return chats, rows.Err()
}

// AddMessage appends a message to a chat and bumps last_message_at
func (r *ChatRepository) AddMessage(ctx context.Context, msg *models.ChatMessage) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO chat_messages (chat_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err = tx.QueryRow(ctx, query, msg.ChatID, msg.Role, msg.Content).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE chats SET last_message_at = NOW(), updated_at = NOW() WHERE id = $1`,
		msg.ChatID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListMessages retrieves all messages of a chat in insertion order
func (r *ChatRepository) ListMessages(ctx context.Context, chatID uuid.UUID) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, chat_id, role, content, created_at
		FROM chat_messages
		WHERE chat_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		msg := &models.ChatMessage{}
		err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &msg.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// LastMessages retrieves the most recent n messages of a chat in
// chronological order, for building the model context window.
func (r *ChatRepository) LastMessages(ctx context.Context, chatID uuid.UUID, n int) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, chat_id, role, content, created_at FROM (
			SELECT id, chat_id, role, content, created_at
			FROM chat_messages
			WHERE chat_id = $1
			ORDER BY id DESC
			LIMIT $2
		) recent
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, chatID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		msg := &models.ChatMessage{}
		err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &msg.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// CountByUser returns the number of chat threads a user has
func (r *ChatRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM chats WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

// Delete removes a chat and its messages
func (r *ChatRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM chats WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
