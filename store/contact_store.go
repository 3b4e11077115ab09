package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio/api/models"
)

type ContactStore struct {
	db *sql.DB
}

func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Insert persists a contact message and returns the store-assigned id.
func (s *ContactStore) Insert(ctx context.Context, m *models.ContactMessage) (int64, error) {
	query := `
		INSERT INTO contact_messages (name, email, subject, message, timestamp, is_read, ip_address)
		VALUES (?, ?, ?, ?, ?, 0, ?);
	`
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query, m.Name, m.Email, m.Subject, m.Message, now, m.IPAddress)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read contact message id: %w", err)
	}

	m.ID = id
	m.Timestamp = now
	m.IsRead = false
	return id, nil
}

// List returns messages newest-first, optionally restricted to unread ones.
func (s *ContactStore) List(ctx context.Context, limit int, unreadOnly bool) ([]models.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, name, email, subject, message, timestamp, is_read, ip_address
		FROM contact_messages
	`
	if unreadOnly {
		query += ` WHERE is_read = 0`
	}
	query += ` ORDER BY timestamp DESC, id DESC LIMIT ?;`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Email,
			&m.Subject,
			&m.Message,
			&m.Timestamp,
			&m.IsRead,
			&m.IPAddress,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing contact messages: %w", err)
	}

	return messages, nil
}

// MarkRead flips is_read to true. It returns ErrNotFound when no message has
// the given id; marking an already-read message succeeds again.
func (s *ContactStore) MarkRead(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contact_messages SET is_read = 1 WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("failed to mark message as read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check mark-read result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *ContactStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count contact messages: %w", err)
	}
	return count, nil
}

func (s *ContactStore) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE is_read = 0;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (s *ContactStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE timestamp >= ?;`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent messages: %w", err)
	}
	return count, nil
}
