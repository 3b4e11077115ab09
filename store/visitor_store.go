package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio/api/models"
)

type VisitorStore struct {
	db *sql.DB
}

func NewVisitorStore(db *sql.DB) *VisitorStore {
	return &VisitorStore{db: db}
}

// Insert persists a visit and returns the store-assigned id. The timestamp is
// always set here, never taken from the client.
func (s *VisitorStore) Insert(ctx context.Context, v *models.Visitor) (int64, error) {
	query := `
		INSERT INTO visitors (ip_address, user_agent, country, city, timestamp, session_duration, pages_visited, referrer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query,
		v.IPAddress,
		v.UserAgent,
		v.Country,
		v.City,
		now,
		v.SessionDuration,
		v.PagesVisited,
		v.Referrer,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert visitor: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read visitor id: %w", err)
	}

	v.ID = id
	v.Timestamp = now
	return id, nil
}

func (s *VisitorStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visitors;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count visitors: %w", err)
	}
	return count, nil
}

func (s *VisitorStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?;`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent visitors: %w", err)
	}
	return count, nil
}

// ListRecent returns the newest visitors first.
func (s *VisitorStore) ListRecent(ctx context.Context, limit int) ([]models.Visitor, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, ip_address, user_agent, country, city, timestamp, session_duration, pages_visited, referrer
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?;
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitors: %w", err)
	}
	defer rows.Close()

	visitors := []models.Visitor{}
	for rows.Next() {
		var v models.Visitor
		if err := rows.Scan(
			&v.ID,
			&v.IPAddress,
			&v.UserAgent,
			&v.Country,
			&v.City,
			&v.Timestamp,
			&v.SessionDuration,
			&v.PagesVisited,
			&v.Referrer,
		); err != nil {
			return nil, fmt.Errorf("failed to scan visitor row: %w", err)
		}
		visitors = append(visitors, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing visitors: %w", err)
	}

	return visitors, nil
}

// TopCountries aggregates visit counts per country, NULL countries excluded,
// most visited first.
func (s *VisitorStore) TopCountries(ctx context.Context, limit int) ([]models.CountryCount, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT country, COUNT(country) AS visit_count
		FROM visitors
		WHERE country IS NOT NULL
		GROUP BY country
		ORDER BY visit_count DESC, country ASC
		LIMIT ?;
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top countries: %w", err)
	}
	defer rows.Close()

	results := []models.CountryCount{}
	for rows.Next() {
		var cc models.CountryCount
		if err := rows.Scan(&cc.Country, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan country row: %w", err)
		}
		results = append(results, cc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while aggregating countries: %w", err)
	}

	return results, nil
}
