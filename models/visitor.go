package models

import "time"

// Visitor is a single tracked visit as stored in SQLite.
type Visitor struct {
	ID              int64     `json:"id"`
	IPAddress       string    `json:"ip_address"`
	UserAgent       string    `json:"user_agent"`
	Country         *string   `json:"country"`
	City            *string   `json:"city"`
	Timestamp       time.Time `json:"timestamp"`
	SessionDuration float64   `json:"session_duration"`
	PagesVisited    int       `json:"pages_visited"`
	Referrer        *string   `json:"referrer"`
}

// TrackVisitorRequest is the body of POST /api/analytics/track-visitor.
// The IP address and timestamp are always derived server-side.
type TrackVisitorRequest struct {
	UserAgent string  `json:"user_agent" binding:"required"`
	Country   *string `json:"country"`
	City      *string `json:"city"`
	Referrer  *string `json:"referrer"`
}

// CountryCount is one row of the top-countries aggregation.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}
