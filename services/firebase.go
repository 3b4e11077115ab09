package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FirebaseService pushes analytics events to a Firebase Realtime Database
// over its REST surface ({base}/{path}.json) and reads aggregate counters
// back. When no database URL is configured every operation is a no-op, the
// same way the original deployment ran without Firebase credentials.
type FirebaseService struct {
	BaseURL string
	Secret  string
	client  *http.Client
}

func NewFirebaseService(databaseURL, secret string) *FirebaseService {
	if databaseURL == "" {
		log.Println("Firebase database URL not configured; analytics forwarding disabled.")
	} else {
		log.Printf("Firebase analytics forwarding enabled for %s", databaseURL)
	}

	return &FirebaseService{
		BaseURL: strings.TrimSuffix(databaseURL, "/"),
		Secret:  secret,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *FirebaseService) Enabled() bool {
	return s.BaseURL != ""
}

func (s *FirebaseService) refURL(path string) string {
	ref := s.BaseURL + "/" + path + ".json"
	if s.Secret != "" {
		ref += "?auth=" + url.QueryEscape(s.Secret)
	}
	return ref
}

func (s *FirebaseService) read(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.refURL(path), nil)
	if err != nil {
		return fmt.Errorf("failed to build Firebase request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("Firebase read failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected Firebase response: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Firebase response: %w", err)
	}

	// An absent node comes back as the literal null.
	if string(bytes.TrimSpace(body)) == "null" {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode Firebase response: %w", err)
	}
	return nil
}

func (s *FirebaseService) write(ctx context.Context, method, path string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode Firebase payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.refURL(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build Firebase request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("Firebase write failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected Firebase response: %s", resp.Status)
	}
	return nil
}

// TrackVisitor pushes one visitor event under /visitors and bumps the global
// visitor counter.
func (s *FirebaseService) TrackVisitor(ctx context.Context, event map[string]interface{}) error {
	if !s.Enabled() {
		return nil
	}

	if err := s.write(ctx, http.MethodPost, "visitors", event); err != nil {
		return err
	}

	var count int64
	if err := s.read(ctx, "analytics/visitor_count", &count); err != nil {
		return err
	}
	return s.write(ctx, http.MethodPut, "analytics/visitor_count", count+1)
}

// GetAnalytics returns the aggregate analytics subtree; an unreachable or
// unconfigured Firebase yields an empty object for the caller to merge.
func (s *FirebaseService) GetAnalytics(ctx context.Context) (map[string]interface{}, error) {
	analytics := map[string]interface{}{}
	if !s.Enabled() {
		return analytics, nil
	}

	if err := s.read(ctx, "analytics", &analytics); err != nil {
		return map[string]interface{}{}, err
	}
	return analytics, nil
}

// UpdatePageView increments the per-page view counter. Repeated calls keep
// incrementing; this is deliberately not idempotent.
func (s *FirebaseService) UpdatePageView(ctx context.Context, page string) error {
	if !s.Enabled() {
		return nil
	}

	path := "analytics/page_views/" + url.PathEscape(page)

	var count int64
	if err := s.read(ctx, path, &count); err != nil {
		return err
	}
	return s.write(ctx, http.MethodPut, path, count+1)
}
