package store

import (
	"context"
	"testing"
	"time"

	"portfolio/api/models"
)

func TestVisitorStore_Insert_AssignsIDAndTimestamp(t *testing.T) {
	s := NewVisitorStore(newTestDB(t))
	ctx := context.Background()

	v := &models.Visitor{
		IPAddress:    "203.0.113.7",
		UserAgent:    "UA/1.0",
		PagesVisited: 1,
	}
	id, err := s.Insert(ctx, v)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive id, got %d", id)
	}
	if v.Timestamp.IsZero() {
		t.Error("expected server-assigned timestamp, got zero value")
	}
}

func TestVisitorStore_Insert_IDsMonotonic(t *testing.T) {
	s := NewVisitorStore(newTestDB(t))
	ctx := context.Background()

	var lastID int64
	for i := 0; i < 5; i++ {
		id, err := s.Insert(ctx, &models.Visitor{IPAddress: "10.0.0.1", UserAgent: "UA/1.0", PagesVisited: 1})
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if id <= lastID {
			t.Errorf("expected id > %d, got %d", lastID, id)
		}
		lastID = id
	}
}

func TestVisitorStore_Count(t *testing.T) {
	s := NewVisitorStore(newTestDB(t))
	ctx := context.Background()

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 visitors, got %d", count)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.Insert(ctx, &models.Visitor{IPAddress: "10.0.0.1", UserAgent: "UA/1.0", PagesVisited: 1}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	count, err = s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 visitors, got %d", count)
	}
}

func TestVisitorStore_CountSince(t *testing.T) {
	s := NewVisitorStore(newTestDB(t))
	ctx := context.Background()

	if _, err := s.Insert(ctx, &models.Visitor{IPAddress: "10.0.0.1", UserAgent: "UA/1.0", PagesVisited: 1}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	recent, err := s.CountSince(ctx, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountSince failed: %v", err)
	}
	if recent != 1 {
		t.Errorf("expected 1 recent visitor, got %d", recent)
	}

	future, err := s.CountSince(ctx, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("CountSince failed: %v", err)
	}
	if future != 0 {
		t.Errorf("expected 0 visitors since a future cutoff, got %d", future)
	}
}

func TestVisitorStore_ListRecent_NewestFirst(t *testing.T) {
	s := NewVisitorStore(newTestDB(t))
	ctx := context.Background()

	agents := []string{"UA/1.0", "UA/2.0", "UA/3.0"}
	for _, ua := range agents {
		if _, err := s.Insert(ctx, &models.Visitor{IPAddress: "10.0.0.1", UserAgent: ua, PagesVisited: 1}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	visitors, err := s.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(visitors) != 2 {
		t.Fatalf("expected 2 visitors, got %d", len(visitors))
	}
	if visitors[0].UserAgent != "UA/3.0" {
		t.Errorf("expected newest visitor first, got %q", visitors[0].UserAgent)
	}
	if visitors[1].UserAgent != "UA/2.0" {
		t.Errorf("expected second-newest visitor, got %q", visitors[1].UserAgent)
	}
}

func TestVisitorStore_NullableFieldsRoundTrip(t *testing.T) {
	s := NewVisitorStore(newTestDB(t))
	ctx := context.Background()

	if _, err := s.Insert(ctx, &models.Visitor{IPAddress: "10.0.0.1", UserAgent: "UA/1.0", PagesVisited: 1}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	visitors, err := s.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(visitors) != 1 {
		t.Fatalf("expected 1 visitor, got %d", len(visitors))
	}
	if visitors[0].Country != nil {
		t.Errorf("expected nil country, got %q", *visitors[0].Country)
	}
	if visitors[0].City != nil {
		t.Errorf("expected nil city, got %q", *visitors[0].City)
	}
	if visitors[0].Referrer != nil {
		t.Errorf("expected nil referrer, got %q", *visitors[0].Referrer)
	}
}

func TestVisitorStore_TopCountries(t *testing.T) {
	s := NewVisitorStore(newTestDB(t))
	ctx := context.Background()

	visits := []*string{
		strPtr("Nigeria"), strPtr("Nigeria"), strPtr("Nigeria"),
		strPtr("Germany"), strPtr("Germany"),
		strPtr("Japan"),
		nil, nil,
	}
	for _, country := range visits {
		if _, err := s.Insert(ctx, &models.Visitor{IPAddress: "10.0.0.1", UserAgent: "UA/1.0", Country: country, PagesVisited: 1}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	top, err := s.TopCountries(ctx, 10)
	if err != nil {
		t.Fatalf("TopCountries failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 countries (NULL excluded), got %d", len(top))
	}
	if top[0].Country != "Nigeria" || top[0].Count != 3 {
		t.Errorf("expected Nigeria with 3 visits first, got %+v", top[0])
	}
	if top[1].Country != "Germany" || top[1].Count != 2 {
		t.Errorf("expected Germany with 2 visits second, got %+v", top[1])
	}
	if top[2].Country != "Japan" || top[2].Count != 1 {
		t.Errorf("expected Japan with 1 visit third, got %+v", top[2])
	}
}

func TestVisitorStore_TopCountries_RespectsLimit(t *testing.T) {
	s := NewVisitorStore(newTestDB(t))
	ctx := context.Background()

	countries := []string{"A", "B", "C", "D", "E"}
	for _, c := range countries {
		if _, err := s.Insert(ctx, &models.Visitor{IPAddress: "10.0.0.1", UserAgent: "UA/1.0", Country: strPtr(c), PagesVisited: 1}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	top, err := s.TopCountries(ctx, 3)
	if err != nil {
		t.Fatalf("TopCountries failed: %v", err)
	}
	if len(top) != 3 {
		t.Errorf("expected limit of 3 entries, got %d", len(top))
	}
}
