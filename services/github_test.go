package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newGitHubTestService points a GitHubService at a fake upstream.
func newGitHubTestService(t *testing.T, handler http.Handler) *GitHubService {
	t.Helper()

	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	s := NewGitHubService("testuser", "")
	s.BaseURL = upstream.URL
	return s
}

func TestGitHubService_GetUserProfile(t *testing.T) {
	s := newGitHubTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/testuser" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github.v3+json" {
			t.Errorf("unexpected Accept header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"login": "testuser",
			"name": "Test User",
			"bio": null,
			"avatar_url": "https://avatars.example/u/1",
			"html_url": "https://github.com/testuser",
			"public_repos": 12,
			"followers": 3,
			"following": 4,
			"created_at": "2020-01-01T00:00:00Z",
			"updated_at": "2024-06-01T00:00:00Z"
		}`))
	}))

	profile, err := s.GetUserProfile(context.Background())
	if err != nil {
		t.Fatalf("GetUserProfile failed: %v", err)
	}
	if profile == nil {
		t.Fatal("expected profile, got nil")
	}
	if profile.Username != "testuser" {
		t.Errorf("expected username testuser, got %q", profile.Username)
	}
	if profile.Name == nil || *profile.Name != "Test User" {
		t.Errorf("expected name Test User, got %v", profile.Name)
	}
	if profile.Bio != nil {
		t.Errorf("expected nil bio, got %q", *profile.Bio)
	}
	if profile.PublicRepos != 12 || profile.Followers != 3 || profile.Following != 4 {
		t.Errorf("unexpected counts: %+v", profile)
	}
}

func TestGitHubService_GetUserProfile_NotFound(t *testing.T) {
	s := newGitHubTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))

	profile, err := s.GetUserProfile(context.Background())
	if err != nil {
		t.Fatalf("expected no error for missing user, got %v", err)
	}
	if profile != nil {
		t.Errorf("expected nil profile for missing user, got %+v", profile)
	}
}

func TestGitHubService_GetUserProfile_UpstreamError(t *testing.T) {
	s := newGitHubTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := s.GetUserProfile(context.Background())
	if err == nil {
		t.Fatal("expected error on upstream 500, got nil")
	}
}

func TestGitHubService_GetRepositories_ExcludesForks(t *testing.T) {
	s := newGitHubTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/testuser/repos" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("sort") != "updated" || query.Get("type") != "public" {
			t.Errorf("unexpected query %v", query)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "mine", "description": "my project", "html_url": "https://github.com/testuser/mine",
			 "language": "Go", "stargazers_count": 5, "forks_count": 1,
			 "updated_at": "2024-06-01T00:00:00Z", "topics": ["web"], "fork": false},
			{"name": "forked", "description": "someone else's", "html_url": "https://github.com/testuser/forked",
			 "language": "Python", "stargazers_count": 100, "forks_count": 50,
			 "updated_at": "2024-06-02T00:00:00Z", "topics": [], "fork": true},
			{"name": "bare", "description": null, "html_url": "https://github.com/testuser/bare",
			 "language": null, "stargazers_count": 0, "forks_count": 0,
			 "updated_at": "2024-05-01T00:00:00Z", "fork": false}
		]`))
	}))

	repos, err := s.GetRepositories(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetRepositories failed: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("expected 2 repos (fork excluded), got %d", len(repos))
	}
	for _, repo := range repos {
		if repo.Name == "forked" {
			t.Error("forked repository should have been excluded")
		}
	}

	bare := repos[1]
	if bare.Description != "" {
		t.Errorf("expected empty description for null upstream value, got %q", bare.Description)
	}
	if bare.Language != nil {
		t.Errorf("expected nil language, got %q", *bare.Language)
	}
	if bare.Topics == nil || len(bare.Topics) != 0 {
		t.Errorf("expected empty topics slice, got %v", bare.Topics)
	}
}

func TestGitHubService_GetContributionStats(t *testing.T) {
	s := newGitHubTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/testuser/events/public" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("expected per_page=100, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"type": "PushEvent"},
			{"type": "PushEvent"},
			{"type": "PullRequestEvent"},
			{"type": "IssuesEvent"},
			{"type": "WatchEvent"}
		]`))
	}))

	stats, err := s.GetContributionStats(context.Background())
	if err != nil {
		t.Fatalf("GetContributionStats failed: %v", err)
	}
	if stats.TotalEvents != 5 {
		t.Errorf("expected 5 total events, got %d", stats.TotalEvents)
	}
	if stats.PushEvents != 2 {
		t.Errorf("expected 2 push events, got %d", stats.PushEvents)
	}
	if stats.PREvents != 1 {
		t.Errorf("expected 1 pr event, got %d", stats.PREvents)
	}
	if stats.IssueEvents != 1 {
		t.Errorf("expected 1 issue event, got %d", stats.IssueEvents)
	}
}

func TestGitHubService_GetLanguages(t *testing.T) {
	s := newGitHubTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "50" {
			t.Errorf("expected per_page=50, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "a", "language": "Go", "fork": false},
			{"name": "b", "language": "Go", "fork": false},
			{"name": "c", "language": "Python", "fork": false},
			{"name": "d", "language": null, "fork": false}
		]`))
	}))

	languages, err := s.GetLanguages(context.Background())
	if err != nil {
		t.Fatalf("GetLanguages failed: %v", err)
	}
	if languages["Go"] != 2 {
		t.Errorf("expected Go counted twice, got %d", languages["Go"])
	}
	if languages["Python"] != 1 {
		t.Errorf("expected Python counted once, got %d", languages["Python"])
	}
	if len(languages) != 2 {
		t.Errorf("expected languageless repo excluded, got %v", languages)
	}
}

func TestGitHubService_TokenHeader(t *testing.T) {
	s := newGitHubTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "token secret123" {
			t.Errorf("expected token header, got %q", got)
		}
		w.Write([]byte(`{"login":"testuser"}`))
	}))
	s.Token = "secret123"

	if _, err := s.GetUserProfile(context.Background()); err != nil {
		t.Fatalf("GetUserProfile failed: %v", err)
	}
}
