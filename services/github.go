package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"portfolio/api/models"
)

const defaultGitHubAPIURL = "https://api.github.com"

// GitHubService talks to the GitHub REST API for the configured user. All
// calls share one bounded-timeout client and are never retried.
type GitHubService struct {
	BaseURL  string
	Username string
	Token    string
	client   *http.Client
}

func NewGitHubService(username, token string) *GitHubService {
	return &GitHubService{
		BaseURL:  defaultGitHubAPIURL,
		Username: username,
		Token:    token,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// upstream response shapes; only the fields the proxy projects are decoded.
type githubUser struct {
	Login       string  `json:"login"`
	Name        *string `json:"name"`
	Bio         *string `json:"bio"`
	AvatarURL   string  `json:"avatar_url"`
	HTMLURL     string  `json:"html_url"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type githubRepo struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Language        *string  `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	UpdatedAt       string   `json:"updated_at"`
	Topics          []string `json:"topics"`
	Fork            bool     `json:"fork"`
}

type githubEvent struct {
	Type string `json:"type"`
}

func (s *GitHubService) get(ctx context.Context, path string, query url.Values, out interface{}) (int, error) {
	fullURL := s.BaseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build GitHub request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "EL-Dev-Portfolio")
	if s.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", s.Token))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GitHub request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("unexpected GitHub response: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode GitHub response: %w", err)
	}

	return resp.StatusCode, nil
}

// GetUserProfile fetches the configured user's public profile. It returns
// (nil, nil) when the user does not exist upstream.
func (s *GitHubService) GetUserProfile(ctx context.Context) (*models.GitHubProfile, error) {
	var user githubUser
	status, err := s.get(ctx, "/users/"+s.Username, nil, &user)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}

	return &models.GitHubProfile{
		Username:    user.Login,
		Name:        user.Name,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
		HTMLURL:     user.HTMLURL,
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		Following:   user.Following,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}, nil
}

// GetRepositories fetches up to limit most-recently-updated public
// repositories, excluding forks even when the upstream feed includes them.
func (s *GitHubService) GetRepositories(ctx context.Context, limit int) ([]models.GitHubRepository, error) {
	if limit <= 0 {
		limit = 10
	}

	query := url.Values{}
	query.Set("sort", "updated")
	query.Set("direction", "desc")
	query.Set("per_page", fmt.Sprintf("%d", limit))
	query.Set("type", "public")

	var repos []githubRepo
	status, err := s.get(ctx, "/users/"+s.Username+"/repos", query, &repos)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return []models.GitHubRepository{}, nil
	}

	formatted := []models.GitHubRepository{}
	for _, repo := range repos {
		if repo.Fork {
			continue
		}

		description := ""
		if repo.Description != nil {
			description = *repo.Description
		}
		topics := repo.Topics
		if topics == nil {
			topics = []string{}
		}

		formatted = append(formatted, models.GitHubRepository{
			Name:        repo.Name,
			Description: description,
			HTMLURL:     repo.HTMLURL,
			Language:    repo.Language,
			Stars:       repo.StargazersCount,
			Forks:       repo.ForksCount,
			UpdatedAt:   repo.UpdatedAt,
			Topics:      topics,
		})
	}

	return formatted, nil
}

// GetContributionStats buckets the user's 100 most recent public events by
// event type.
func (s *GitHubService) GetContributionStats(ctx context.Context) (models.ContributionStats, error) {
	query := url.Values{}
	query.Set("per_page", "100")

	var events []githubEvent
	status, err := s.get(ctx, "/users/"+s.Username+"/events/public", query, &events)
	if err != nil {
		return models.ContributionStats{}, err
	}
	if status == http.StatusNotFound {
		return models.ContributionStats{}, nil
	}

	stats := models.ContributionStats{TotalEvents: len(events)}
	for _, event := range events {
		switch event.Type {
		case "PushEvent":
			stats.PushEvents++
		case "PullRequestEvent":
			stats.PREvents++
		case "IssuesEvent":
			stats.IssueEvents++
		}
	}

	return stats, nil
}

// GetLanguages scans up to 50 repositories and counts how many use each
// primary language; repositories without a detected language are skipped.
func (s *GitHubService) GetLanguages(ctx context.Context) (map[string]int, error) {
	repos, err := s.GetRepositories(ctx, 50)
	if err != nil {
		return nil, err
	}

	languages := map[string]int{}
	for _, repo := range repos {
		if repo.Language != nil && *repo.Language != "" {
			languages[*repo.Language]++
		}
	}

	return languages, nil
}
