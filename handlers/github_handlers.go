package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/api/services"
)

type GitHubHandlers struct {
	GitHub *services.GitHubService
}

func NewGitHubHandlers(gh *services.GitHubService) *GitHubHandlers {
	return &GitHubHandlers{GitHub: gh}
}

// GetProfile serves the configured user's public profile with a stable field
// set regardless of the upstream API's exact shape.
func (h *GitHubHandlers) GetProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	profile, err := h.GitHub.GetUserProfile(ctx)
	if err != nil {
		log.Printf("Error fetching GitHub profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get GitHub profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "GitHub profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetRepositories lists up to limit most-recently-updated public non-fork
// repositories.
func (h *GitHubHandlers) GetRepositories(c *gin.Context) {
	limit := 10
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	repos, err := h.GitHub.GetRepositories(ctx, limit)
	if err != nil {
		log.Printf("Error fetching GitHub repositories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get repositories"})
		return
	}

	c.JSON(http.StatusOK, repos)
}

// GetStats combines profile counts, the contribution summary and the language
// histogram into one response.
func (h *GitHubHandlers) GetStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	profile, err := h.GitHub.GetUserProfile(ctx)
	if err != nil {
		log.Printf("Error fetching GitHub profile for stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get GitHub stats"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "GitHub profile not found"})
		return
	}

	contributions, err := h.GitHub.GetContributionStats(ctx)
	if err != nil {
		log.Printf("Error fetching GitHub contributions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get GitHub stats"})
		return
	}

	languages, err := h.GitHub.GetLanguages(ctx)
	if err != nil {
		log.Printf("Error fetching GitHub languages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get GitHub stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile_stats": gin.H{
			"public_repos": profile.PublicRepos,
			"followers":    profile.Followers,
			"following":    profile.Following,
		},
		"contribution_stats": contributions,
		"top_languages":      languages,
		"last_updated":       profile.UpdatedAt,
	})
}

// GetLanguages serves the language histogram across up to 50 repositories.
func (h *GitHubHandlers) GetLanguages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	languages, err := h.GitHub.GetLanguages(ctx)
	if err != nil {
		log.Printf("Error fetching GitHub languages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get languages"})
		return
	}

	c.JSON(http.StatusOK, languages)
}

// GetContributions serves recent public event counts by type.
func (h *GitHubHandlers) GetContributions(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.GitHub.GetContributionStats(ctx)
	if err != nil {
		log.Printf("Error fetching GitHub contributions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get contributions"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
