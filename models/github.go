package models

// GitHubProfile is the stable profile contract served by the proxy,
// independent of the exact upstream field set.
type GitHubProfile struct {
	Username    string  `json:"username"`
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

// GitHubRepository is one projected repository entry.
type GitHubRepository struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Language    *string  `json:"language"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	UpdatedAt   string   `json:"updated_at"`
	Topics      []string `json:"topics"`
}

// ContributionStats buckets recent public events by type.
type ContributionStats struct {
	TotalEvents int `json:"total_events"`
	PushEvents  int `json:"push_events"`
	PREvents    int `json:"pr_events"`
	IssueEvents int `json:"issue_events"`
}
