package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the GitHub link state of a user.
type Profile struct {
	UserID            uuid.UUID
	GitHubID          string
	GitHubUsername    string
	GitHubAccessToken string
	GitHubLastUpdate  *time.Time
	Selection         map[string]bool
}

// Linked reports whether a GitHub account is attached.
func (p *Profile) Linked() bool {
	return p != nil && p.GitHubAccessToken != ""
}

// Repo is a repository as listed from GitHub, before import.
type Repo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Owner       string    `json:"owner"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Stars       int       `json:"stars"`
	Languages   []string  `json:"languages"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsFork      bool      `json:"is_fork"`
	IsArchived  bool      `json:"is_archived"`
}

// Project is an imported repository with its retrieval text and embedding.
type Project struct {
	ID          int64          `json:"id"`
	UserID      uuid.UUID      `json:"-"`
	RepoID      int64          `json:"repo_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Languages   map[string]int `json:"languages"`
	Readme      string         `json:"-"`
	URL         string         `json:"url"`
	Text        string         `json:"-"`
	Embedding   []float32      `json:"-"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProjectMatch is one hit of a semantic search.
type ProjectMatch struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

// RepoDetails is what an import needs from a single repository.
type RepoDetails struct {
	Repo      Repo
	Languages map[string]int
	Readme    string
}

// RepoFilter narrows a repository listing. Zero values filter nothing,
// except that archived repositories are dropped unless IncludeArchived.
type RepoFilter struct {
	MinStars        int
	IncludeArchived bool
	// Include keeps repositories using at least one of these languages.
	Include []string
	// Exclude drops repositories by name.
	Exclude []string
	// Only keeps just these repository names.
	Only []string
}
