package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resume-tailor/internal/domain"
	"resume-tailor/pkg/ai/formatters"

	"github.com/google/uuid"
)

// RefreshWindow is the minimum time between two refreshes of a user's
// imported projects.
const RefreshWindow = 10 * time.Second

type GitHubProjects struct {
	github   GitHub
	profiles ProfilesRepo
	projects ProjectsRepo
	embedder Embedder
	throttle Throttle
	log      *slog.Logger
	now      func() time.Time
}

// NewGitHubProjects wires the GitHub flows. throttle may be nil, the stored
// last-update time is used then.
func NewGitHubProjects(gh GitHub, profiles ProfilesRepo, projects ProjectsRepo, embedder Embedder, throttle Throttle, log *slog.Logger) *GitHubProjects {
	if log == nil {
		log = slog.Default()
	}
	return &GitHubProjects{
		github:   gh,
		profiles: profiles,
		projects: projects,
		embedder: embedder,
		throttle: throttle,
		log:      log,
		now:      time.Now,
	}
}

// Link attaches a GitHub account and returns its login.
func (g *GitHubProjects) Link(ctx context.Context, userID uuid.UUID, code string) (string, error) {
	token, err := g.github.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	id, login, err := g.github.Account(ctx, token)
	if err != nil {
		return "", err
	}
	if err := g.profiles.LinkGitHub(ctx, userID, fmt.Sprint(id), login, token, g.now().UTC()); err != nil {
		return "", err
	}
	return login, nil
}

func (g *GitHubProjects) Unlink(ctx context.Context, userID uuid.UUID) error {
	return g.profiles.UnlinkGitHub(ctx, userID)
}

// ListRepos lists the linked account's repositories with f applied.
func (g *GitHubProjects) ListRepos(ctx context.Context, userID uuid.UUID, f domain.RepoFilter) ([]domain.Repo, error) {
	p, err := g.linkedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	repos, err := g.github.ListRepos(ctx, p.GitHubAccessToken)
	if err != nil {
		return nil, err
	}
	return f.Apply(repos), nil
}

// Import fetches, embeds and stores the named repositories. Every name must
// be a repository owned by the linked account.
func (g *GitHubProjects) Import(ctx context.Context, userID uuid.UUID, names []string) ([]domain.Project, error) {
	if len(names) == 0 {
		return nil, domain.Invalid("repos", "must name at least one repository")
	}
	p, err := g.linkedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	repos, err := g.github.ListRepos(ctx, p.GitHubAccessToken)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]domain.Repo, len(repos))
	for _, r := range repos {
		owned[strings.ToLower(r.Name)] = r
	}

	var selected []domain.Repo
	seen := map[string]bool{}
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if seen[key] {
			continue
		}
		seen[key] = true
		r, ok := owned[key]
		if !ok {
			return nil, &domain.NotFoundError{Resource: "repository", ID: n}
		}
		selected = append(selected, r)
	}
	return g.store(ctx, userID, p.GitHubAccessToken, selected, false)
}

// View returns the imported projects.
func (g *GitHubProjects) View(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	return g.projects.List(ctx, userID)
}

// Refresh re-imports every already imported project. It returns false
// without doing anything when called again within RefreshWindow.
func (g *GitHubProjects) Refresh(ctx context.Context, userID uuid.UUID) (bool, error) {
	p, err := g.linkedProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	if ok, err := g.acquireRefresh(ctx, userID, p); err != nil || !ok {
		return false, err
	}

	imported, err := g.projects.List(ctx, userID)
	if err != nil {
		return false, err
	}
	repos := make([]domain.Repo, 0, len(imported))
	for _, proj := range imported {
		repos = append(repos, domain.Repo{ID: proj.RepoID, Name: proj.Name, Owner: p.GitHubUsername})
	}
	if _, err := g.store(ctx, userID, p.GitHubAccessToken, repos, true); err != nil {
		return false, err
	}
	return true, g.profiles.TouchGitHub(ctx, userID, g.now().UTC())
}

func (g *GitHubProjects) SetSelection(ctx context.Context, userID uuid.UUID, selection map[string]bool) error {
	if selection == nil {
		selection = map[string]bool{}
	}
	return g.profiles.SetSelection(ctx, userID, selection)
}

func (g *GitHubProjects) GetSelection(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	return g.profiles.GetSelection(ctx, userID)
}

func (g *GitHubProjects) acquireRefresh(ctx context.Context, userID uuid.UUID, p *domain.Profile) (bool, error) {
	if g.throttle != nil {
		ok, err := g.throttle.Acquire(ctx, "github-refresh:"+userID.String(), RefreshWindow)
		if err == nil {
			return ok, nil
		}
		g.log.Warn("refresh throttle unavailable, using last update time", "error", err)
	}
	if p.GitHubLastUpdate != nil && g.now().Sub(*p.GitHubLastUpdate) < RefreshWindow {
		return false, nil
	}
	return true, nil
}

// store fetches details of repos, embeds their texts in one batch and upserts
// them. With skipMissing, repositories deleted on GitHub are skipped.
func (g *GitHubProjects) store(ctx context.Context, userID uuid.UUID, token string, repos []domain.Repo, skipMissing bool) ([]domain.Project, error) {
	projects := make([]domain.Project, 0, len(repos))
	for _, r := range repos {
		d, err := g.github.Details(ctx, token, r.Owner, r.Name)
		var nf *domain.NotFoundError
		if skipMissing && errors.As(err, &nf) {
			g.log.Warn("skipping repository gone from GitHub", "repo", r.Owner+"/"+r.Name)
			continue
		}
		if err != nil {
			return nil, err
		}
		updated := d.Repo.UpdatedAt
		if updated.IsZero() {
			updated = g.now().UTC()
		}
		projects = append(projects, domain.Project{
			UserID:      userID,
			RepoID:      d.Repo.ID,
			Name:        d.Repo.Name,
			Description: d.Repo.Description,
			Languages:   d.Languages,
			Readme:      d.Readme,
			URL:         d.Repo.URL,
			Text:        formatters.ProjectText(d.Repo.Name, d.Repo.Description, d.Languages, d.Readme),
			UpdatedAt:   updated,
		})
	}
	if len(projects) == 0 {
		return projects, nil
	}

	texts := make([]string, len(projects))
	for i := range projects {
		texts[i] = projects[i].Text
	}
	vecs, err := g.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Embedding = vecs[i]
		if err := g.projects.Upsert(ctx, &projects[i]); err != nil {
			return nil, err
		}
	}
	g.log.Info("projects stored", "user", userID, "count", len(projects))
	return projects, nil
}

func (g *GitHubProjects) linkedProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, err := g.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !p.Linked() {
		return nil, &domain.GitHubAuthError{Message: "GitHub account not linked"}
	}
	return p, nil
}
