package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"resume-tailor/internal/domain"
)

// Client wraps the GitHub REST API for a user's own access token.
type Client struct {
	oauth   *oauth2.Config
	baseURL *url.URL
	http    *http.Client
}

// New returns a client. When clientID is empty no OAuth app is configured and
// link codes are taken to be personal access tokens.
func New(clientID, clientSecret string) *Client {
	c := &Client{http: &http.Client{Timeout: 20 * time.Second}}
	if clientID != "" {
		c.oauth = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     githuboauth.Endpoint,
			Scopes:       []string{"repo", "read:user"},
		}
	}
	return c
}

// Exchange turns a link code into an access token.
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", &domain.GitHubAuthError{Message: "no GitHub code supplied"}
	}
	if c.oauth == nil {
		return code, nil
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", &domain.GitHubAuthError{Message: "failed to get GitHub access token: " + err.Error()}
	}
	if tok.AccessToken == "" {
		return "", &domain.GitHubAuthError{Message: "no access token in GitHub response"}
	}
	return tok.AccessToken, nil
}

// Account returns the numeric id and login of the token owner.
func (c *Client) Account(ctx context.Context, token string) (int64, string, error) {
	u, _, err := c.api(token).Users.Get(ctx, "")
	if err != nil {
		return 0, "", translate("failed to get GitHub user info", err)
	}
	return u.GetID(), u.GetLogin(), nil
}

// ListRepos returns every repository owned by the token owner, most recently
// updated first.
func (c *Client) ListRepos(ctx context.Context, token string) ([]domain.Repo, error) {
	api := c.api(token)
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Affiliation: "owner",
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var out []domain.Repo
	for {
		page, resp, err := api.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, translate("failed to fetch GitHub repositories", err)
		}
		for _, r := range page {
			out = append(out, toRepo(r))
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// Details fetches languages and README of owner/name. A repository without a
// README yields an empty one.
func (c *Client) Details(ctx context.Context, token, owner, name string) (*domain.RepoDetails, error) {
	api := c.api(token)
	repo, _, err := api.Repositories.Get(ctx, owner, name)
	if isStatus(err, http.StatusNotFound) {
		return nil, &domain.NotFoundError{Resource: "repository", ID: owner + "/" + name}
	}
	if err != nil {
		return nil, translate("failed to fetch repository "+owner+"/"+name, err)
	}
	langs, _, err := api.Repositories.ListLanguages(ctx, owner, name)
	if err != nil {
		return nil, translate("failed to fetch languages of "+owner+"/"+name, err)
	}

	var readme string
	content, _, err := api.Repositories.GetReadme(ctx, owner, name, nil)
	switch {
	case err == nil:
		if readme, err = content.GetContent(); err != nil {
			readme = ""
		}
	case isStatus(err, http.StatusNotFound):
	default:
		return nil, translate("failed to fetch README of "+owner+"/"+name, err)
	}

	return &domain.RepoDetails{Repo: toRepo(repo), Languages: langs, Readme: readme}, nil
}

func (c *Client) api(token string) *gh.Client {
	api := gh.NewClient(c.http).WithAuthToken(token)
	if c.baseURL != nil {
		api.BaseURL = c.baseURL
	}
	return api
}

func toRepo(r *gh.Repository) domain.Repo {
	repo := domain.Repo{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Owner:       r.GetOwner().GetLogin(),
		URL:         r.GetHTMLURL(),
		Description: r.GetDescription(),
		Stars:       r.GetStargazersCount(),
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
		IsFork:      r.GetFork(),
		IsArchived:  r.GetArchived(),
		Languages:   []string{},
	}
	if l := r.GetLanguage(); l != "" {
		repo.Languages = append(repo.Languages, l)
	}
	return repo
}

// translate maps go-github errors onto the domain: a rejected token becomes
// GitHubAuthError, anything else GitHubAPIError.
func translate(msg string, err error) error {
	if isStatus(err, http.StatusUnauthorized) {
		return &domain.GitHubAuthError{Message: "GitHub token is invalid or expired"}
	}
	return &domain.GitHubAPIError{Message: msg, Err: err}
}

func isStatus(err error, status int) bool {
	var er *gh.ErrorResponse
	return errors.As(err, &er) && er.Response != nil && er.Response.StatusCode == status
}

// String is used in logs.
func (c *Client) String() string {
	if c.oauth == nil {
		return "github(pat)"
	}
	return fmt.Sprintf("github(oauth app %s)", c.oauth.ClientID)
}
