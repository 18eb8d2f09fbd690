package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"resume-tailor/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ProfilesRepo struct {
	pool *pgxpool.Pool
}

func NewProfilesRepo(pool *pgxpool.Pool) *ProfilesRepo {
	return &ProfilesRepo{pool: pool}
}

// Get returns the profile of userID. A user without a row gets an empty,
// unlinked profile.
func (r *ProfilesRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p := &domain.Profile{UserID: userID}
	var (
		ghID, ghUser, ghToken *string
		selection             []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT github_id, github_username, github_access_token, github_last_update, github_selection
		FROM profiles WHERE id = $1`, userID).Scan(&ghID, &ghUser, &ghToken, &p.GitHubLastUpdate, &selection)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	p.GitHubID, p.GitHubUsername, p.GitHubAccessToken = deref(ghID), deref(ghUser), deref(ghToken)
	if len(selection) > 0 {
		if err := json.Unmarshal(selection, &p.Selection); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *ProfilesRepo) LinkGitHub(ctx context.Context, userID uuid.UUID, githubID, username, accessToken string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO profiles (id, github_id, github_username, github_access_token, github_last_update)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET github_id = EXCLUDED.github_id, github_username = EXCLUDED.github_username,
			github_access_token = EXCLUDED.github_access_token, github_last_update = EXCLUDED.github_last_update`,
		userID, githubID, username, accessToken, at)
	return err
}

// UnlinkGitHub clears the GitHub columns and drops every imported project of
// the user in one transaction.
func (r *ProfilesRepo) UnlinkGitHub(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE profiles SET github_id = NULL, github_username = NULL,
		github_access_token = NULL, github_last_update = NULL WHERE id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM github_projects WHERE user_id = $1`, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ProfilesRepo) TouchGitHub(ctx context.Context, userID uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE profiles SET github_last_update = $2 WHERE id = $1`, userID, at)
	return err
}

func (r *ProfilesRepo) SetSelection(ctx context.Context, userID uuid.UUID, selection map[string]bool) error {
	b, err := json.Marshal(selection)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO profiles (id, github_selection) VALUES ($1,$2)
		ON CONFLICT (id) DO UPDATE SET github_selection = EXCLUDED.github_selection`, userID, b)
	return err
}

// GetSelection returns the stored selection, or an empty map.
func (r *ProfilesRepo) GetSelection(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	out := map[string]bool{}
	v, err := queryJSON(ctx, r.pool, `SELECT coalesce((SELECT github_selection FROM profiles WHERE id = $1), '{}'::jsonb)`, userID)
	if err != nil {
		return nil, err
	}
	if m, ok := v.(map[string]interface{}); ok {
		for k, raw := range m {
			if b, ok := raw.(bool); ok {
				out[k] = b
			}
		}
	}
	return out, nil
}

// queryJSON runs a SQL that returns a single json value and unmarshals it.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, sql string, args ...interface{}) (interface{}, error) {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
