package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

var migrations = []Migration{
	{Name: "enable_vector_extension", Up: execStatement(`CREATE EXTENSION IF NOT EXISTS vector`)},
	{Name: "create_profiles", Up: execStatement(`
		CREATE TABLE IF NOT EXISTS profiles (
			id uuid PRIMARY KEY,
			github_id text,
			github_username text,
			github_access_token text,
			github_last_update timestamptz,
			github_selection jsonb NOT NULL DEFAULT '{}'::jsonb
		)`)},
	{Name: "create_github_projects", Up: execStatement(`
		CREATE TABLE IF NOT EXISTS github_projects (
			id bigserial PRIMARY KEY,
			user_id uuid NOT NULL,
			repo_id bigint NOT NULL,
			name text NOT NULL,
			description text,
			languages jsonb NOT NULL DEFAULT '{}'::jsonb,
			readme text,
			html_url text,
			text text,
			embedding vector(768),
			updated_at timestamptz NOT NULL DEFAULT now(),
			UNIQUE (user_id, repo_id)
		)`)},
	{Name: "create_resumes", Up: execStatement(`
		CREATE TABLE IF NOT EXISTS resumes (
			instance_id uuid PRIMARY KEY,
			user_id uuid NOT NULL,
			filename text NOT NULL,
			content text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)},
	{Name: "index_resumes_user", Up: execStatement(`CREATE INDEX IF NOT EXISTS resumes_user_id_idx ON resumes (user_id)`)},
}

func execStatement(sql string) func(ctx context.Context, pool *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, sql)
		return err
	}
}
