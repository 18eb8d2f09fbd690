package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"resume-tailor/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ProjectsRepo struct {
	pool *pgxpool.Pool
}

func NewProjectsRepo(pool *pgxpool.Pool) *ProjectsRepo {
	return &ProjectsRepo{pool: pool}
}

// Upsert stores p keyed by (user_id, repo_id) and fills in its row id.
func (r *ProjectsRepo) Upsert(ctx context.Context, p *domain.Project) error {
	langs, err := json.Marshal(p.Languages)
	if err != nil {
		return err
	}
	var emb *string
	if len(p.Embedding) > 0 {
		s := vectorLiteral(p.Embedding)
		emb = &s
	}
	return r.pool.QueryRow(ctx, `INSERT INTO github_projects
			(user_id, repo_id, name, description, languages, readme, html_url, text, embedding, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9::text::vector,$10)
		ON CONFLICT (user_id, repo_id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,
			languages = EXCLUDED.languages, readme = EXCLUDED.readme, html_url = EXCLUDED.html_url,
			text = EXCLUDED.text, embedding = EXCLUDED.embedding, updated_at = EXCLUDED.updated_at
		RETURNING id`,
		p.UserID, p.RepoID, p.Name, p.Description, langs, p.Readme, p.URL, p.Text, emb, p.UpdatedAt).Scan(&p.ID)
}

// List returns the imported projects of userID, most recently updated first.
func (r *ProjectsRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, repo_id, name, description, languages, html_url, text, updated_at
		FROM github_projects WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows, userID)
}

// ByIDs returns the projects among ids that belong to userID.
func (r *ProjectsRepo) ByIDs(ctx context.Context, userID uuid.UUID, ids []int64) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, repo_id, name, description, languages, html_url, text, updated_at
		FROM github_projects WHERE user_id = $1 AND id = ANY($2) ORDER BY id`, userID, ids)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows, userID)
}

// Match runs a cosine similarity search over the user's project embeddings.
func (r *ProjectsRepo) Match(ctx context.Context, userID uuid.UUID, query []float32, minScore float64, count int) ([]domain.ProjectMatch, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, html_url, 1 - (embedding <=> $2::text::vector) AS score
		FROM github_projects
		WHERE user_id = $1 AND embedding IS NOT NULL AND 1 - (embedding <=> $2::text::vector) >= $3
		ORDER BY embedding <=> $2::text::vector
		LIMIT $4`, userID, vectorLiteral(query), minScore, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ProjectMatch{}
	for rows.Next() {
		var m domain.ProjectMatch
		var url *string
		if err := rows.Scan(&m.ID, &m.Name, &url, &m.Score); err != nil {
			return nil, err
		}
		m.URL = deref(url)
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanProjects(rows pgx.Rows, userID uuid.UUID) ([]domain.Project, error) {
	defer rows.Close()
	out := []domain.Project{}
	for rows.Next() {
		p := domain.Project{UserID: userID}
		var (
			desc, url, text *string
			langs           []byte
		)
		if err := rows.Scan(&p.ID, &p.RepoID, &p.Name, &desc, &langs, &url, &text, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Description, p.URL, p.Text = deref(desc), deref(url), deref(text)
		if len(langs) > 0 {
			if err := json.Unmarshal(langs, &p.Languages); err != nil {
				return nil, err
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// vectorLiteral renders v in pgvector's text input format.
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
