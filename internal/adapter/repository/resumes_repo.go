package repository

import (
	"context"
	"errors"

	"resume-tailor/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResumesRepo stores uploaded LaTeX sources. Every query is scoped to the
// owner, so a foreign id behaves exactly like a missing one.
type ResumesRepo struct {
	pool *pgxpool.Pool
}

func NewResumesRepo(pool *pgxpool.Pool) *ResumesRepo {
	return &ResumesRepo{pool: pool}
}

func (r *ResumesRepo) Create(ctx context.Context, res *domain.Resume) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO resumes (instance_id, user_id, filename, content, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		res.ID, res.UserID, res.Filename, res.Content, res.CreatedAt, res.UpdatedAt)
	return err
}

// Update replaces filename and content of an owned resume.
func (r *ResumesRepo) Update(ctx context.Context, res *domain.Resume) error {
	tag, err := r.pool.Exec(ctx, `UPDATE resumes SET filename = $3, content = $4, updated_at = $5
		WHERE instance_id = $1 AND user_id = $2`,
		res.ID, res.UserID, res.Filename, res.Content, res.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound(res.ID)
	}
	return nil
}

func (r *ResumesRepo) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Resume, error) {
	res := &domain.Resume{ID: id, UserID: userID}
	err := r.pool.QueryRow(ctx, `SELECT filename, content, created_at, updated_at FROM resumes
		WHERE instance_id = $1 AND user_id = $2`, id, userID).Scan(&res.Filename, &res.Content, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ResumesRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.Resume, error) {
	rows, err := r.pool.Query(ctx, `SELECT instance_id::text, filename, created_at, updated_at FROM resumes
		WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Resume{}
	for rows.Next() {
		res := domain.Resume{UserID: userID}
		var id string
		if err := rows.Scan(&id, &res.Filename, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		if res.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ResumesRepo) Rename(ctx context.Context, userID, id uuid.UUID, filename string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE resumes SET filename = $3, updated_at = now()
		WHERE instance_id = $1 AND user_id = $2`, id, userID, filename)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func (r *ResumesRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE instance_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func notFound(id uuid.UUID) error {
	return &domain.NotFoundError{Resource: "resume", ID: id.String()}
}
