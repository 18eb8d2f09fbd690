package usecase

import (
	"context"
	"time"

	"resume-tailor/internal/domain"

	"github.com/google/uuid"
)

type Identity interface {
	SignUp(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*domain.AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error)
	SignOut(ctx context.Context, token, scope string) error
	UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type ProfilesRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	LinkGitHub(ctx context.Context, userID uuid.UUID, githubID, username, accessToken string, at time.Time) error
	UnlinkGitHub(ctx context.Context, userID uuid.UUID) error
	TouchGitHub(ctx context.Context, userID uuid.UUID, at time.Time) error
	SetSelection(ctx context.Context, userID uuid.UUID, selection map[string]bool) error
	GetSelection(ctx context.Context, userID uuid.UUID) (map[string]bool, error)
}

type ProjectsRepo interface {
	Upsert(ctx context.Context, p *domain.Project) error
	List(ctx context.Context, userID uuid.UUID) ([]domain.Project, error)
	ByIDs(ctx context.Context, userID uuid.UUID, ids []int64) ([]domain.Project, error)
	Match(ctx context.Context, userID uuid.UUID, query []float32, minScore float64, count int) ([]domain.ProjectMatch, error)
}

type ResumesRepo interface {
	Create(ctx context.Context, r *domain.Resume) error
	Update(ctx context.Context, r *domain.Resume) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Resume, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Resume, error)
	Rename(ctx context.Context, userID, id uuid.UUID, filename string) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type GitHub interface {
	Exchange(ctx context.Context, code string) (string, error)
	Account(ctx context.Context, token string) (int64, string, error)
	ListRepos(ctx context.Context, token string) ([]domain.Repo, error)
	Details(ctx context.Context, token, owner, name string) (*domain.RepoDetails, error)
}

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type PointsWriter interface {
	Format(ctx context.Context, jobListing string, projectTexts []string) (string, error)
}

type LatexWriter interface {
	Format(ctx context.Context, resume, bullets string) (string, error)
}

type Renderer interface {
	RenderLatexToPDF(ctx context.Context, latex string) ([]byte, error)
}

// Archive keeps a copy of compiled PDFs. Optional.
type Archive interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
}

// Throttle grants key at most once per window. Optional.
type Throttle interface {
	Acquire(ctx context.Context, key string, window time.Duration) (bool, error)
}
