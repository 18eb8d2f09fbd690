package usecase

import (
	"context"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"resume-tailor/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces name to a safe base name. Accented letters are
// decomposed (NFKD) so their base letter survives, path parts are dropped,
// whitespace becomes underscores, anything outside [A-Za-z0-9_.-] is removed
// and leading dots or underscores are trimmed.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, "._")
	if name == "." || name == "/" {
		return ""
	}
	return name
}

type Resumes struct {
	repo ResumesRepo
	now  func() time.Time
}

func NewResumes(repo ResumesRepo) *Resumes {
	return &Resumes{repo: repo, now: time.Now}
}

// Upload stores a LaTeX source. With update set, the owned resume with that
// id is replaced instead of a new one being created.
func (r *Resumes) Upload(ctx context.Context, userID uuid.UUID, filename string, content []byte, update *uuid.UUID) (uuid.UUID, error) {
	name := SecureFilename(filename)
	if !strings.HasSuffix(name, ".tex") {
		return uuid.Nil, domain.Invalid("file", "only .tex files can be uploaded")
	}
	if !utf8.Valid(content) {
		return uuid.Nil, domain.Invalid("file", "must be UTF-8 text")
	}

	now := r.now().UTC()
	res := &domain.Resume{UserID: userID, Filename: name, Content: string(content), UpdatedAt: now}
	if update != nil {
		res.ID = *update
		return res.ID, r.repo.Update(ctx, res)
	}
	res.ID = uuid.New()
	res.CreatedAt = now
	return res.ID, r.repo.Create(ctx, res)
}

func (r *Resumes) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.repo.Delete(ctx, userID, id)
}

func (r *Resumes) List(ctx context.Context, userID uuid.UUID) ([]domain.Resume, error) {
	return r.repo.List(ctx, userID)
}

func (r *Resumes) Rename(ctx context.Context, userID, id uuid.UUID, name string) error {
	if !strings.HasSuffix(name, ".tex") {
		return domain.Invalid("name", "new name must end in '.tex'")
	}
	safe := SecureFilename(name)
	if !strings.HasSuffix(safe, ".tex") {
		return domain.Invalid("name", "%q is not a usable file name", name)
	}
	return r.repo.Rename(ctx, userID, id, safe)
}

func (r *Resumes) Download(ctx context.Context, userID, id uuid.UUID) (*domain.Resume, error) {
	return r.repo.Get(ctx, userID, id)
}
