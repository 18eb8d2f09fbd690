package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resume-tailor/internal/domain"
	"resume-tailor/pkg/infrastructure"

	"github.com/google/uuid"
)

const (
	// MinMatchScore and MatchCount bound the project search of Rag.
	MinMatchScore = 0.5
	MatchCount    = 10
)

// Tailor turns a job listing into resume material: matching projects,
// bullet points, a rewritten LaTeX resume and finally a PDF.
type Tailor struct {
	projects ProjectsRepo
	resumes  ResumesRepo
	embedder Embedder
	points   PointsWriter
	latex    LatexWriter
	renderer Renderer
	archive  Archive
	log      *slog.Logger
	now      func() time.Time
}

type TailorDeps struct {
	Projects ProjectsRepo
	Resumes  ResumesRepo
	Embedder Embedder
	Points   PointsWriter
	Latex    LatexWriter
	Renderer Renderer
	Archive  Archive
	Log      *slog.Logger
}

func NewTailor(d TailorDeps) *Tailor {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Tailor{
		projects: d.Projects,
		resumes:  d.Resumes,
		embedder: d.Embedder,
		points:   d.Points,
		latex:    d.Latex,
		renderer: d.Renderer,
		archive:  d.Archive,
		log:      log,
		now:      time.Now,
	}
}

// Rag returns the user's projects closest to jobListing.
func (t *Tailor) Rag(ctx context.Context, userID uuid.UUID, jobListing string) ([]domain.ProjectMatch, error) {
	if strings.TrimSpace(jobListing) == "" {
		return nil, domain.Invalid("job_listing", "must not be empty")
	}
	vecs, err := t.embedder.Embed(ctx, []string{jobListing})
	if err != nil {
		return nil, err
	}
	return t.projects.Match(ctx, userID, vecs[0], MinMatchScore, MatchCount)
}

// Points writes a bullet list from the chosen projects. Every id must name a
// project of the user.
func (t *Tailor) Points(ctx context.Context, userID uuid.UUID, ids []int64, jobListing string) (string, error) {
	if len(ids) == 0 {
		return "", domain.Invalid("ids", "must select at least one project")
	}
	found, err := t.projects.ByIDs(ctx, userID, ids)
	if err != nil {
		return "", err
	}
	have := make(map[int64]bool, len(found))
	for _, p := range found {
		have[p.ID] = true
	}
	for _, id := range ids {
		if !have[id] {
			return "", &domain.NotFoundError{Resource: "project", ID: fmt.Sprint(id)}
		}
	}

	texts := make([]string, 0, len(found))
	for _, p := range found {
		texts = append(texts, p.Text)
	}
	return t.points.Format(ctx, jobListing, texts)
}

// Latex rewrites the stored resume to include input and returns the new
// source with the resume's file name.
func (t *Tailor) Latex(ctx context.Context, userID, resumeID uuid.UUID, input string) (string, string, error) {
	if strings.TrimSpace(input) == "" {
		return "", "", domain.Invalid("input", "must not be empty")
	}
	res, err := t.resumes.Get(ctx, userID, resumeID)
	if err != nil {
		return "", "", err
	}
	out, err := t.latex.Format(ctx, res.Content, input)
	if err != nil {
		return "", "", err
	}
	return out, res.Filename, nil
}

type PDF struct {
	Filename string
	Data     []byte
	Pages    int
}

// PDF compiles content and archives the result when an archive is set.
func (t *Tailor) PDF(ctx context.Context, userID uuid.UUID, filename, content string) (*PDF, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.Invalid("content", "must not be empty")
	}
	data, err := t.renderer.RenderLatexToPDF(ctx, content)
	if err != nil {
		return nil, err
	}
	pages, err := infrastructure.PageCount(data)
	if err != nil {
		return nil, err
	}

	out := &PDF{Filename: PDFName(filename), Data: data, Pages: pages}
	if t.archive != nil {
		key := fmt.Sprintf("pdf/%s/%d-%s", userID, t.now().Unix(), out.Filename)
		if err := t.archive.Save(ctx, key, data, "application/pdf"); err != nil {
			t.log.Warn("failed to archive pdf", "key", key, "error", err)
		}
	}
	return out, nil
}

// PDFName derives the download name of a compiled resume.
func PDFName(filename string) string {
	name := strings.TrimSuffix(SecureFilename(filename), ".tex")
	name = strings.TrimSuffix(name, ".pdf")
	if name == "" {
		name = "resume"
	}
	return name + ".pdf"
}
