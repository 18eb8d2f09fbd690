package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"resume-tailor/internal/domain"

	"github.com/google/uuid"
)

type fakeIdentity struct {
	calls   []string
	user    *domain.User
	err     error
	scope   string
	updated domain.UserUpdate
}

func (f *fakeIdentity) SignUp(context.Context, string, string) error {
	f.calls = append(f.calls, "signup")
	return f.err
}

func (f *fakeIdentity) Login(context.Context, string, string) (*domain.AuthTokens, error) {
	f.calls = append(f.calls, "login")
	return &domain.AuthTokens{AccessToken: "at", RefreshToken: "rt"}, f.err
}

func (f *fakeIdentity) Refresh(context.Context, string) (*domain.AuthTokens, error) {
	f.calls = append(f.calls, "refresh")
	return &domain.AuthTokens{AccessToken: "at2", RefreshToken: "rt2"}, f.err
}

func (f *fakeIdentity) SignOut(_ context.Context, _ string, scope string) error {
	f.calls = append(f.calls, "signout")
	f.scope = scope
	return nil
}

func (f *fakeIdentity) UpdateUser(_ context.Context, _ string, u domain.UserUpdate) (*domain.User, error) {
	f.calls = append(f.calls, "update")
	f.updated = u
	return f.user, f.err
}

func (f *fakeIdentity) DeleteUser(context.Context, string) error {
	f.calls = append(f.calls, "delete")
	return f.err
}

type fakeProfiles struct {
	profiles  map[uuid.UUID]*domain.Profile
	selection map[uuid.UUID]map[string]bool
	touched   int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: map[uuid.UUID]*domain.Profile{}, selection: map[uuid.UUID]map[string]bool{}}
}

func (f *fakeProfiles) Get(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return &domain.Profile{UserID: id}, nil
}

func (f *fakeProfiles) LinkGitHub(_ context.Context, id uuid.UUID, ghID, user, token string, at time.Time) error {
	f.profiles[id] = &domain.Profile{UserID: id, GitHubID: ghID, GitHubUsername: user, GitHubAccessToken: token, GitHubLastUpdate: &at}
	return nil
}

func (f *fakeProfiles) UnlinkGitHub(_ context.Context, id uuid.UUID) error {
	delete(f.profiles, id)
	return nil
}

func (f *fakeProfiles) TouchGitHub(_ context.Context, id uuid.UUID, at time.Time) error {
	f.touched++
	if p, ok := f.profiles[id]; ok {
		p.GitHubLastUpdate = &at
	}
	return nil
}

func (f *fakeProfiles) SetSelection(_ context.Context, id uuid.UUID, s map[string]bool) error {
	f.selection[id] = s
	return nil
}

func (f *fakeProfiles) GetSelection(_ context.Context, id uuid.UUID) (map[string]bool, error) {
	if s, ok := f.selection[id]; ok {
		return s, nil
	}
	return map[string]bool{}, nil
}

type fakeProjects struct {
	rows    []domain.Project
	nextID  int64
	matched []float32
}

func (f *fakeProjects) Upsert(_ context.Context, p *domain.Project) error {
	for i := range f.rows {
		if f.rows[i].UserID == p.UserID && f.rows[i].RepoID == p.RepoID {
			p.ID = f.rows[i].ID
			f.rows[i] = *p
			return nil
		}
	}
	f.nextID++
	p.ID = f.nextID
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakeProjects) List(_ context.Context, userID uuid.UUID) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) ByIDs(_ context.Context, userID uuid.UUID, ids []int64) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range f.rows {
		for _, id := range ids {
			if p.ID == id && p.UserID == userID {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakeProjects) Match(_ context.Context, userID uuid.UUID, q []float32, _ float64, _ int) ([]domain.ProjectMatch, error) {
	f.matched = q
	return []domain.ProjectMatch{{ID: 1, Name: "api", Score: 0.9}}, nil
}

type fakeResumes struct {
	rows map[uuid.UUID]domain.Resume
}

func newFakeResumes() *fakeResumes { return &fakeResumes{rows: map[uuid.UUID]domain.Resume{}} }

func (f *fakeResumes) owned(userID, id uuid.UUID) (domain.Resume, error) {
	r, ok := f.rows[id]
	if !ok || r.UserID != userID {
		return domain.Resume{}, &domain.NotFoundError{Resource: "resume", ID: id.String()}
	}
	return r, nil
}

func (f *fakeResumes) Create(_ context.Context, r *domain.Resume) error {
	f.rows[r.ID] = *r
	return nil
}

func (f *fakeResumes) Update(_ context.Context, r *domain.Resume) error {
	if _, err := f.owned(r.UserID, r.ID); err != nil {
		return err
	}
	f.rows[r.ID] = *r
	return nil
}

func (f *fakeResumes) Get(_ context.Context, userID, id uuid.UUID) (*domain.Resume, error) {
	r, err := f.owned(userID, id)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (f *fakeResumes) List(_ context.Context, userID uuid.UUID) ([]domain.Resume, error) {
	var out []domain.Resume
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResumes) Rename(_ context.Context, userID, id uuid.UUID, name string) error {
	r, err := f.owned(userID, id)
	if err != nil {
		return err
	}
	r.Filename = name
	f.rows[id] = r
	return nil
}

func (f *fakeResumes) Delete(_ context.Context, userID, id uuid.UUID) error {
	if _, err := f.owned(userID, id); err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

type fakeGitHub struct {
	repos   []domain.Repo
	details map[string]*domain.RepoDetails
	fetched []string
}

func (f *fakeGitHub) Exchange(_ context.Context, code string) (string, error) { return "tok-" + code, nil }

func (f *fakeGitHub) Account(context.Context, string) (int64, string, error) { return 42, "octo", nil }

func (f *fakeGitHub) ListRepos(context.Context, string) ([]domain.Repo, error) { return f.repos, nil }

func (f *fakeGitHub) Details(_ context.Context, _ string, owner, name string) (*domain.RepoDetails, error) {
	f.fetched = append(f.fetched, name)
	d, ok := f.details[name]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "repository", ID: owner + "/" + name}
	}
	return d, nil
}

type fakeEmbedder struct {
	batches [][]string
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.batches = append(f.batches, texts)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i]))}
	}
	return out, nil
}

type fakeThrottle struct {
	granted map[string]bool
	err     error
}

func (f *fakeThrottle) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.granted[key] {
		return false, nil
	}
	f.granted[key] = true
	return true, nil
}

type recordingWriter struct {
	args []string
	out  string
}

func (w *recordingWriter) Format(_ context.Context, a string, b []string) (string, error) {
	w.args = append([]string{a}, b...)
	return w.out, nil
}

type latexWriter struct {
	resume, bullets string
}

func (w *latexWriter) Format(_ context.Context, resume, bullets string) (string, error) {
	w.resume, w.bullets = resume, bullets
	return resume + "\n% " + bullets, nil
}

type fakeRenderer struct {
	pdf []byte
	err error
}

func (f *fakeRenderer) RenderLatexToPDF(context.Context, string) ([]byte, error) { return f.pdf, f.err }

type memArchive struct {
	keys []string
	err  error
}

func (m *memArchive) Save(_ context.Context, key string, _ []byte, _ string) error {
	m.keys = append(m.keys, key)
	return m.err
}

// onePagePDF is a minimal valid PDF document with a single blank page.
func onePagePDF() []byte {
	var buf bytes.Buffer
	var offsets []int
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	buf.WriteString("%PDF-1.4\n")
	for i, o := range objs {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}
