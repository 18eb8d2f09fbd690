package http

import (
	"resume-tailor/internal/adapter/http/dispatch"
	"resume-tailor/internal/domain"
	"resume-tailor/internal/usecase"

	"github.com/google/uuid"
)

// Handler holds the route handlers. Each one reads its declared inputs from
// the call and returns a result struct whose json tags are its outputs.
type Handler struct {
	accounts  *usecase.Accounts
	github    *usecase.GitHubProjects
	resumes   *usecase.Resumes
	tailor    *usecase.Tailor
	keywords  []string
	maxUpload int64
}

type Services struct {
	Accounts *usecase.Accounts
	GitHub   *usecase.GitHubProjects
	Resumes  *usecase.Resumes
	Tailor   *usecase.Tailor
	// Keywords defaults to usecase.DefaultKeywords.
	Keywords []string
	// MaxUpload bounds uploaded resume files in bytes, 0 means no bound.
	MaxUpload int64
}

func NewHandler(s Services) *Handler {
	kw := s.Keywords
	if len(kw) == 0 {
		kw = usecase.DefaultKeywords
	}
	return &Handler{
		accounts:  s.Accounts,
		github:    s.GitHub,
		resumes:   s.Resumes,
		tailor:    s.Tailor,
		keywords:  kw,
		maxUpload: s.MaxUpload,
	}
}

// uuidParam reads a required id input.
func uuidParam(call *dispatch.Call, name string) (uuid.UUID, error) {
	s, err := call.Params.RequireString(name)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.Invalid(name, "%q is not a valid id", s)
	}
	return id, nil
}
