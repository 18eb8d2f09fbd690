package http

import (
	"resume-tailor/internal/adapter/http/dispatch"
	"resume-tailor/internal/domain"
)

func (h *Handler) GitHubLink(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	code, err := call.Params.RequireString("code")
	if err != nil {
		return nil, err
	}
	login, err := h.github.Link(call.Context(), userID, code)
	if err != nil {
		return nil, err
	}
	return &struct {
		GitHubUsername string `json:"github_username"`
	}{login}, nil
}

func (h *Handler) GitHubUnlink(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	return nil, h.github.Unlink(call.Context(), userID)
}

type reposResult[T any] struct {
	Repos []T `json:"repos"`
}

func (h *Handler) GitHubListProjects(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	var f domain.RepoFilter
	for name, dst := range map[string]any{
		"min_stars":   &f.MinStars,
		"is_archived": &f.IncludeArchived,
		"include":     &f.Include,
		"exclude":     &f.Exclude,
		"only":        &f.Only,
	} {
		if _, err := call.Params.Decode(name, dst); err != nil {
			return nil, err
		}
	}
	repos, err := h.github.ListRepos(call.Context(), userID, f)
	if err != nil {
		return nil, err
	}
	return &reposResult[domain.Repo]{Repos: repos}, nil
}

func (h *Handler) GitHubImport(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	var names []string
	if _, err := call.Params.Decode("repos", &names); err != nil {
		return nil, err
	}
	imported, err := h.github.Import(call.Context(), userID, names)
	if err != nil {
		return nil, err
	}
	return &struct {
		Imported []domain.Project `json:"imported"`
	}{imported}, nil
}

func (h *Handler) GitHubView(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	projects, err := h.github.View(call.Context(), userID)
	if err != nil {
		return nil, err
	}
	return &reposResult[domain.Project]{Repos: projects}, nil
}

func (h *Handler) GitHubUpdate(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	refreshed, err := h.github.Refresh(call.Context(), userID)
	if err != nil {
		return nil, err
	}
	return &struct {
		Refreshed bool `json:"refreshed"`
	}{refreshed}, nil
}

type selectionResult struct {
	Data map[string]bool `json:"data"`
}

func (h *Handler) GitHubSelectionSet(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	var data map[string]bool
	if _, err := call.Params.Decode("data", &data); err != nil {
		return nil, err
	}
	return nil, h.github.SetSelection(call.Context(), userID, data)
}

func (h *Handler) GitHubSelectionGet(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	data, err := h.github.GetSelection(call.Context(), userID)
	if err != nil {
		return nil, err
	}
	return &selectionResult{Data: data}, nil
}
