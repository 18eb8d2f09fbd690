package http

import "resume-tailor/internal/adapter/http/dispatch"

type tokensResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Signup(call *dispatch.Call) (any, error) {
	email, err := call.Params.String("email")
	if err != nil {
		return nil, err
	}
	password, err := call.Params.String("password")
	if err != nil {
		return nil, err
	}
	return nil, h.accounts.SignUp(call.Context(), email, password)
}

func (h *Handler) Login(call *dispatch.Call) (any, error) {
	email, err := call.Params.String("email")
	if err != nil {
		return nil, err
	}
	password, err := call.Params.String("password")
	if err != nil {
		return nil, err
	}
	tok, err := h.accounts.Login(call.Context(), email, password)
	if err != nil {
		return nil, err
	}
	return &tokensResult{Token: tok.AccessToken, RefreshToken: tok.RefreshToken}, nil
}

func (h *Handler) Refresh(call *dispatch.Call) (any, error) {
	refresh, err := call.Params.RequireString("refresh_token")
	if err != nil {
		return nil, err
	}
	tok, err := h.accounts.Refresh(call.Context(), refresh)
	if err != nil {
		return nil, err
	}
	return &tokensResult{Token: tok.AccessToken, RefreshToken: tok.RefreshToken}, nil
}

func (h *Handler) Modify(call *dispatch.Call) (any, error) {
	email, err := call.Params.OptionalString("email")
	if err != nil {
		return nil, err
	}
	password, err := call.Params.OptionalString("password")
	if err != nil {
		return nil, err
	}
	stored, err := h.accounts.Modify(call.Context(), call.Session, email, password)
	if stored == "" {
		return nil, err
	}
	return &struct {
		Email string `json:"email"`
	}{stored}, err
}

func (h *Handler) Logout(call *dispatch.Call) (any, error) {
	scope, err := call.Params.String("scope")
	if err != nil {
		return nil, err
	}
	return nil, h.accounts.Logout(call.Context(), call.Session.Token, scope)
}

func (h *Handler) DeleteAccount(call *dispatch.Call) (any, error) {
	return nil, h.accounts.Delete(call.Context(), call.Session)
}
