package usecase

import (
	"context"
	"strings"

	"resume-tailor/internal/domain"
)

var signOutScopes = map[string]bool{"local": true, "global": true, "others": true}

type Accounts struct {
	identity Identity
}

func NewAccounts(identity Identity) *Accounts {
	return &Accounts{identity: identity}
}

func (a *Accounts) SignUp(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" {
		return domain.Invalid("email", "must not be empty")
	}
	if password == "" {
		return domain.Invalid("password", "must not be empty")
	}
	return a.identity.SignUp(ctx, strings.TrimSpace(email), password)
}

func (a *Accounts) Login(ctx context.Context, email, password string) (*domain.AuthTokens, error) {
	return a.identity.Login(ctx, strings.TrimSpace(email), password)
}

func (a *Accounts) Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	return a.identity.Refresh(ctx, refreshToken)
}

// Modify updates email and/or password of the session's user and returns the
// stored email when an email was given. Changing only the email signs the user
// out everywhere.
func (a *Accounts) Modify(ctx context.Context, s *domain.Session, email, password *string) (string, error) {
	if email == nil && password == nil {
		return "", &domain.ValidationError{Message: "nothing to modify, pass email and/or password"}
	}
	if email != nil && strings.TrimSpace(*email) == "" {
		return "", domain.Invalid("email", "must not be empty")
	}
	if password != nil && *password == "" {
		return "", domain.Invalid("password", "must not be empty")
	}

	user, err := a.identity.UpdateUser(ctx, s.UserID.String(), domain.UserUpdate{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	if email == nil {
		return "", nil
	}
	if password == nil {
		if err := a.identity.SignOut(ctx, s.Token, "global"); err != nil {
			return user.Email, err
		}
	}
	return user.Email, nil
}

// Logout revokes sessions. An empty scope signs out only the calling session.
func (a *Accounts) Logout(ctx context.Context, token, scope string) error {
	if scope == "" {
		scope = "local"
	}
	if !signOutScopes[scope] {
		return domain.Invalid("scope", "must be one of local, global, others")
	}
	return a.identity.SignOut(ctx, token, scope)
}

func (a *Accounts) Delete(ctx context.Context, s *domain.Session) error {
	return a.identity.DeleteUser(ctx, s.UserID.String())
}
