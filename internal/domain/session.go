package domain

import "github.com/google/uuid"

// Session is the result of a successful token check.
type Session struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Email     string
	Token     string
}

// AuthTokens is what the identity provider hands out on login or refresh.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserUpdate is a partial update applied through the admin API. Nil fields
// are left unchanged.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}
