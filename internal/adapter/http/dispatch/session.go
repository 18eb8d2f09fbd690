package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"resume-tailor/internal/domain"
)

// IdentityProvider confirms that the provider still accepts a token.
type IdentityProvider interface {
	GetUser(ctx context.Context, token string) (*domain.User, error)
}

// SessionStore answers whether a session row still exists.
type SessionStore interface {
	SessionExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Validator turns a bearer token into a session. A nil session with a nil
// error means the request is anonymous.
type Validator interface {
	Validate(ctx context.Context, token string) (*domain.Session, error)
}

// SessionValidator checks a token with the identity provider, then decodes
// the session id from it and looks the id up in the session store.
type SessionValidator struct {
	identity IdentityProvider
	store    SessionStore
	secret   []byte
}

func NewSessionValidator(identity IdentityProvider, store SessionStore, jwtSecret string) *SessionValidator {
	return &SessionValidator{identity: identity, store: store, secret: []byte(jwtSecret)}
}

func (v *SessionValidator) Validate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}

	user, err := v.identity.GetUser(ctx, token)
	if err != nil {
		var idErr *domain.IdentityError
		if errors.As(err, &idErr) && idErr.Status >= 400 && idErr.Status < 500 {
			return nil, &domain.StaleTokenError{Reason: idErr.Message}
		}
		return nil, fmt.Errorf("identity provider: %w", err)
	}

	claims, err := v.decode(token)
	if err != nil {
		return nil, &domain.StaleTokenError{Reason: err.Error()}
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, &domain.StaleTokenError{Reason: "token carries no session id"}
	}

	ok, err := v.store.SessionExists(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if !ok {
		return nil, &domain.StaleTokenError{Reason: "session has been revoked"}
	}

	userID, err := uuid.Parse(user.ID)
	if err != nil {
		userID, err = uuid.Parse(claims.Subject)
		if err != nil {
			return nil, &domain.StaleTokenError{Reason: "token carries no user id"}
		}
	}

	return &domain.Session{UserID: userID, SessionID: sessionID, Email: user.Email, Token: token}, nil
}

type sessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// decode verifies the signature only. Expiry and the other registered claims
// were already judged by the identity provider.
func (v *SessionValidator) decode(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	return claims, nil
}
