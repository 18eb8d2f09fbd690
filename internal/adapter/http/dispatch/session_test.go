package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"resume-tailor/internal/domain"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

type fakeIdentity struct {
	user *domain.User
	err  error
}

func (f *fakeIdentity) GetUser(context.Context, string) (*domain.User, error) {
	return f.user, f.err
}

type fakeSessions struct {
	rows map[uuid.UUID]bool
	err  error
}

func (f *fakeSessions) SessionExists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.rows[id], f.err
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestSessionValidatorAcceptsLiveSession(t *testing.T) {
	userID, sessionID := uuid.New(), uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":        userID.String(),
		"session_id": sessionID.String(),
		"exp":        1, // long expired, claims are not checked here
	})
	v := NewSessionValidator(
		&fakeIdentity{user: &domain.User{ID: userID.String(), Email: "a@b.c"}},
		&fakeSessions{rows: map[uuid.UUID]bool{sessionID: true}},
		testSecret,
	)

	s, err := v.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.UserID != userID || s.SessionID != sessionID || s.Email != "a@b.c" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestSessionValidatorNoTokenIsAnonymous(t *testing.T) {
	v := NewSessionValidator(&fakeIdentity{err: errors.New("should not be called")}, &fakeSessions{}, testSecret)
	s, err := v.Validate(context.Background(), "")
	if err != nil || s != nil {
		t.Fatalf("expected anonymous, got %v %v", s, err)
	}
}

func TestSessionValidatorDeletedSessionIsStale(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{"sub": userID.String(), "session_id": uuid.NewString()})
	v := NewSessionValidator(
		&fakeIdentity{user: &domain.User{ID: userID.String()}},
		&fakeSessions{rows: map[uuid.UUID]bool{}},
		testSecret,
	)

	_, err := v.Validate(context.Background(), token)
	if ErrorKind(err) != "StaleTokenError" {
		t.Fatalf("expected StaleTokenError, got %v", err)
	}
}

func TestSessionValidatorRejectedByProvider(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"session_id": uuid.NewString()})
	v := NewSessionValidator(
		&fakeIdentity{err: &domain.IdentityError{Status: 401, Message: "invalid JWT"}},
		&fakeSessions{},
		testSecret,
	)

	_, err := v.Validate(context.Background(), token)
	if ErrorKind(err) != "StaleTokenError" {
		t.Fatalf("expected StaleTokenError, got %v", err)
	}
}

func TestSessionValidatorBadSignature(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, "another-secret-another-secret-another", jwt.MapClaims{"session_id": uuid.NewString()})
	v := NewSessionValidator(
		&fakeIdentity{user: &domain.User{ID: userID.String()}},
		&fakeSessions{},
		testSecret,
	)

	_, err := v.Validate(context.Background(), token)
	if ErrorKind(err) != "StaleTokenError" {
		t.Fatalf("expected StaleTokenError, got %v", err)
	}
}

func TestSessionValidatorStoreFailureIsNotStale(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{"session_id": uuid.NewString()})
	v := NewSessionValidator(
		&fakeIdentity{user: &domain.User{ID: userID.String()}},
		&fakeSessions{err: errors.New("connection refused")},
		testSecret,
	)

	_, err := v.Validate(context.Background(), token)
	if err == nil || ErrorKind(err) == "StaleTokenError" {
		t.Fatalf("expected a plain store error, got %v", err)
	}
}

func TestSessionValidatorProviderOutageIsNotStale(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"session_id": uuid.NewString()})
	v := NewSessionValidator(
		&fakeIdentity{err: &domain.IdentityError{Status: 503, Message: "upstream unavailable"}},
		&fakeSessions{},
		testSecret,
	)

	_, err := v.Validate(context.Background(), token)
	if err == nil || ErrorKind(err) == "StaleTokenError" {
		t.Fatalf("expected a non-stale provider error, got %v", err)
	}
	var idErr *domain.IdentityError
	if !errors.As(err, &idErr) || idErr.Status != 503 {
		t.Errorf("provider error should stay reachable, got %v", err)
	}
}
