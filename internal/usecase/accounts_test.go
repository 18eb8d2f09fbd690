package usecase

import (
	"context"
	"errors"
	"testing"

	"resume-tailor/internal/domain"

	"github.com/google/uuid"
)

func TestSignUpRejectsEmptyCredentials(t *testing.T) {
	id := &fakeIdentity{}
	a := NewAccounts(id)
	for _, tc := range [][2]string{{"", "pw"}, {"  ", "pw"}, {"a@b.c", ""}} {
		err := a.SignUp(context.Background(), tc[0], tc[1])
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("SignUp(%q, %q) = %v, want ValidationError", tc[0], tc[1], err)
		}
	}
	if len(id.calls) != 0 {
		t.Errorf("provider called: %v", id.calls)
	}
}

func TestModifyEmailOnlySignsOutEverywhere(t *testing.T) {
	id := &fakeIdentity{user: &domain.User{Email: "new@b.c"}}
	s := &domain.Session{UserID: uuid.New(), Email: "old@b.c", Token: "tok"}
	email := "new@b.c"

	got, err := NewAccounts(id).Modify(context.Background(), s, &email, nil)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if got != "new@b.c" || id.scope != "global" {
		t.Errorf("email=%q scope=%q", got, id.scope)
	}
}

func TestModifyPasswordKeepsSessions(t *testing.T) {
	id := &fakeIdentity{user: &domain.User{Email: "a@b.c"}}
	pw, email := "secret", "a@b.c"
	s := &domain.Session{UserID: uuid.New(), Token: "tok"}

	if _, err := NewAccounts(id).Modify(context.Background(), s, &email, &pw); err != nil {
		t.Fatalf("modify: %v", err)
	}
	for _, c := range id.calls {
		if c == "signout" {
			t.Fatal("password change must not trigger the global sign out")
		}
	}
	if id.updated.Password == nil || *id.updated.Password != "secret" {
		t.Errorf("password not forwarded: %+v", id.updated)
	}
}

func TestModifyPasswordOnlyReportsNoEmail(t *testing.T) {
	id := &fakeIdentity{user: &domain.User{Email: "a@b.c"}}
	pw := "secret"
	s := &domain.Session{UserID: uuid.New(), Token: "tok"}

	got, err := NewAccounts(id).Modify(context.Background(), s, nil, &pw)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if got != "" {
		t.Errorf("email = %q, want none", got)
	}
	if id.updated.Password == nil || id.updated.Email != nil {
		t.Errorf("update = %+v", id.updated)
	}
}

func TestModifyNeedsSomething(t *testing.T) {
	_, err := NewAccounts(&fakeIdentity{}).Modify(context.Background(), &domain.Session{}, nil, nil)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLogoutScopes(t *testing.T) {
	id := &fakeIdentity{}
	a := NewAccounts(id)
	if err := a.Logout(context.Background(), "tok", ""); err != nil || id.scope != "local" {
		t.Fatalf("default scope: err=%v scope=%q", err, id.scope)
	}
	if err := a.Logout(context.Background(), "tok", "others"); err != nil || id.scope != "others" {
		t.Fatalf("others: err=%v scope=%q", err, id.scope)
	}
	if err := a.Logout(context.Background(), "tok", "everyone"); err == nil {
		t.Fatal("unknown scope accepted")
	}
}
