package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-tailor/internal/domain"
)

const userID = "8a3c3c1e-6a5c-4b8e-9a3f-2f1d7c0b5e11"

func TestLoginSendsCredentialsWithAnonKey(t *testing.T) {
	var gotKey, gotGrant, gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("apikey")
		gotGrant = r.URL.Query().Get("grant_type")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600,"user":{"id":"` + userID + `","email":"a@b.c"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon", "service")
	tok, err := c.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok.AccessToken != "at" || tok.RefreshToken != "rt" || tok.User.ID != userID || tok.User.Email != "a@b.c" {
		t.Errorf("unexpected tokens %+v", tok)
	}
	if gotKey != "anon" || gotGrant != "password" || gotPath != "/auth/v1/token" || gotBody["email"] != "a@b.c" {
		t.Errorf("request was key=%q grant=%q path=%q body=%+v", gotKey, gotGrant, gotPath, gotBody)
	}
}

func TestLoginWithoutCredentialsIsValidationError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "anon", "service")
	_, err := c.Login(context.Background(), "", "pw")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRefreshUsesRefreshGrant(t *testing.T) {
	var gotGrant string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotGrant = r.URL.Query().Get("grant_type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"access_token":"at2","refresh_token":"rt2","user":{"id":"` + userID + `"}}`))
	}))
	defer srv.Close()

	tok, err := NewClient(srv.URL, "anon", "").Refresh(context.Background(), "rt")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if tok.AccessToken != "at2" || gotGrant != "refresh_token" || gotBody["refresh_token"] != "rt" {
		t.Errorf("tok=%+v grant=%q body=%v", tok, gotGrant, gotBody)
	}
}

func TestAdminCallsUseServiceKey(t *testing.T) {
	var gotAuth, gotPath, gotMethod string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth, gotPath, gotMethod = r.Header.Get("Authorization"), r.URL.Path, r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"id":"` + userID + `","email":"new@b.c"}`))
	}))
	defer srv.Close()

	email := "new@b.c"
	u, err := NewClient(srv.URL, "anon", "service").UpdateUser(context.Background(), userID, domain.UserUpdate{Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Email != "new@b.c" || u.ID != userID {
		t.Errorf("user = %+v", u)
	}
	if gotAuth != "Bearer service" || gotPath != "/auth/v1/admin/users/"+userID || gotMethod != http.MethodPut {
		t.Errorf("auth=%q path=%q method=%q", gotAuth, gotPath, gotMethod)
	}
	if _, ok := gotBody["password"]; ok || gotBody["email"] != "new@b.c" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestDeleteUser(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon", "service")
	if err := c.DeleteUser(context.Background(), userID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotPath != "/auth/v1/admin/users/"+userID || gotMethod != http.MethodDelete {
		t.Errorf("path=%q method=%q", gotPath, gotMethod)
	}
	if err := c.DeleteUser(context.Background(), "nope"); err == nil {
		t.Error("expected an error for a malformed id")
	}
}

func TestErrorsCarryProviderCode(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantKind string
		wantMsg  string
	}{
		{"error_code", 400, `{"code":400,"error_code":"weak_password","msg":"Password should be at least 6 characters"}`, "weak_password", "Password should be at least 6 characters"},
		{"oauth style", 400, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`, "AuthApiError", "Invalid login credentials"},
		{"plain text", 502, `bad gateway`, "AuthApiError", "bad gateway"},
		{"empty", 401, ``, "AuthApiError", "Unauthorized"},
		{"outage", 503, `{"msg":"upstream unavailable"}`, "AuthApiError", "upstream unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "anon", "").GetUser(context.Background(), "tok")
			var ie *domain.IdentityError
			if !errors.As(err, &ie) {
				t.Fatalf("expected IdentityError, got %v", err)
			}
			if ie.Kind() != tc.wantKind || ie.Message != tc.wantMsg || ie.Status != tc.status {
				t.Errorf("got kind=%q msg=%q status=%d", ie.Kind(), ie.Message, ie.Status)
			}
		})
	}
}

func TestGetUserSendsToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":"` + userID + `","email":"a@b.c"}`))
	}))
	defer srv.Close()

	u, err := NewClient(srv.URL, "anon", "").GetUser(context.Background(), "tok")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if gotAuth != "Bearer tok" || u.ID != userID {
		t.Errorf("auth=%q user=%+v", gotAuth, u)
	}
}

func TestCanceledContextStopsCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"` + userID + `"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, "anon", "").GetUser(ctx, "tok")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var ie *domain.IdentityError
	if errors.As(err, &ie) {
		t.Error("a transport failure must not look like a provider rejection")
	}
}

func TestSignOutPassesScope(t *testing.T) {
	var gotScope, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotScope, gotAuth = r.URL.Query().Get("scope"), r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "anon", "").SignOut(context.Background(), "tok", "global"); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if gotScope != "global" || gotAuth != "Bearer tok" {
		t.Errorf("scope=%q auth=%q", gotScope, gotAuth)
	}
}
