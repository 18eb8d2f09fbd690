package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"resume-tailor/internal/domain"
)

// Client talks to the Supabase auth (GoTrue) REST API through gotrue-go.
// Public calls use the anon key, admin calls the service key.
type Client struct {
	BaseURL string
	AnonKey string
	HTTP    *http.Client

	anon  gotrue.Client
	admin gotrue.Client
}

func NewClient(baseURL, anonKey, serviceKey string) *Client {
	base := strings.TrimRight(baseURL, "/") + "/auth/v1"
	return &Client{
		BaseURL: base,
		AnonKey: anonKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		anon:    gotrue.New("", anonKey).WithCustomGoTrueURL(base),
		admin:   gotrue.New("", serviceKey).WithCustomGoTrueURL(base).WithToken(serviceKey),
	}
}

// ctxTransport binds every request of one call to ctx. gotrue-go builds its
// requests without a context.
type ctxTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t ctxTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(r.WithContext(t.ctx))
}

func (c *Client) bind(ctx context.Context, api gotrue.Client) gotrue.Client {
	base := c.HTTP.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return api.WithClient(http.Client{Transport: ctxTransport{ctx: ctx, base: base}, Timeout: c.HTTP.Timeout})
}

func (c *Client) SignUp(ctx context.Context, email, password string) error {
	_, err := c.bind(ctx, c.anon).Signup(types.SignupRequest{Email: email, Password: password})
	return translate(err)
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthTokens, error) {
	res, err := c.bind(ctx, c.anon).SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, translate(err)
	}
	return toTokens(res.Session), nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	res, err := c.bind(ctx, c.anon).RefreshToken(refreshToken)
	if err != nil {
		return nil, translate(err)
	}
	return toTokens(res.Session), nil
}

// GetUser resolves the user behind an access token.
func (c *Client) GetUser(ctx context.Context, token string) (*domain.User, error) {
	res, err := c.bind(ctx, c.anon.WithToken(token)).GetUser()
	if err != nil {
		return nil, translate(err)
	}
	return toUser(res.User), nil
}

func (c *Client) UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.Invalid("user", "%q is not a valid id", userID)
	}
	req := types.AdminUpdateUserRequest{UserID: id}
	if update.Email != nil {
		req.Email = *update.Email
	}
	if update.Password != nil {
		req.Password = *update.Password
	}
	res, err := c.bind(ctx, c.admin).AdminUpdateUser(req)
	if err != nil {
		return nil, translate(err)
	}
	return toUser(res.User), nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.Invalid("user", "%q is not a valid id", userID)
	}
	return translate(c.bind(ctx, c.admin).AdminDeleteUser(types.AdminDeleteUserRequest{UserID: id}))
}

// SignOut revokes sessions of the token owner. scope is local, global or
// others. gotrue-go's Logout has no scope parameter, so this call is sent
// directly.
func (c *Client) SignOut(ctx context.Context, token, scope string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/logout?scope="+url.QueryEscape(scope), nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.AnonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return decodeError(resp.StatusCode, raw)
	}
	return nil
}

func toTokens(s types.Session) *domain.AuthTokens {
	return &domain.AuthTokens{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		User:         *toUser(s.User),
	}
}

func toUser(u types.User) *domain.User {
	return &domain.User{ID: u.ID.String(), Email: u.Email}
}

// translate recovers status and body from gotrue-go's error text, which is
// "response status code <n>: <body>" for every non-2xx reply.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, types.ErrInvalidTokenRequest) {
		return &domain.ValidationError{Message: "email and password, or a refresh token, are required"}
	}
	var status int
	msg := err.Error()
	if _, scanErr := fmt.Sscanf(msg, "response status code %d", &status); scanErr != nil {
		return fmt.Errorf("identity provider: %w", err)
	}
	_, body, _ := strings.Cut(msg, ": ")
	return decodeError(status, []byte(body))
}

// decodeError reads the several error shapes GoTrue has used over time.
func decodeError(status int, raw []byte) error {
	var e struct {
		Code        any    `json:"code"`
		ErrorCode   string `json:"error_code"`
		Error       string `json:"error"`
		Msg         string `json:"msg"`
		Message     string `json:"message"`
		Description string `json:"error_description"`
	}
	_ = json.Unmarshal(raw, &e)

	msg := firstNonEmpty(e.Msg, e.Message, e.Description, e.Error)
	if msg == "" {
		msg = string(bytes.TrimSpace(raw))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	code := e.ErrorCode
	if code == "" {
		if s, ok := e.Code.(string); ok {
			code = s
		}
	}
	return &domain.IdentityError{Status: status, Code: code, Message: msg}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
