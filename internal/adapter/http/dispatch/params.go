package dispatch

import (
	"encoding/json"
	"mime/multipart"
	"strings"

	"resume-tailor/internal/domain"
)

// Params is the per-request set of bound inputs. A declared name that the
// request did not carry is absent, which is different from a JSON null.
type Params struct {
	values map[string]any
	files  map[string]*multipart.FileHeader
}

func newParams() Params {
	return Params{values: map[string]any{}, files: map[string]*multipart.FileHeader{}}
}

// NewParams builds a parameter set from plain values. Used by tests and by
// handlers that call each other.
func NewParams(values map[string]any) Params {
	p := newParams()
	for k, v := range values {
		p.values[k] = v
	}
	return p
}

// Lookup returns the raw JSON value and whether the name was present.
func (p Params) Lookup(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Has reports whether the name was supplied with a non-null value.
func (p Params) Has(name string) bool {
	v, ok := p.values[name]
	return ok && v != nil
}

// File returns the uploaded file bound to a file-kind input.
func (p Params) File(name string) (*multipart.FileHeader, bool) {
	f, ok := p.files[name]
	return f, ok && f != nil
}

// Token returns the bearer token, empty when absent.
func (p Params) Token() string {
	s, _ := p.values[TokenParam].(string)
	return strings.TrimSpace(s)
}

// Scalars returns the JSON values only, without the token.
func (p Params) Scalars() map[string]any {
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		if k == TokenParam {
			continue
		}
		out[k] = v
	}
	return out
}

// Decode converts the named value into dst. An absent or null value leaves
// dst untouched and returns false.
func (p Params) Decode(name string, dst any) (bool, error) {
	v, ok := p.values[name]
	if !ok || v == nil {
		return false, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return false, domain.Invalid(name, "unreadable value")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, domain.Invalid(name, "wrong type: %v", err)
	}
	return true, nil
}

// String returns the named string value, or "" when absent.
func (p Params) String(name string) (string, error) {
	var s string
	if _, err := p.Decode(name, &s); err != nil {
		return "", err
	}
	return s, nil
}

// OptionalString distinguishes an absent value (nil) from an empty one.
func (p Params) OptionalString(name string) (*string, error) {
	var s string
	ok, err := p.Decode(name, &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

// RequireString fails with a ValidationError when the value is absent or blank.
func (p Params) RequireString(name string) (string, error) {
	s, err := p.String(name)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", domain.Invalid(name, "is required")
	}
	return s, nil
}
