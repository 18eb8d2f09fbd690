package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-tailor/internal/domain"
)

// jsonPart is the multipart field that carries the scalar inputs.
const jsonPart = "json"

// Bind extracts the declared inputs from a JSON or multipart request body.
// The token is always bound; an Authorization bearer header takes precedence
// over a token field in the body. Values are not type checked here.
func Bind(c *fiber.Ctx, route Route) (Params, error) {
	params := newParams()

	var body map[string]any
	var err error
	if isMultipart(c.Get(fiber.HeaderContentType)) {
		body, err = bindMultipart(c, route, &params)
	} else {
		body, err = decodeObject(c.Body())
	}
	if err != nil {
		return params, err
	}

	for _, in := range route.inputs() {
		if in.Kind == FileKind {
			continue
		}
		if v, ok := body[in.Name]; ok {
			params.values[in.Name] = v
		}
	}

	if tok := bearerToken(c.Get(fiber.HeaderAuthorization)); tok != "" {
		params.values[TokenParam] = tok
	}
	return params, nil
}

func bindMultipart(c *fiber.Ctx, route Route, params *Params) (map[string]any, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, &domain.ValidationError{Message: "malformed multipart body: " + err.Error()}
	}
	var body map[string]any
	if parts := form.Value[jsonPart]; len(parts) > 0 {
		body, err = decodeObject([]byte(parts[0]))
		if err != nil {
			return nil, err
		}
	}
	for _, in := range route.inputs() {
		if in.Kind != FileKind {
			continue
		}
		if fhs := form.File[in.Name]; len(fhs) > 0 {
			params.files[in.Name] = fhs[0]
		}
	}
	return body, nil
}

// decodeObject parses a JSON object, keeping numbers exact. An empty body is
// an empty object.
func decodeObject(raw []byte) (map[string]any, error) {
	out := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &domain.ValidationError{Message: "request body must be a JSON object"}
		}
		return nil, &domain.ValidationError{Message: "malformed JSON body: " + err.Error()}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &domain.ValidationError{Message: "malformed JSON body: trailing data"}
	}
	return out, nil
}

func isMultipart(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), fiber.MIMEMultipartForm)
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
