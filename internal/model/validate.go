package model

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resume-tailor/internal/domain"
)

// Schema is a compiled JSON Schema for a route's scalar inputs.
type Schema struct {
	schema *gojsonschema.Schema
}

// CompileSchema parses an inline JSON Schema document.
func CompileSchema(src string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// MustCompileSchema is CompileSchema for schemas fixed at startup.
func MustCompileSchema(src string) *Schema {
	s, err := CompileSchema(src)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateMap validates a generic map against the schema. Failures come
// back as a *domain.ValidationError listing every violation.
func (s *Schema) ValidateMap(m map[string]any) error {
	if s == nil {
		return nil
	}
	res, err := s.schema.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return &domain.ValidationError{Message: "unreadable parameters: " + err.Error()}
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return &domain.ValidationError{Message: strings.Join(msgs, "; ")}
}
