package infrastructure

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-tailor/internal/domain"
)

const pdfDataURLPrefix = "data:application/pdf;base64,"

// LatexRenderer compiles LaTeX through the latex-compiler sidecar.
type LatexRenderer struct {
	BaseURL string
	HTTP    *http.Client
}

func NewLatexRenderer(baseURL string) *LatexRenderer {
	return &LatexRenderer{BaseURL: baseURL, HTTP: &http.Client{Timeout: 90 * time.Second}}
}

// CompileResponse is the sidecar's reply.
type CompileResponse struct {
	Success bool   `json:"success"`
	PDF     string `json:"pdf,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r *LatexRenderer) RenderLatexToPDF(ctx context.Context, latex string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"latex": latex})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("latex compiler: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var out CompileResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("latex compiler returned status %d and a non-json body", resp.StatusCode)
	}
	if !out.Success {
		return nil, &domain.CompileError{Log: out.Error}
	}
	return DecodePDFDataURL(out.PDF)
}

func EncodePDFDataURL(pdf []byte) string {
	return pdfDataURLPrefix + base64.StdEncoding.EncodeToString(pdf)
}

func DecodePDFDataURL(s string) ([]byte, error) {
	if !strings.HasPrefix(s, pdfDataURLPrefix) {
		return nil, errors.New("latex compiler: pdf is not a base64 data url")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(s, pdfDataURLPrefix))
}
