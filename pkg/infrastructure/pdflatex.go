package infrastructure

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"resume-tailor/internal/domain"
)

// logTail bounds how much of the compiler log is returned on failure.
const logTail = 4000

// Pdflatex runs a local TeX installation. Two passes are made so that
// references and page counts settle.
type Pdflatex struct {
	Bin     string
	Passes  int
	Timeout time.Duration
}

func NewPdflatex() *Pdflatex {
	bin := os.Getenv("PDFLATEX_PATH")
	if bin == "" {
		bin = "pdflatex"
	}
	return &Pdflatex{Bin: bin, Passes: 2, Timeout: 60 * time.Second}
}

func (p *Pdflatex) Compile(ctx context.Context, latex string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "latex-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	texPath := filepath.Join(tmpDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(latex), 0o644); err != nil {
		return nil, err
	}

	var log bytes.Buffer
	for i := 0; i < p.Passes; i++ {
		log.Reset()
		cmd := exec.CommandContext(ctx, p.Bin, "-interaction=nonstopmode", "-halt-on-error", "-output-directory", tmpDir, texPath)
		cmd.Dir = tmpDir
		cmd.Stdout = &log
		cmd.Stderr = &log
		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return nil, &domain.CompileError{Log: "compilation timed out"}
			}
			return nil, &domain.CompileError{Log: tail(log.String())}
		}
	}

	pdf, err := os.ReadFile(filepath.Join(tmpDir, "resume.pdf"))
	if err != nil {
		return nil, &domain.CompileError{Log: "no pdf produced: " + tail(log.String())}
	}
	return pdf, nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > logTail {
		s = s[len(s)-logTail:]
	}
	return s
}
