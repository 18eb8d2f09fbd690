package formatters

import (
	"context"
	"fmt"
)

type LatexFormatter struct {
	gen Generator
}

func NewLatexFormatter(gen Generator) *LatexFormatter {
	return &LatexFormatter{gen: gen}
}

// Format integrates bullets into the LaTeX resume and returns the complete
// modified document.
func (lf *LatexFormatter) Format(ctx context.Context, resume, bullets string) (string, error) {
	prompt := fmt.Sprintf(`You are editing the resume of a user to include some of their personal GitHub projects.

Here is the LaTeX resume they want to edit:

%s

Here is the bullet point list they want to include:

%s

Integrate the bullet point list into the resume in a way that keeps the resume's theme, style and structure. Do not just paste in the list.

Return JUST the modified LaTeX resume and nothing more.`, resume, bullets)

	out, err := lf.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return StripCodeFences(out), nil
}
