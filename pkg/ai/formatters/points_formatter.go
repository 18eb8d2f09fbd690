package formatters

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type PointsFormatter struct {
	gen Generator
}

func NewPointsFormatter(gen Generator) *PointsFormatter {
	return &PointsFormatter{gen: gen}
}

// Format asks for a resume-ready bullet list built from the selected project
// texts and tailored to jobListing.
func (pf *PointsFormatter) Format(ctx context.Context, jobListing string, projectTexts []string) (string, error) {
	if len(projectTexts) == 0 {
		return "", errors.New("no projects selected")
	}
	prompt := fmt.Sprintf(`You are helping to format a user's GitHub projects so that they can be inserted into their resume.

Here is the job listing:

%s

Here are some potentially relevant projects that the user has selected for inclusion in their resume:

%s

Summarize the list of projects into a list of projects that can be inserted into the resume. You are free to remove any project from the list if it is not in fact relevant.

Return ONLY a bullet point list and nothing else.`, jobListing, strings.Join(projectTexts, "\n\n"))

	out, err := pf.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return StripCodeFences(out), nil
}
