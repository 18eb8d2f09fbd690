package http

import (
	"github.com/gofiber/fiber/v2"

	"resume-tailor/internal/adapter/http/dispatch"
	"resume-tailor/internal/domain"
	"resume-tailor/internal/usecase"
)

// ExtractKeywords answers input errors with 200 and the error envelope,
// clients of this route only look at the envelope.
func (h *Handler) ExtractKeywords(call *dispatch.Call) (any, error) {
	if !call.Params.Has("resume_text") {
		call.SetStatus(fiber.StatusOK)
		return nil, domain.Invalid("resume_text", "is required")
	}
	text, err := call.Params.String("resume_text")
	if err != nil {
		call.SetStatus(fiber.StatusOK)
		return nil, err
	}
	return &struct {
		MatchedKeywords []string `json:"matched_keywords"`
	}{usecase.ExtractKeywords(text, h.keywords)}, nil
}
