package http

import (
	"resume-tailor/internal/adapter/http/dispatch"
	"resume-tailor/internal/domain"
)

type outputResult struct {
	Output string `json:"output"`
}

func (h *Handler) GenerateRag(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	listing, err := call.Params.RequireString("job_listing")
	if err != nil {
		return nil, err
	}
	matches, err := h.tailor.Rag(call.Context(), userID, listing)
	if err != nil {
		return nil, err
	}
	return &reposResult[domain.ProjectMatch]{Repos: matches}, nil
}

func (h *Handler) GeneratePoints(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	var ids []int64
	if _, err := call.Params.Decode("ids", &ids); err != nil {
		return nil, err
	}
	listing, err := call.Params.RequireString("job_listing")
	if err != nil {
		return nil, err
	}
	out, err := h.tailor.Points(call.Context(), userID, ids, listing)
	if err != nil {
		return nil, err
	}
	return &outputResult{Output: out}, nil
}

func (h *Handler) GenerateLatex(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	input, err := call.Params.RequireString("input")
	if err != nil {
		return nil, err
	}
	resumeID, err := uuidParam(call, "resume_id")
	if err != nil {
		return nil, err
	}
	out, filename, err := h.tailor.Latex(call.Context(), userID, resumeID, input)
	if err != nil {
		return nil, err
	}
	return &struct {
		Output   string `json:"output"`
		Filename string `json:"filename"`
	}{out, filename}, nil
}

func (h *Handler) GeneratePDF(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	filename, err := call.Params.String("filename")
	if err != nil {
		return nil, err
	}
	content, err := call.Params.RequireString("content")
	if err != nil {
		return nil, err
	}
	pdf, err := h.tailor.PDF(call.Context(), userID, filename, content)
	if err != nil {
		return nil, err
	}
	return &struct {
		File  *dispatch.Attachment `json:"file"`
		Pages int                  `json:"pages"`
	}{
		File:  &dispatch.Attachment{Filename: pdf.Filename, ContentType: "application/pdf", Data: pdf.Data},
		Pages: pdf.Pages,
	}, nil
}
