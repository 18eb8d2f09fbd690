package http

import (
	"io"

	"resume-tailor/internal/adapter/http/dispatch"
	"resume-tailor/internal/domain"

	"github.com/google/uuid"
)

type fileResult struct {
	File *dispatch.Attachment `json:"file"`
}

func (h *Handler) ResumeUpload(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	fh, ok := call.Params.File("file")
	if !ok {
		return nil, domain.Invalid("file", "is required")
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		return nil, domain.Invalid("file", "larger than %d bytes", h.maxUpload)
	}

	var update *uuid.UUID
	if raw, err := call.Params.OptionalString("update"); err != nil {
		return nil, err
	} else if raw != nil {
		id, err := uuid.Parse(*raw)
		if err != nil {
			return nil, domain.Invalid("update", "%q is not a valid id", *raw)
		}
		update = &id
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	id, err := h.resumes.Upload(call.Context(), userID, fh.Filename, content, update)
	if err != nil {
		return nil, err
	}
	return &struct {
		ID string `json:"id"`
	}{id.String()}, nil
}

func (h *Handler) ResumeDelete(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(call, "id")
	if err != nil {
		return nil, err
	}
	return nil, h.resumes.Delete(call.Context(), userID, id)
}

func (h *Handler) ResumeList(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	list, err := h.resumes.List(call.Context(), userID)
	if err != nil {
		return nil, err
	}
	return &struct {
		Data []domain.Resume `json:"data"`
	}{list}, nil
}

func (h *Handler) ResumeRename(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(call, "id")
	if err != nil {
		return nil, err
	}
	name, err := call.Params.RequireString("name")
	if err != nil {
		return nil, err
	}
	return nil, h.resumes.Rename(call.Context(), userID, id, name)
}

func (h *Handler) ResumeDownload(call *dispatch.Call) (any, error) {
	userID, err := call.UserID()
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(call, "id")
	if err != nil {
		return nil, err
	}
	res, err := h.resumes.Download(call.Context(), userID, id)
	if err != nil {
		return nil, err
	}
	return &fileResult{File: &dispatch.Attachment{
		Filename:    res.Filename,
		ContentType: "application/x-tex",
		Data:        []byte(res.Content),
	}}, nil
}
