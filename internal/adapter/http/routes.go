package http

import (
	d "resume-tailor/internal/adapter/http/dispatch"
	"resume-tailor/internal/model"

	"github.com/gofiber/fiber/v2"
)

var (
	SignupRoute  = d.Route{Path: "/signup", Inputs: d.Fields("email", "password"), Schema: model.SignupSchema}
	LoginRoute   = d.Route{Path: "/login", Inputs: d.Fields("email", "password"), Outputs: d.Fields("token", "refresh_token"), Schema: model.LoginSchema}
	RefreshRoute = d.Route{Path: "/refresh", Inputs: d.Fields("refresh_token"), Outputs: d.Fields("token", "refresh_token"), Schema: model.RefreshSchema}
	ModifyRoute  = d.Route{Path: "/modify", Inputs: d.Fields("email", "password"), Outputs: d.Fields("email"), Auth: true, Schema: model.ModifySchema}
	LogoutRoute  = d.Route{Path: "/logout", Inputs: d.Fields("scope"), Auth: true, Schema: model.LogoutSchema}
	DeleteRoute  = d.Route{Path: "/delete", Auth: true}

	GitHubLinkRoute         = d.Route{Path: "/github/link", Inputs: d.Fields("code"), Outputs: d.Fields("github_username"), Auth: true, Schema: model.LinkSchema}
	GitHubUnlinkRoute       = d.Route{Path: "/github/unlink", Auth: true}
	GitHubListRoute         = d.Route{Path: "/github/projects/list", Inputs: d.Fields("min_stars", "is_archived", "include", "exclude", "only"), Outputs: d.Fields("repos"), Auth: true, Schema: model.ListReposSchema}
	GitHubImportRoute       = d.Route{Path: "/github/projects/import", Inputs: d.Fields("repos"), Outputs: d.Fields("imported"), Auth: true, Schema: model.ImportSchema}
	GitHubViewRoute         = d.Route{Path: "/github/projects/view", Outputs: d.Fields("repos"), Auth: true}
	GitHubUpdateRoute       = d.Route{Path: "/github/update", Outputs: d.Fields("refreshed"), Auth: true}
	GitHubSelectionSetRoute = d.Route{Path: "/github/selection/set", Inputs: d.Fields("data"), Auth: true, Schema: model.SelectionSchema}
	GitHubSelectionGetRoute = d.Route{Path: "/github/selection/get", Outputs: d.Fields("data"), Auth: true}

	ResumeUploadRoute   = d.Route{Path: "/resume/upload", Inputs: []d.Param{d.File("file"), d.Field("update")}, Outputs: d.Fields("id"), Auth: true, Schema: model.UploadSchema}
	ResumeDeleteRoute   = d.Route{Path: "/resume/delete", Inputs: d.Fields("id"), Auth: true, Schema: model.ResumeIDSchema}
	ResumeListRoute     = d.Route{Path: "/resume/list", Outputs: d.Fields("data"), Auth: true}
	ResumeRenameRoute   = d.Route{Path: "/resume/rename", Inputs: d.Fields("id", "name"), Auth: true, Schema: model.RenameSchema}
	ResumeDownloadRoute = d.Route{Path: "/resume/download", Inputs: d.Fields("id"), Outputs: []d.Param{d.File("file")}, Auth: true, Schema: model.ResumeIDSchema}

	RagRoute    = d.Route{Path: "/generate/rag", Inputs: d.Fields("job_listing"), Outputs: d.Fields("repos"), Auth: true, Schema: model.RagSchema}
	PointsRoute = d.Route{Path: "/generate/points", Inputs: d.Fields("ids", "job_listing"), Outputs: d.Fields("output"), Auth: true, Schema: model.PointsSchema}
	LatexRoute  = d.Route{Path: "/generate/latex", Inputs: d.Fields("input", "resume_id"), Outputs: d.Fields("output", "filename"), Auth: true, Schema: model.LatexSchema}
	PDFRoute    = d.Route{Path: "/generate/pdf", Inputs: d.Fields("filename", "content"), Outputs: []d.Param{d.File("file"), d.Field("pages")}, Auth: true, Schema: model.PDFSchema}

	KeywordsRoute = d.Route{Path: "/extract-keywords", Inputs: d.Fields("resume_text"), Outputs: d.Fields("matched_keywords")}
)

// Register mounts every route on r.
func Register(r fiber.Router, disp *d.Dispatcher, h *Handler) {
	disp.Handle(r, SignupRoute, h.Signup)
	disp.Handle(r, LoginRoute, h.Login)
	disp.Handle(r, RefreshRoute, h.Refresh)
	disp.Handle(r, ModifyRoute, h.Modify)
	disp.Handle(r, LogoutRoute, h.Logout)
	disp.Handle(r, DeleteRoute, h.DeleteAccount)

	disp.Handle(r, GitHubLinkRoute, h.GitHubLink)
	disp.Handle(r, GitHubUnlinkRoute, h.GitHubUnlink)
	disp.Handle(r, GitHubListRoute, h.GitHubListProjects)
	disp.Handle(r, GitHubImportRoute, h.GitHubImport)
	disp.Handle(r, GitHubViewRoute, h.GitHubView)
	disp.Handle(r, GitHubUpdateRoute, h.GitHubUpdate)
	disp.Handle(r, GitHubSelectionSetRoute, h.GitHubSelectionSet)
	disp.Handle(r, GitHubSelectionGetRoute, h.GitHubSelectionGet)

	disp.Handle(r, ResumeUploadRoute, h.ResumeUpload)
	disp.Handle(r, ResumeDeleteRoute, h.ResumeDelete)
	disp.Handle(r, ResumeListRoute, h.ResumeList)
	disp.Handle(r, ResumeRenameRoute, h.ResumeRename)
	disp.Handle(r, ResumeDownloadRoute, h.ResumeDownload)

	disp.Handle(r, RagRoute, h.GenerateRag)
	disp.Handle(r, PointsRoute, h.GeneratePoints)
	disp.Handle(r, LatexRoute, h.GenerateLatex)
	disp.Handle(r, PDFRoute, h.GeneratePDF)

	disp.Handle(r, KeywordsRoute, h.ExtractKeywords)
}
