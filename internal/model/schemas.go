package model

// Input schemas of the routes. Only scalar inputs are checked, files and the
// token are handled by the dispatcher.

const SignupSchema = `{
	"type": "object",
	"properties": {
		"email": {"type": "string", "minLength": 1},
		"password": {"type": "string", "minLength": 1}
	},
	"required": ["email", "password"]
}`

const LoginSchema = `{
	"type": "object",
	"properties": {
		"email": {"type": "string"},
		"password": {"type": "string"}
	},
	"required": ["email", "password"]
}`

const RefreshSchema = `{
	"type": "object",
	"properties": {"refresh_token": {"type": "string", "minLength": 1}},
	"required": ["refresh_token"]
}`

const ModifySchema = `{
	"type": "object",
	"properties": {
		"email": {"type": ["string", "null"]},
		"password": {"type": ["string", "null"]}
	}
}`

const LogoutSchema = `{
	"type": "object",
	"properties": {
		"scope": {"enum": ["local", "global", "others", null]}
	}
}`

const LinkSchema = `{
	"type": "object",
	"properties": {"code": {"type": "string", "minLength": 1}},
	"required": ["code"]
}`

const ListReposSchema = `{
	"type": "object",
	"properties": {
		"min_stars": {"type": ["integer", "null"], "minimum": 0},
		"is_archived": {"type": ["boolean", "null"]},
		"include": {"type": ["array", "null"], "items": {"type": "string"}},
		"exclude": {"type": ["array", "null"], "items": {"type": "string"}},
		"only": {"type": ["array", "null"], "items": {"type": "string"}}
	}
}`

const ImportSchema = `{
	"type": "object",
	"properties": {
		"repos": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}}
	},
	"required": ["repos"]
}`

const SelectionSchema = `{
	"type": "object",
	"properties": {
		"data": {"type": "object", "additionalProperties": {"type": "boolean"}}
	},
	"required": ["data"]
}`

const UploadSchema = `{
	"type": "object",
	"properties": {
		"update": {"type": ["string", "null"], "format": "uuid"}
	}
}`

const ResumeIDSchema = `{
	"type": "object",
	"properties": {"id": {"type": "string"}},
	"required": ["id"]
}`

const RenameSchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "string"},
		"name": {"type": "string", "minLength": 5}
	},
	"required": ["id", "name"]
}`

const RagSchema = `{
	"type": "object",
	"properties": {"job_listing": {"type": "string", "minLength": 1}},
	"required": ["job_listing"]
}`

const PointsSchema = `{
	"type": "object",
	"properties": {
		"ids": {"type": "array", "minItems": 1, "items": {"type": "integer"}},
		"job_listing": {"type": "string", "minLength": 1}
	},
	"required": ["ids", "job_listing"]
}`

const LatexSchema = `{
	"type": "object",
	"properties": {
		"input": {"type": "string", "minLength": 1},
		"resume_id": {"type": "string"}
	},
	"required": ["input", "resume_id"]
}`

const PDFSchema = `{
	"type": "object",
	"properties": {
		"filename": {"type": ["string", "null"]},
		"content": {"type": "string", "minLength": 1}
	},
	"required": ["content"]
}`
