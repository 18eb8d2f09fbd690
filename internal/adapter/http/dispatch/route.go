// Package dispatch is the request layer every endpoint is registered on. A
// Route declares the names a handler reads and the names it answers with; the
// dispatcher authenticates the caller, binds the declared inputs from the
// request body, runs the handler and writes back exactly the declared outputs
// the handler produced, together with the error and message envelope fields.
package dispatch

// ParamKind tells whether a declared name carries a JSON value or a file.
type ParamKind int

const (
	Scalar ParamKind = iota
	FileKind
)

// TokenParam is implicitly part of every route's inputs.
const TokenParam = "token"

// Param is one declared input or output name.
type Param struct {
	Name string
	Kind ParamKind
}

// Field declares a JSON value.
func Field(name string) Param { return Param{Name: name, Kind: Scalar} }

// File declares an uploaded file (input) or a file part in a multipart
// response (output).
func File(name string) Param { return Param{Name: name, Kind: FileKind} }

// Fields declares several JSON values at once.
func Fields(names ...string) []Param {
	out := make([]Param, 0, len(names))
	for _, n := range names {
		out = append(out, Field(n))
	}
	return out
}

// Route is the immutable declaration of one POST endpoint.
type Route struct {
	Path    string
	Inputs  []Param
	Outputs []Param
	// Auth makes a missing token an error instead of an anonymous call.
	Auth bool
	// Schema is an optional JSON Schema the scalar inputs are checked against
	// before the handler runs.
	Schema string
}

// inputs returns the declared inputs with the token appended once.
func (r Route) inputs() []Param {
	out := make([]Param, 0, len(r.Inputs)+1)
	for _, p := range r.Inputs {
		if p.Name == TokenParam {
			continue
		}
		out = append(out, p)
	}
	return append(out, Field(TokenParam))
}

func (r Route) hasFileOutputs() bool {
	for _, p := range r.Outputs {
		if p.Kind == FileKind {
			return true
		}
	}
	return false
}

func (r Route) output(name string) (Param, bool) {
	for _, p := range r.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
