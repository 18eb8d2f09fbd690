package dispatch

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"unicode"

	"github.com/google/uuid"

	"resume-tailor/internal/domain"
)

// HandlerFunc is the business function behind a route. It returns a pointer
// to a result struct whose json tags name the route's outputs. On failure it
// may still return the partially filled struct; whatever it produced is kept.
type HandlerFunc func(call *Call) (any, error)

// Call is what a handler gets to work with.
type Call struct {
	ctx     context.Context
	Params  Params
	Session *domain.Session
	Route   Route
	status  int
}

func NewCall(ctx context.Context, route Route, params Params, session *domain.Session) *Call {
	return &Call{ctx: ctx, Route: route, Params: params, Session: session}
}

func (c *Call) Context() context.Context { return c.ctx }

// SetStatus overrides the status code the response is written with, for
// success and failure alike.
func (c *Call) SetStatus(code int) { c.status = code }

// UserID returns the authenticated user, or AuthRequiredError.
func (c *Call) UserID() (uuid.UUID, error) {
	if c.Session == nil {
		return uuid.Nil, &domain.AuthRequiredError{}
	}
	return c.Session.UserID, nil
}

// PanicError wraps a value recovered from a handler.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("handler panicked: %v", e.Value) }
func (e *PanicError) Kind() string  { return "PanicError" }

func invoke(call *Call, h HandlerFunc) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return h(call)
}

type kinded interface {
	Kind() string
}

// ErrorKind names an error for the response envelope: the Kind of the first
// error in the chain that has one, else the exported type name, else "Error".
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" && unicode.IsUpper(rune(name[0])) {
		return name
	}
	return "Error"
}
