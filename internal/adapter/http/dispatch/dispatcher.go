package dispatch

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"resume-tailor/internal/domain"
	"resume-tailor/internal/model"
)

// Dispatcher registers routes on a fiber router and is the single place
// where handler errors are turned into responses.
type Dispatcher struct {
	validator Validator
	limiter   *Limiter
	metrics   *Metrics
	log       *slog.Logger
	now       func() time.Time
}

type Option func(*Dispatcher)

func WithLimiter(l *Limiter) Option { return func(d *Dispatcher) { d.limiter = l } }
func WithMetrics(m *Metrics) Option { return func(d *Dispatcher) { d.metrics = m } }
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

func New(validator Validator, opts ...Option) *Dispatcher {
	d := &Dispatcher{validator: validator, log: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Handle registers route as a POST endpoint on r. An invalid route schema
// panics, routes are declared at startup.
func (d *Dispatcher) Handle(r fiber.Router, route Route, h HandlerFunc) {
	var schema *model.Schema
	if route.Schema != "" {
		schema = model.MustCompileSchema(route.Schema)
	}
	r.Post(route.Path, func(c *fiber.Ctx) error {
		return d.serve(c, route, schema, h)
	})
}

func (d *Dispatcher) serve(c *fiber.Ctx, route Route, schema *model.Schema, h HandlerFunc) error {
	start := d.now()
	ctx := c.UserContext()

	var (
		result any
		status int
	)

	// Unverified tokens are caller-chosen, so the first bucket is per IP and
	// the second per validated user.
	params, err := Bind(c, route)
	if err == nil && !d.limiter.Allow(ipKey(c.IP()), start) {
		status = fiber.StatusTooManyRequests
		err = &domain.RateLimitError{}
	}

	var session *domain.Session
	if err == nil && d.validator != nil {
		session, err = d.validator.Validate(ctx, params.Token())
	}
	if err == nil && session != nil && !d.limiter.Allow(userKey(session), start) {
		status = fiber.StatusTooManyRequests
		err = &domain.RateLimitError{}
	}
	if err == nil && route.Auth && session == nil {
		err = &domain.AuthRequiredError{}
	}
	if err == nil {
		err = schema.ValidateMap(params.Scalars())
	}

	if err == nil {
		call := NewCall(ctx, route, params, session)
		result, err = invoke(call, h)
		status = call.status
	}

	kind, message := "", ""
	if err != nil {
		kind, message = ErrorKind(err), err.Error()
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		d.log.Warn("call failed", "route", route.Path, "error", kind, "message", message)
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	scalars, files := collect(route, result)
	d.metrics.observe(route.Path, kind, d.now().Sub(start))
	return write(c, route, status, scalars, files, kind, message)
}
