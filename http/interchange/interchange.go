package interchange

import (
	"github.com/xy-planning-network/responder/http/resp"
)

// A Factory converts a *resp.Response into an interchange representation T.
type Factory[T any] interface {
	CreateResponse(r *resp.Response) (T, error)
}

// The FactoryFunc type is an adapter to allow the use of ordinary functions as a Factory.
type FactoryFunc[T any] func(r *resp.Response) (T, error)

// CreateResponse calls fn(r).
func (fn FactoryFunc[T]) CreateResponse(r *resp.Response) (T, error) { return fn(r) }

// A Responder builds responses with a *resp.Responder and converts them through a Factory.
//
// Responder omits Response and Url.
type Responder[T any] struct {
	responder *resp.Responder
	factory   Factory[T]
}

// New constructs a *Responder wrapping r and converting through factory.
func New[T any](r *resp.Responder, factory Factory[T]) *Responder[T] {
	return &Responder[T]{responder: r, factory: factory}
}

// Empty calls resp.Responder.Empty and converts the result.
func (ir *Responder[T]) Empty(opts ...resp.Fn) (T, error) {
	return ir.convert(ir.responder.Empty(opts...))
}

// Render calls resp.Responder.Render and converts the result.
func (ir *Responder[T]) Render(tmpl string, data map[string]any, opts ...resp.Fn) (T, error) {
	return ir.convert(ir.responder.Render(tmpl, data, opts...))
}

// Redirect calls resp.Responder.Redirect and converts the result.
func (ir *Responder[T]) Redirect(url string, opts ...resp.Fn) (T, error) {
	return ir.convert(ir.responder.Redirect(url, opts...))
}

// Route calls resp.Responder.Route and converts the result.
func (ir *Responder[T]) Route(name string, params map[string]string, opts ...resp.Fn) (T, error) {
	return ir.convert(ir.responder.Route(name, params, opts...))
}

// Json calls resp.Responder.Json and converts the result.
func (ir *Responder[T]) Json(data any, opts ...resp.Fn) (T, error) {
	return ir.convert(ir.responder.Json(data, opts...))
}

// File calls resp.Responder.File and converts the result.
func (ir *Responder[T]) File(fp string, opts ...resp.Fn) (T, error) {
	return ir.convert(ir.responder.File(fp, opts...))
}

func (ir *Responder[T]) convert(r *resp.Response, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}

	return ir.factory.CreateResponse(r)
}
