package sql

import (
	"context"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	uuid "github.com/satori/go.uuid"
)

// Context of a query compilation. It wraps a standard context.Context
// and carries the tracer and the compilation id used to correlate log
// lines and spans.
type Context struct {
	context.Context
	id        uuid.UUID
	queryTime time.Time
	tracer    opentracing.Tracer
}

// ContextOption is a function to configure the context.
type ContextOption func(*Context)

// WithTracer adds the given tracer to the context.
func WithTracer(t opentracing.Tracer) ContextOption {
	return func(ctx *Context) {
		ctx.tracer = t
	}
}

// NewContext creates a new compilation context. If no tracer is
// configured, a noop tracer is used.
func NewContext(ctx context.Context, opts ...ContextOption) *Context {
	c := &Context{
		Context:   ctx,
		id:        uuid.NewV4(),
		queryTime: time.Now(),
		tracer:    opentracing.NoopTracer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewEmptyContext returns a default context with default values.
func NewEmptyContext() *Context { return NewContext(context.TODO()) }

// Id returns the unique id of this compilation.
func (c *Context) Id() uuid.UUID { return c.id }

// QueryTime returns the time the context was created.
func (c *Context) QueryTime() time.Time { return c.queryTime }

// Span creates a new tracing span with the given context. It returns
// the span and a new context that should be passed to all children of
// this span.
func (c *Context) Span(
	opName string,
	opts ...opentracing.StartSpanOption,
) (opentracing.Span, *Context) {
	parentSpan := opentracing.SpanFromContext(c.Context)
	if parentSpan != nil {
		opts = append(opts, opentracing.ChildOf(parentSpan.Context()))
	}
	span := c.tracer.StartSpan(opName, opts...)
	ctx := opentracing.ContextWithSpan(c.Context, span)

	return span, c.WithContext(ctx)
}

// WithContext returns a new context with the given underlying context.
func (c *Context) WithContext(ctx context.Context) *Context {
	nc := *c
	nc.Context = ctx
	return &nc
}
