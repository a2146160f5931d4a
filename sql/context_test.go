package sql

import (
	"context"
	"testing"

	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/require"
)

func TestContextSpan(t *testing.T) {
	require := require.New(t)

	tracer := mocktracer.New()
	ctx := NewContext(context.Background(), WithTracer(tracer))

	span, child := ctx.Span("compile")
	innerSpan, _ := child.Span("optimize")
	innerSpan.Finish()
	span.Finish()

	spans := tracer.FinishedSpans()
	require.Len(spans, 2)
	require.Equal("optimize", spans[0].OperationName)
	require.Equal("compile", spans[1].OperationName)
	// The inner span is a child of the outer one.
	require.Equal(spans[1].SpanContext.SpanID, spans[0].ParentID)
}

func TestContextIds(t *testing.T) {
	require := require.New(t)

	a := NewEmptyContext()
	b := NewEmptyContext()
	require.NotEqual(a.Id(), b.Id())
	require.False(a.QueryTime().IsZero())
}
