package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/taskkeeper/internal/server/services"

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}

// endSpan closes span, marking it failed only for internal errors;
// domain rejections such as a wrong password are normal outcomes.
func endSpan(span trace.Span, err error) {
	if err != nil && errors.Is(err, common.ErrorInternal) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
