package paneflow

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware creates a pane middleware that opens a span around
// the submit fan-out. The span carries the pane id and the number of
// registered forms at submit time.
func TracingMiddleware(tracer trace.Tracer) PaneMiddleware {
	return func(next PaneRunnerFunc) PaneRunnerFunc {
		return func(ctx context.Context, pane *Pane, logger Logger) error {
			ctx, span := tracer.Start(ctx, "pane.submit",
				trace.WithAttributes(
					attribute.String("pane.id", pane.ID),
					attribute.Int("pane.form_count", len(pane.FormIDs())),
				),
			)
			defer span.End()

			err := next(ctx, pane, logger)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}

			return err
		}
	}
}
