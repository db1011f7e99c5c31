// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created through the global tracer. Seeding steps and HTTP requests
// are traced; without a configured TracerProvider the spans are no-ops.
//
// Example usage:
//
//	import "pressroom/internal/observability/tracing"
//
//	func seedStep(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "seed.step")
//	    defer span.End()
//	    // ... truncate and insert ...
//	}
//
//	handler := tracing.Middleware(mux)
package tracing
