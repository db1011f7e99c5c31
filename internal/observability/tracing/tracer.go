package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by pressroom.
const InstrumentationName = "pressroom"

// GetTracer returns the pressroom tracer from the global provider.
func GetTracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
