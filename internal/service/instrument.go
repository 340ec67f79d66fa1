package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/forgefit/planforge/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "workout-plan-service"

// startOp opens a span for a service operation and returns a done func that
// closes it and logs the operation when it ran past the slow-op threshold.
// Observability only; never control flow.
func (s *WorkoutPlanService) startOp(ctx context.Context, op string) (context.Context, func()) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "WorkoutPlanService."+op, trace.WithSpanKind(trace.SpanKindInternal))
	start := time.Now()

	return ctx, func() {
		span.End()
		if elapsed := time.Since(start); s.slowOpThreshold > 0 && elapsed > s.slowOpThreshold {
			s.logger.Printf("slow operation: %s took %s (threshold %s)", op, elapsed, s.slowOpThreshold)
		}
	}
}

// fail applies the operation error policy: expected domain errors propagate
// verbatim; anything else is logged with operation context and rewrapped as a
// ServiceError with the original error attached as cause.
func (s *WorkoutPlanService) fail(op string, err error, kv ...string) error {
	if err == nil {
		return nil
	}
	if domain.IsDomainError(err) {
		return err
	}

	var fields []string
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, fmt.Sprintf("%s=%s", kv[i], kv[i+1]))
	}
	s.logger.Printf("%s: unexpected error [%s]: %v", op, strings.Join(fields, " "), err)

	return &domain.ServiceError{Op: op, Err: err}
}
