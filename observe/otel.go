package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelObserver emits one client span per hedged call, with one event per
// attempt, via the supplied tracer.
type OTelObserver struct {
	BaseObserver
	tracer trace.Tracer
}

// NewOTelObserver builds an OTelObserver that starts spans on tracer.
func NewOTelObserver(tracer trace.Tracer) *OTelObserver {
	return &OTelObserver{tracer: tracer}
}

func (o *OTelObserver) OnSuccess(ctx context.Context, method string, tl Timeline) {
	o.record(ctx, method, tl, nil)
}

func (o *OTelObserver) OnFailure(ctx context.Context, method string, tl Timeline) {
	o.record(ctx, method, tl, tl.FinalErr)
}

func (o *OTelObserver) record(ctx context.Context, method string, tl Timeline, err error) {
	if o == nil || o.tracer == nil {
		return
	}

	startOpts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindClient)}
	if !tl.Start.IsZero() {
		startOpts = append(startOpts, trace.WithTimestamp(tl.Start))
	}
	_, span := o.tracer.Start(ctx, "hedgedrpc."+method, startOpts...)
	span.SetAttributes(
		attribute.String("hedgedrpc.method", method),
		attribute.Int("hedgedrpc.attempts", len(tl.Attempts)),
	)
	if tl.CallID != "" {
		span.SetAttributes(attribute.String("hedgedrpc.call_id", tl.CallID))
	}
	if tl.Winner != "" {
		span.SetAttributes(attribute.String("hedgedrpc.winner", string(tl.Winner)))
	}

	for _, attempt := range tl.Attempts {
		attrs := []attribute.KeyValue{
			attribute.Int("hedgedrpc.attempt", attempt.Attempt),
			attribute.Bool("hedgedrpc.hedge", attempt.IsHedge),
			attribute.String("hedgedrpc.provider", string(attempt.Provider)),
		}
		if attempt.Err != nil {
			attrs = append(attrs, attribute.String("hedgedrpc.error", attempt.Err.Error()))
		}
		eventOpts := []trace.EventOption{trace.WithAttributes(attrs...)}
		if !attempt.EndTime.IsZero() {
			eventOpts = append(eventOpts, trace.WithTimestamp(attempt.EndTime))
		}
		span.AddEvent("attempt", eventOpts...)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "success")
	}

	if !tl.End.IsZero() {
		span.End(trace.WithTimestamp(tl.End))
		return
	}
	span.End()
}
