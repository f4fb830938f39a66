package utils

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TraceEndpointStep traces a specific step within an endpoint
func TraceEndpointStep(ctx context.Context, stepName string, attributes map[string]interface{}) (context.Context, trace.Span) {
	stepAttributes := map[string]interface{}{
		"step.name": stepName,
		"step.type": "endpoint_operation",
	}
	for k, v := range attributes {
		stepAttributes[k] = v
	}

	otelAttrs := make([]attribute.KeyValue, 0, len(stepAttributes))
	for k, v := range stepAttributes {
		otelAttrs = append(otelAttrs, spanAttribute(k, v))
	}

	return otel.Tracer("app-tenancy").Start(ctx, "endpoint.step."+stepName, trace.WithAttributes(otelAttrs...))
}

// TraceInputParsing traces request body and query parsing.
func TraceInputParsing(ctx context.Context, inputType string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "parse_input", map[string]interface{}{
		"input.type": inputType,
	})
}

// TraceInputValidation traces input validation operations.
func TraceInputValidation(ctx context.Context, validationType, field string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "validate_input", map[string]interface{}{
		"validation.type":  validationType,
		"validation.field": field,
	})
}

// TraceSessionLoad traces loading a form session from Redis.
func TraceSessionLoad(ctx context.Context, sessionID string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "session_load", map[string]interface{}{
		"session.id":        sessionID,
		"session.operation": "get",
	})
}

// TraceSessionSave traces writing a form session back to Redis.
func TraceSessionSave(ctx context.Context, sessionID string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "session_save", map[string]interface{}{
		"session.id":        sessionID,
		"session.operation": "set",
	})
}

// TraceDatabaseFind traces database find operations.
func TraceDatabaseFind(ctx context.Context, collection, filter string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "database_find", map[string]interface{}{
		"db.collection": collection,
		"db.filter":     filter,
		"db.operation":  "find",
	})
}

// TraceDatabaseUpdate traces database update operations.
func TraceDatabaseUpdate(ctx context.Context, collection, filter string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "database_update", map[string]interface{}{
		"db.collection": collection,
		"db.filter":     filter,
		"db.operation":  "update",
	})
}

// TraceBusinessLogic traces domain operations such as step validation or
// submission fan-out.
func TraceBusinessLogic(ctx context.Context, logicType string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "business_logic", map[string]interface{}{
		"logic.type": logicType,
	})
}

// TraceResponseSerialization traces response serialization operations.
func TraceResponseSerialization(ctx context.Context, responseType string) (context.Context, trace.Span) {
	return TraceEndpointStep(ctx, "serialize_response", map[string]interface{}{
		"response.type": responseType,
	})
}

// RecordErrorInSpan records an error in a span with additional context
func RecordErrorInSpan(span trace.Span, err error, context map[string]interface{}) {
	span.RecordError(err)
	for k, v := range context {
		span.SetAttributes(spanAttribute(k, v))
	}
}

// AddSpanAttribute adds a single attribute to a span
func AddSpanAttribute(span trace.Span, key string, value interface{}) {
	span.SetAttributes(spanAttribute(key, value))
}

func spanAttribute(key string, value interface{}) attribute.KeyValue {
	switch val := value.(type) {
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case bool:
		return attribute.Bool(key, val)
	case float64:
		return attribute.Float64(key, val)
	default:
		return attribute.String(key, "unknown_type")
	}
}
