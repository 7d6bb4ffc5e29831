package logging

import (
	"context"
	"maps"
)

type contextKey struct{}

// ContextWithFields returns a child context carrying fields that the console
// provider merges into every entry logged through WithContext. Fields already
// on ctx are kept unless overridden.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextKey{}, merged)
}

// ContextFields returns a copy of the fields attached to ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(contextKey{}).(map[string]any)
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// ContextWithRequest tags ctx with the request id and route used by the HTTP
// and MCP surfaces.
func ContextWithRequest(ctx context.Context, requestID, route string) context.Context {
	fields := map[string]any{}
	if requestID != "" {
		fields["request_id"] = requestID
	}
	if route != "" {
		fields["route"] = route
	}
	return ContextWithFields(ctx, fields)
}
