package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are added to every record logged with a context that carries them.
type LogFields struct {
	Component  string  // e.g. "resource.dashboard"
	View       string  // owning view controller
	RequestID  *string // activation or mutation correlation ID, sent as X-Request-ID
	Generation *uint64 // activation generation
	Mutation   string  // mutation name, e.g. "add_experience"
}

// WithLogFields enriches ctx. Non-empty values in fields replace existing ones.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields returns the fields on ctx, or the zero value.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.Component != "" {
		result.Component = next.Component
	}
	if next.View != "" {
		result.View = next.View
	}
	if next.RequestID != nil {
		result.RequestID = next.RequestID
	}
	if next.Generation != nil {
		result.Generation = next.Generation
	}
	if next.Mutation != "" {
		result.Mutation = next.Mutation
	}

	return result
}

// Ptr returns a pointer to v, for inline LogFields values.
func Ptr[T any](v T) *T {
	return &v
}
