package core

import "context"

// Context keys for command options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	commandNameKey    contextKey = "commandName"
	runIDKey          contextKey = "runID"
)

// withSuppressHeader sets whether headers should be suppressed in the context
func withSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// WithSuppressHeader marks the context so that no progress header is printed.
// Callers that own stdout themselves (such as the MCP server) use it.
func WithSuppressHeader(ctx context.Context) context.Context {
	return withSuppressHeader(ctx)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithCommand names the command a render run is recorded under.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandNameKey, name)
}

// commandName returns the command name from context, defaulting to "render".
func commandName(ctx context.Context) string {
	if name, ok := ctx.Value(commandNameKey).(string); ok && name != "" {
		return name
	}
	return "render"
}

// withRunID stores the ID of the render run being recorded
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the run ID from context, if any
func getRunID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(runIDKey).(int64)
	return id, ok
}
