package logging

import "context"

type contextKey string

const (
	notebookKey contextKey = "notebook"
	openIDKey   contextKey = "open_id"
)

// WithNotebook adds the notebook URI to the context.
func WithNotebook(ctx context.Context, uri string) context.Context {
	return context.WithValue(ctx, notebookKey, uri)
}

// WithOpenID adds the id of a single open request to the context.
func WithOpenID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, openIDKey, id)
}

// GetNotebook retrieves the notebook URI from the context.
// Returns empty string if not present.
func GetNotebook(ctx context.Context) string {
	if uri, ok := ctx.Value(notebookKey).(string); ok {
		return uri
	}
	return ""
}

// GetOpenID retrieves the open request id from the context.
// Returns empty string if not present.
func GetOpenID(ctx context.Context) string {
	if id, ok := ctx.Value(openIDKey).(string); ok {
		return id
	}
	return ""
}
