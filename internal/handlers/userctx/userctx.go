package userctx

import (
	"context"
)

type ctxKey string

const subjectKey ctxKey = "subject"

// Create a new context with the authenticated token subject
func New(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// Extract the subject from the context
func FromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}
