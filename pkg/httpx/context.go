package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject holds the authenticated subject (account email).
	CtxKeySubject ctxKey = "subject"
	// CtxKeyRole holds the authenticated account's role name.
	CtxKeyRole ctxKey = "role"
)

// WithSubject records the authenticated subject and role in the context for
// downstream middleware (rate limiting, logging).
func WithSubject(ctx context.Context, subject, role string) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, subject)
	return context.WithValue(ctx, CtxKeyRole, role)
}

// SubjectFromCtx returns the authenticated subject, or "" when the request
// is anonymous.
func SubjectFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
