package reqctx

import "context"

// RequestContext carries per-request identity through service calls
type RequestContext struct {
	RequestID string
	UserID    string
	Locale    string
}

type ctxKey struct{}

// With stores rc in ctx
func With(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// From returns the RequestContext stored in ctx, if any
func From(ctx context.Context) (RequestContext, bool) {
	if ctx == nil {
		return RequestContext{}, false
	}
	rc, ok := ctx.Value(ctxKey{}).(RequestContext)
	return rc, ok
}

// UserID is a shortcut for From(ctx).UserID
func UserID(ctx context.Context) string {
	rc, _ := From(ctx)
	return rc.UserID
}

// RequestID is a shortcut for From(ctx).RequestID
func RequestID(ctx context.Context) string {
	rc, _ := From(ctx)
	return rc.RequestID
}
