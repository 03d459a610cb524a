package reqctx

import (
	"context"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	ctx := With(context.Background(), RequestContext{RequestID: "req-1", UserID: "u-1", Locale: "de"})

	rc, ok := From(ctx)
	if !ok {
		t.Fatal("expected request context")
	}
	if rc.RequestID != "req-1" || rc.UserID != "u-1" || rc.Locale != "de" {
		t.Errorf("unexpected context: %+v", rc)
	}
	if UserID(ctx) != "u-1" || RequestID(ctx) != "req-1" {
		t.Error("shortcut accessors disagree with From")
	}
}

func TestMissing(t *testing.T) {
	if _, ok := From(context.Background()); ok {
		t.Fatal("expected no request context")
	}
	if UserID(context.Background()) != "" {
		t.Error("expected empty user id")
	}
}
