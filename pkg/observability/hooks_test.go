package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Draw hooks
	d := NoopDrawHooks{}
	d.OnParseStart(ctx, "tree.nw")
	d.OnParseComplete(ctx, "tree.nw", 100, time.Second, nil)
	d.OnDrawStart(ctx, "Full", 100)
	d.OnDrawComplete(ctx, "Full", 250, time.Second, nil)
	d.OnRenderStart(ctx, "svg")
	d.OnRenderComplete(ctx, "svg", 4096, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "draw")
	c.OnCacheMiss(ctx, "tree")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "localhost", "/trees")
	h.OnResponse(ctx, "GET", "localhost", "/trees", 200, time.Second)
	h.OnError(ctx, "GET", "localhost", "/trees", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Draw().(NoopDrawHooks); !ok {
		t.Error("Draw() should return NoopDrawHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customDraw := &testDrawHooks{}
	SetDrawHooks(customDraw)
	if Draw() != customDraw {
		t.Error("SetDrawHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Draw().(NoopDrawHooks); !ok {
		t.Error("Reset() should restore NoopDrawHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testDrawHooks{}
	SetDrawHooks(custom)
	SetDrawHooks(nil)
	if Draw() != custom {
		t.Error("SetDrawHooks(nil) should be ignored")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &testDrawHooks{}
	SetDrawHooks(h)
	Draw().OnDrawComplete(context.Background(), "Lengths", 16, time.Millisecond, nil)
	if h.drawer != "Lengths" || h.primitives != 16 {
		t.Errorf("got drawer=%q primitives=%d", h.drawer, h.primitives)
	}
}

type testDrawHooks struct {
	NoopDrawHooks
	drawer     string
	primitives int
}

func (h *testDrawHooks) OnDrawComplete(_ context.Context, drawer string, primitives int, _ time.Duration, _ error) {
	h.drawer, h.primitives = drawer, primitives
}

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
