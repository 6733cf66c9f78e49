package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnResolveStart(ctx, "SPIGOT_AUTHOR")
	p.OnResolveComplete(ctx, "SPIGOT_AUTHOR", time.Second, nil)
	p.OnRenderStart(ctx, "png")
	p.OnRenderComplete(ctx, "png", 2048, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "entity:author:spigot:42")
	c.OnCacheMiss(ctx, "entity:author:spigot:42")
	c.OnCacheSet(ctx, "entity:author:spigot:42", 1024)
	c.OnCacheSkip(ctx, "entity:author:spigot:42", errors.New("down"))

	// Upstream hooks
	u := NoopUpstreamHooks{}
	u.OnRequest(ctx, "spigot", "GET", "https://api.spigotmc.org/simple/0.2/index.php")
	u.OnResponse(ctx, "spigot", "GET", "https://api.spigotmc.org/simple/0.2/index.php", 200, time.Second)
	u.OnError(ctx, "spigot", "GET", "https://api.spigotmc.org/simple/0.2/index.php", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Upstream().(NoopUpstreamHooks); !ok {
		t.Error("Upstream() should return NoopUpstreamHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customUpstream := &testUpstreamHooks{}
	SetUpstreamHooks(customUpstream)
	if Upstream() != customUpstream {
		t.Error("SetUpstreamHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testUpstreamHooks struct{ NoopUpstreamHooks }
