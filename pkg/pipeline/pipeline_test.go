package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/banner"
	"github.com/mcbanners/banners/pkg/cache"
	"github.com/mcbanners/banners/pkg/config"
	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/errors"
	"github.com/mcbanners/banners/pkg/observability"
	"github.com/mcbanners/banners/pkg/render/sink"
	"github.com/mcbanners/banners/pkg/saved"
)

type stubResolver struct {
	mu    sync.Mutex
	calls []map[string]string
	err   error
}

func (s *stubResolver) Resolve(_ context.Context, t backend.BannerType, settings map[string]string) (*banner.Resolved, error) {
	s.mu.Lock()
	s.calls = append(s.calls, settings)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	b, _ := t.Backend()
	return &banner.Resolved{
		Type:     t,
		Category: t.Category(),
		Backend:  b,
		Author: &entity.Author{
			Name:          "md_5",
			ResourceCount: 12,
			Downloads:     1500000,
			Rating:        4.5,
			Reviews:       320,
		},
		Settings: banner.StyleSettings(settings),
	}, nil
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestRunner(r Resolver) *Runner {
	return NewRunner(r, saved.NewService(saved.NewMemoryStore()), quietLogger())
}

func TestRenderPNG(t *testing.T) {
	r := newTestRunner(&stubResolver{})

	res, err := r.Render(context.Background(), backend.SpigotAuthor, map[string]string{backend.KeyAuthorID: "1"}, sink.PNG)
	require.NoError(t, err)

	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, sink.PNG, res.Format)
	require.NotNil(t, res.Resolved)
	assert.Equal(t, "md_5", res.Resolved.Author.Name)

	img, err := png.Decode(bytes.NewReader(res.Image))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
	assert.GreaterOrEqual(t, res.Stats.Total(), res.Stats.ComposeTime)
}

func TestRenderJPEG(t *testing.T) {
	r := newTestRunner(&stubResolver{})

	res, err := r.Render(context.Background(), backend.ModrinthAuthor, map[string]string{backend.KeyAuthorID: "jelly"}, sink.JPEG)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", res.ContentType)
	assert.True(t, bytes.HasPrefix(res.Image, []byte{0xFF, 0xD8}))
}

func TestRenderDeterministic(t *testing.T) {
	r := newTestRunner(&stubResolver{})
	settings := map[string]string{backend.KeyAuthorID: "1", "background": "ocean"}

	a, err := r.Render(context.Background(), backend.SpigotAuthor, settings, sink.PNG)
	require.NoError(t, err)
	b, err := r.Render(context.Background(), backend.SpigotAuthor, settings, sink.PNG)
	require.NoError(t, err)
	assert.Equal(t, a.Image, b.Image)
}

func TestRenderPropagatesResolveError(t *testing.T) {
	r := newTestRunner(&stubResolver{
		err: errors.New(errors.ErrCodeUpstreamUnavailable, "spigot down"),
	})

	_, err := r.Render(context.Background(), backend.SpigotAuthor, map[string]string{backend.KeyAuthorID: "1"}, sink.PNG)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUpstreamUnavailable))
	assert.Equal(t, errors.ErrCodeNotFound, errors.Kind(err))
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	r := newTestRunner(&stubResolver{})

	_, err := r.Render(context.Background(), backend.SpigotAuthor, map[string]string{backend.KeyAuthorID: "1"}, sink.Format("gif"))
	assert.True(t, errors.Is(err, errors.ErrCodeCompositionFailure))
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	h.events = append(h.events, e)
	h.mu.Unlock()
}

func (h *recordingHooks) OnResolveStart(_ context.Context, t string) { h.add("resolve:" + t) }
func (h *recordingHooks) OnResolveComplete(context.Context, string, time.Duration, error) {
	h.add("resolved")
}
func (h *recordingHooks) OnRenderStart(_ context.Context, f string) { h.add("render:" + f) }
func (h *recordingHooks) OnRenderComplete(_ context.Context, _ string, size int, _ time.Duration, err error) {
	if err == nil && size > 0 {
		h.add("rendered")
	}
}

func TestRenderHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := newTestRunner(&stubResolver{})
	_, err := r.Render(context.Background(), backend.SpigotAuthor, map[string]string{backend.KeyAuthorID: "1"}, sink.PNG)
	require.NoError(t, err)

	assert.Equal(t, []string{"resolve:SPIGOT_AUTHOR", "resolved", "render:png", "rendered"}, hooks.events)
}

func TestSaveAndRecall(t *testing.T) {
	res := &stubResolver{}
	r := newTestRunner(res)
	ctx := context.Background()

	settings := map[string]string{backend.KeyAuthorID: "1", "background": "grape"}
	b, err := r.Save(ctx, backend.SpigotAuthor, "owner-1", settings)
	require.NoError(t, err)
	assert.Len(t, b.Mnemonic, saved.MnemonicLength)
	assert.Empty(t, res.calls, "saving must not resolve")

	out, err := r.Recall(ctx, "  "+b.Mnemonic+" ", sink.PNG)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Image)
	require.Len(t, res.calls, 1)
	assert.Equal(t, settings, res.calls[0])
}

func TestSaveValidates(t *testing.T) {
	r := newTestRunner(&stubResolver{})
	ctx := context.Background()

	_, err := r.Save(ctx, backend.BannerType("NOPE"), "", nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidType))

	_, err = r.Save(ctx, backend.SpigotResource, "", map[string]string{backend.KeyResourceID: "  "})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSettings))
}

func TestRecallMissing(t *testing.T) {
	r := newTestRunner(&stubResolver{})

	_, err := r.Recall(context.Background(), "nosuchcode", sink.PNG)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestSavedDisabled(t *testing.T) {
	r := NewRunner(&stubResolver{}, nil, quietLogger())
	ctx := context.Background()

	_, err := r.Save(ctx, backend.SpigotAuthor, "", map[string]string{backend.KeyAuthorID: "1"})
	assert.True(t, errors.Is(err, errors.ErrCodeNotImplemented))
	_, err = r.Recall(ctx, "abc", sink.PNG)
	assert.True(t, errors.Is(err, errors.ErrCodeNotImplemented))
	assert.NoError(t, r.Close(ctx))
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	c, err := OpenCache(ctx, config.CacheConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache{}, c)

	require.NoError(t, c.Close())

	c, err = OpenCache(ctx, config.CacheConfig{Driver: "memory", SweepInterval: time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Millisecond))
	assert.Eventually(t, func() bool {
		return c.(*cache.MemoryCache).Len() == 0
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())

	c, err = OpenCache(ctx, config.CacheConfig{Driver: "none"})
	require.NoError(t, err)
	assert.IsType(t, cache.NullCache{}, c)

	c, err = OpenCache(ctx, config.CacheConfig{Driver: "file", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &cache.FileCache{}, c)

	_, err = OpenCache(ctx, config.CacheConfig{Driver: "etcd"})
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	s, err := OpenStore(context.Background(), config.StoreConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &saved.MemoryStore{}, s)

	_, err = OpenStore(context.Background(), config.StoreConfig{Driver: "sqlite"})
	assert.Error(t, err)
}

func TestUpstreamOptions(t *testing.T) {
	cfg := config.Default().Upstream
	cfg.BaseURLs = map[string]string{"modrinth": "http://localhost:1/v2", "mcapi": "http://localhost:2"}

	shared, per := UpstreamOptions(cfg, quietLogger())
	assert.Len(t, shared, 5)
	assert.Len(t, per["modrinth"], 1)
	assert.Len(t, per["mcapi"], 1)
	assert.Empty(t, per["spigot"])
}

func TestSetup(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Cache.Driver = "none"

	r, err := Setup(ctx, cfg, quietLogger())
	require.NoError(t, err)
	require.NotNil(t, r.Resolver)
	require.NotNil(t, r.Saved)

	_, err = r.Render(ctx, backend.DiscordUser, nil, sink.PNG)
	assert.True(t, errors.Is(err, errors.ErrCodeNotImplemented))
	assert.NoError(t, r.Close(ctx))
}
