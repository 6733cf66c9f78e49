package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/errors"
	"github.com/mcbanners/banners/pkg/observability"
	"github.com/mcbanners/banners/pkg/render/layout"
	"github.com/mcbanners/banners/pkg/render/sink"
	"github.com/mcbanners/banners/pkg/saved"
)

// Runner executes the pipeline.
//
// The Runner holds no per-request state. Multiple goroutines can safely use
// the same Runner.
type Runner struct {
	Resolver Resolver
	Composer sink.Composer
	Saved    *saved.Service
	Logger   *log.Logger

	closers []io.Closer
}

// NewRunner creates a runner. A nil store disables saved banners; a nil
// logger uses the default logger.
func NewRunner(r Resolver, store *saved.Service, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Resolver: r,
		Saved:    store,
		Logger:   logger,
	}
}

// Render resolves the entity for banner type t and draws it as format.
// Resolution errors keep their codes; see package errors for the mapping.
func (r *Runner) Render(ctx context.Context, t backend.BannerType, settings map[string]string, format sink.Format) (*Result, error) {
	hooks := observability.Pipeline()
	result := &Result{Format: format}

	// Stage 1: Resolve
	start := time.Now()
	hooks.OnResolveStart(ctx, string(t))
	resolved, err := r.Resolver.Resolve(ctx, t, settings)
	result.Stats.ResolveTime = time.Since(start)
	hooks.OnResolveComplete(ctx, string(t), result.Stats.ResolveTime, err)
	if err != nil {
		r.Logger.Debug("resolve failed",
			"type", t,
			"code", errors.GetCode(err),
			"duration", result.Stats.ResolveTime)
		return nil, err
	}
	result.Resolved = resolved

	r.Logger.Debug("resolved banner",
		"type", t,
		"backend", resolved.Backend,
		"duration", result.Stats.ResolveTime)

	// Stage 2: Layout
	start = time.Now()
	tree, err := layout.Build(resolved)
	result.Stats.LayoutTime = time.Since(start)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("built layout",
		"nodes", len(tree.Nodes),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Compose
	start = time.Now()
	hooks.OnRenderStart(ctx, string(format))
	data, contentType, err := r.Composer.Compose(tree, format)
	result.Stats.ComposeTime = time.Since(start)
	hooks.OnRenderComplete(ctx, string(format), len(data), result.Stats.ComposeTime, err)
	if err != nil {
		return nil, err
	}
	result.Image = data
	result.ContentType = contentType

	r.Logger.Debug("composed banner",
		"format", format,
		"bytes", len(data),
		"duration", result.Stats.ComposeTime)

	return result, nil
}

// Save stores settings for banner type t under a new mnemonic. The settings
// must carry every identifier key t needs; the entity itself is not looked
// up until the banner is recalled.
func (r *Runner) Save(ctx context.Context, t backend.BannerType, owner string, settings map[string]string) (*saved.Banner, error) {
	if r.Saved == nil {
		return nil, errors.New(errors.ErrCodeNotImplemented, "saved banners are disabled")
	}
	if !t.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidType, "unknown banner type %q", string(t))
	}
	for _, key := range t.RequiredKeys() {
		if strings.TrimSpace(settings[key]) == "" {
			return nil, errors.New(errors.ErrCodeInvalidSettings, "%s requires %s", t, key)
		}
	}

	b, err := r.Saved.Save(ctx, t, owner, settings)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("saved banner", "type", t, "mnemonic", b.Mnemonic)
	return b, nil
}

// Recall renders the banner saved under mnemonic.
func (r *Runner) Recall(ctx context.Context, mnemonic string, format sink.Format) (*Result, error) {
	if r.Saved == nil {
		return nil, errors.New(errors.ErrCodeNotImplemented, "saved banners are disabled")
	}
	b, err := r.Saved.Lookup(ctx, strings.ToLower(strings.TrimSpace(mnemonic)))
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, b.Type, b.Settings, format)
}

// Close releases the cache and store opened by [Setup].
func (r *Runner) Close(ctx context.Context) error {
	var errs []error
	if r.Saved != nil {
		errs = append(errs, r.Saved.Close(ctx))
	}
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return stderrors.Join(errs...)
}
