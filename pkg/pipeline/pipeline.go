// Package pipeline runs the resolve → layout → compose pipeline that turns a
// banner request into an image.
//
// The CLI and the HTTP server share one [Runner], so both entry points see
// the same caching, error codes and logging.
//
// # Stages
//
//  1. Resolve: look up the entity behind the banner type and settings
//  2. Layout: build the component tree for the entity's category
//  3. Compose: draw the tree and encode it as PNG or JPEG
//
// Saved banners store only the request. [Runner.Recall] looks the request up
// by mnemonic and runs the pipeline again, so recalled images stay current.
//
// # Usage
//
//	runner, err := pipeline.Setup(ctx, cfg, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer runner.Close(ctx)
//
//	res, err := runner.Render(ctx, backend.SpigotAuthor, map[string]string{"_author_id": "1"}, sink.PNG)
package pipeline

import (
	"context"
	"time"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/banner"
	"github.com/mcbanners/banners/pkg/render/sink"
)

// Resolver looks up the entity a banner depicts.
type Resolver interface {
	Resolve(ctx context.Context, t backend.BannerType, settings map[string]string) (*banner.Resolved, error)
}

// Result is a rendered banner.
type Result struct {
	Image       []byte
	ContentType string
	Format      sink.Format
	Resolved    *banner.Resolved
	Stats       Stats
}

// Stats records how long each stage took.
type Stats struct {
	ResolveTime time.Duration
	LayoutTime  time.Duration
	ComposeTime time.Duration
}

// Total is the time spent across all stages.
func (s Stats) Total() time.Duration {
	return s.ResolveTime + s.LayoutTime + s.ComposeTime
}
