package layout

import (
	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/render/component"
)

// ResourceLayout depicts a plugin, mod or product and its author.
type ResourceLayout struct {
	Resource *entity.Resource
	Author   *entity.Author // optional
	Backend  backend.Backend
}

func (l ResourceLayout) Build(opts Options) *component.Tree {
	r := l.Resource
	c := newCanvas(opts, BrandFor(l.Backend), r.Icon)
	c.title(r.Name)

	var by, version string
	if l.Author != nil && l.Author.Name != "" {
		by = "by " + l.Author.Name
	}
	if !opts.HideVersion && r.Version != "" {
		version = "v" + r.Version
	}
	c.detail(joinNonEmpty(by, version))

	if !opts.HideDownloads {
		c.detail(Count(r.Downloads, "download"))
	}

	var rating, reviews string
	if !opts.HideRating && r.HasRating() {
		rating = Rating(r.Rating)
	}
	if !opts.HideReviews {
		reviews = Count(int64(r.Reviews), "review")
	}
	c.detail(joinNonEmpty(rating, reviews))
	return c.finish()
}
