package layout

import (
	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/render/component"
)

// AuthorLayout depicts a resource publisher.
type AuthorLayout struct {
	Author  *entity.Author
	Backend backend.Backend
}

func (l AuthorLayout) Build(opts Options) *component.Tree {
	a := l.Author
	c := newCanvas(opts, BrandFor(l.Backend), a.Icon)
	c.title(a.Name)
	c.detail(Count(int64(a.ResourceCount), "resource"))

	var downloads, rating, reviews string
	if !opts.HideDownloads {
		downloads = Count(a.Downloads, "download")
	}
	if !opts.HideRating && a.HasRating() {
		rating = Rating(a.Rating)
	}
	if !opts.HideReviews {
		reviews = Count(int64(a.Reviews), "review")
	}
	c.detail(downloads)
	c.detail(joinNonEmpty(rating, reviews))
	return c.finish()
}
