package layout

import (
	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/render/component"
)

// MemberLayout depicts a marketplace community member.
type MemberLayout struct {
	Member  *entity.Member
	Backend backend.Backend
}

func (l MemberLayout) Build(opts Options) *component.Tree {
	m := l.Member
	c := newCanvas(opts, BrandFor(l.Backend), m.Icon)
	c.title(m.Name)
	c.detail(m.Role)
	c.detail(Count(int64(m.ResourceCount), "resource"))
	return c.finish()
}
