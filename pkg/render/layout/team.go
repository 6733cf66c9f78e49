package layout

import (
	"fmt"
	"strings"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/render/component"
)

// maxListedMembers caps the roster line; the rest are summarized as "+N".
const maxListedMembers = 3

// TeamLayout depicts a publishing team.
type TeamLayout struct {
	Team    *entity.Team
	Backend backend.Backend
}

func (l TeamLayout) Build(opts Options) *component.Tree {
	t := l.Team
	c := newCanvas(opts, BrandFor(l.Backend), t.Icon)
	c.title(t.Name)

	if !opts.HideMembers {
		c.detail(roster(t.Members))
	}

	var downloads string
	if !opts.HideDownloads {
		downloads = Count(t.Downloads, "download")
	}
	c.detail(joinNonEmpty(Count(int64(t.ResourceCount), "resource"), downloads))

	if !opts.HideRating && t.HasRating() {
		c.detail(Rating(t.Rating))
	}
	return c.finish()
}

func roster(members []entity.TeamMember) string {
	if len(members) == 0 {
		return ""
	}
	names := make([]string, 0, maxListedMembers)
	for i, m := range members {
		if i == maxListedMembers {
			break
		}
		names = append(names, m.Name)
	}
	out := strings.Join(names, ", ")
	if extra := len(members) - len(names); extra > 0 {
		out += fmt.Sprintf(" +%d", extra)
	}
	return out
}
