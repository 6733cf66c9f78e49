// Package layout turns resolved entities into component trees.
//
// There is one layout per entity category. Every layout draws on the same
// 300x100 canvas: background, a backend-colored accent bar, an optional icon
// on the left, a title and up to three detail lines. The backend tag only
// picks branding; layouts never look at backend-specific data.
//
// Style settings are parsed once with [ParseOptions]. Recognized keys toggle
// or override one visual aspect each; anything else is ignored.
package layout

import (
	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/banner"
	"github.com/mcbanners/banners/pkg/errors"
	"github.com/mcbanners/banners/pkg/fonts"
	"github.com/mcbanners/banners/pkg/render/component"
)

// Canvas geometry.
const (
	Width  = 300
	Height = 100

	accentWidth = 4
	iconX       = 12
	iconY       = 14
	iconSize    = 72
	textX       = iconX + iconSize + 12
	textXNoIcon = iconX + 4

	titleY    = 30
	titleSize = 18
	lineSize  = 12
	lineGap   = 17
	brandSize = 9

	// maxBaseline is the lowest baseline a detail may use.
	maxBaseline = Height - 10
	titleLines  = 2
	motdLines   = 2
)

// Layout builds the component tree of one banner.
type Layout interface {
	Build(opts Options) *component.Tree
}

// ForResolved picks the layout matching r's category.
func ForResolved(r *banner.Resolved) (Layout, error) {
	switch r.Category {
	case backend.CategoryAuthor:
		if r.Author != nil {
			return AuthorLayout{Author: r.Author, Backend: r.Backend}, nil
		}
	case backend.CategoryResource:
		if r.Resource != nil {
			return ResourceLayout{Resource: r.Resource, Author: r.Author, Backend: r.Backend}, nil
		}
	case backend.CategoryServer:
		if r.Server != nil {
			return ServerLayout{Server: r.Server}, nil
		}
	case backend.CategoryMember:
		if r.Member != nil {
			return MemberLayout{Member: r.Member, Backend: r.Backend}, nil
		}
	case backend.CategoryTeam:
		if r.Team != nil {
			return TeamLayout{Team: r.Team, Backend: r.Backend}, nil
		}
	case backend.CategoryDiscordUser:
		return nil, errors.New(errors.ErrCodeNotImplemented, "no layout for %s banners", r.Type)
	}
	return nil, errors.New(errors.ErrCodeInternal, "resolved %s banner has no %s entity", r.Type, r.Category)
}

// Build lays out r using its style settings.
func Build(r *banner.Resolved) (*component.Tree, error) {
	l, err := ForResolved(r)
	if err != nil {
		return nil, err
	}
	return l.Build(ParseOptions(r.Settings)), nil
}

// canvas collects the pieces every layout shares. Text nodes stack downward:
// bottom is the baseline of the last line drawn so far.
type canvas struct {
	tree    *component.Tree
	opts    Options
	brand   Brand
	measure component.Measurer
	x       float64
	bottom  float64
}

func newCanvas(opts Options, brand Brand, icon []byte) *canvas {
	c := &canvas{
		tree:    component.New(Width, Height, opts.Background),
		opts:    opts,
		brand:   brand,
		measure: fonts.Measurer{},
		x:       textXNoIcon,
	}
	c.tree.Add(component.Rect{W: accentWidth, H: Height, Color: brand.Accent})
	if !opts.HideIcon {
		c.tree.Add(component.Image{
			X: iconX, Y: iconY, W: iconSize, H: iconSize,
			Data:        icon,
			Placeholder: brand.Placeholder(),
		})
		c.x = textX
	}
	return c
}

// title draws the wrapped, truncated entity name.
func (c *canvas) title(name string) {
	t := component.Text{
		X: c.x, Y: titleY, Size: titleSize,
		Color:   c.opts.TitleColor,
		Bold:    c.opts.Bold,
		Font:    c.opts.Font,
		Content: name,
		Wrap:    &component.Wrap{MaxLength: c.opts.MaxNameLength, MaxLines: titleLines},
	}
	c.tree.Add(t)
	c.bottom = titleY + 2
	if lines := t.Lines(Width, c.measure); len(lines) > 0 {
		c.bottom = lines[len(lines)-1].Y + 2
	}
}

// detail draws the next detail line under the previous text. Empty content
// and content that no longer fits above maxBaseline are skipped.
func (c *canvas) detail(content string) {
	y := c.bottom + lineGap
	if content == "" || y > maxBaseline {
		return
	}
	c.tree.Add(component.Text{
		X: c.x, Y: y, Size: lineSize,
		Color:   c.opts.TextColor,
		Font:    c.opts.Font,
		Content: content,
	})
	c.bottom = y
}

// wrapped draws a detail that may span several lines, such as a MOTD. It
// takes at most motdLines lines and never more than fit above maxBaseline.
func (c *canvas) wrapped(content string, maxLength int) {
	y := c.bottom + lineGap
	if content == "" || y > maxBaseline {
		return
	}
	t := component.Text{
		X: c.x, Y: y, Size: lineSize - 1,
		Color:   c.opts.TextColor,
		Font:    c.opts.Font,
		Content: content,
	}
	room := 1 + int((maxBaseline-y)/t.LineHeight())
	t.Wrap = &component.Wrap{MaxLength: maxLength, MaxLines: min(motdLines, room)}
	lines := t.Lines(Width, c.measure)
	if len(lines) == 0 {
		return
	}
	c.tree.Add(t)
	c.bottom = lines[len(lines)-1].Y
}

func (c *canvas) finish() *component.Tree {
	c.tree.Add(component.Text{
		X: Width - 8, Y: Height - 7, Size: brandSize,
		Color:   c.brand.Accent,
		Bold:    true,
		Align:   component.AlignRight,
		Font:    c.opts.Font,
		Content: c.brand.Name,
	})
	return c.tree
}

// joinNonEmpty joins parts with a separator dot, skipping empty ones.
func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " · "
		}
		out += p
	}
	return out
}
