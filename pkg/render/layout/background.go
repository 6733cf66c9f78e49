package layout

import (
	"image/color"
	"sort"
	"strings"

	"github.com/mcbanners/banners/pkg/render/component"
)

// DefaultBackground names the template used when none is requested.
const DefaultBackground = "midnight"

const cornerRadius = 8

// Backgrounds are the named background templates.
var Backgrounds = map[string]component.Background{
	"midnight": {From: rgb(0x1f, 0x23, 0x33), To: rgb(0x2e, 0x34, 0x4a), Radius: cornerRadius},
	"slate":    {From: rgb(0x2b, 0x30, 0x3b), Radius: cornerRadius},
	"ocean":    {From: rgb(0x0f, 0x3b, 0x5f), To: rgb(0x1b, 0x6c, 0x8f), Radius: cornerRadius},
	"forest":   {From: rgb(0x1d, 0x3b, 0x2a), To: rgb(0x2f, 0x5d, 0x3a), Radius: cornerRadius},
	"sunset":   {From: rgb(0x6a, 0x1b, 0x3a), To: rgb(0xc0, 0x5a, 0x2b), Radius: cornerRadius},
	"ember":    {From: rgb(0x3a, 0x12, 0x12), To: rgb(0x7a, 0x25, 0x1c), Radius: cornerRadius},
	"grape":    {From: rgb(0x2d, 0x1b, 0x4e), To: rgb(0x55, 0x2c, 0x84), Radius: cornerRadius},
}

// BackgroundNames returns the template names in sorted order.
func BackgroundNames() []string {
	names := make([]string, 0, len(Backgrounds))
	for n := range Backgrounds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseBackground accepts a template name (case-insensitive), a single hex
// color, or two hex colors separated by a comma for a gradient.
func ParseBackground(s string) (component.Background, bool) {
	if bg, ok := Backgrounds[strings.ToLower(s)]; ok {
		return bg, true
	}
	from, to, gradient := strings.Cut(s, ",")
	c1, err := ParseColor(from)
	if err != nil {
		return component.Background{}, false
	}
	bg := component.Background{From: c1, Radius: cornerRadius}
	if gradient {
		c2, err := ParseColor(to)
		if err != nil {
			return component.Background{}, false
		}
		bg.To = c2
	}
	return bg, true
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
