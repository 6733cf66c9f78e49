package layout

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/mcbanners/banners/pkg/fonts"
	"github.com/mcbanners/banners/pkg/render/component"
)

// Style setting keys. Any other key is ignored.
const (
	KeyBackground    = "background"
	KeyTextColor     = "text_color"
	KeyTitleColor    = "title_color"
	KeyFont          = "font"
	KeyBold          = "bold"
	KeyHideIcon      = "hide_icon"
	KeyHideDownloads = "hide_downloads"
	KeyHideRating    = "hide_rating"
	KeyHideReviews   = "hide_reviews"
	KeyHideVersion   = "hide_version"
	KeyHidePlayers   = "hide_players"
	KeyHideMembers   = "hide_members"
	KeyMaxNameLength = "max_name_length"
	KeyMaxMOTDLength = "max_motd_length"
)

// OptionKeys lists the recognized style setting keys.
func OptionKeys() []string {
	return []string{
		KeyBackground, KeyTextColor, KeyTitleColor, KeyFont, KeyBold,
		KeyHideIcon, KeyHideDownloads, KeyHideRating, KeyHideReviews,
		KeyHideVersion, KeyHidePlayers, KeyHideMembers,
		KeyMaxNameLength, KeyMaxMOTDLength,
	}
}

// Options is the parsed form of a banner's style settings.
type Options struct {
	Background component.Background
	TextColor  color.RGBA
	TitleColor color.RGBA
	Font       string
	Bold       bool

	HideIcon      bool
	HideDownloads bool
	HideRating    bool
	HideReviews   bool
	HideVersion   bool
	HidePlayers   bool
	HideMembers   bool

	MaxNameLength int
	MaxMOTDLength int
}

// DefaultOptions returns the style used when no settings are given.
func DefaultOptions() Options {
	return Options{
		Background:    Backgrounds[DefaultBackground],
		TextColor:     color.RGBA{0xd8, 0xde, 0xe9, 0xff},
		TitleColor:    color.RGBA{0xff, 0xff, 0xff, 0xff},
		Font:          fonts.Default,
		Bold:          true,
		MaxNameLength: 28,
		MaxMOTDLength: 80,
	}
}

// ParseOptions reads style settings on top of [DefaultOptions]. Unknown keys
// and malformed values are ignored.
func ParseOptions(settings map[string]string) Options {
	o := DefaultOptions()
	for key, raw := range settings {
		v := strings.TrimSpace(raw)
		switch strings.ToLower(key) {
		case KeyBackground:
			if bg, ok := ParseBackground(v); ok {
				o.Background = bg
			}
		case KeyTextColor:
			setColor(&o.TextColor, v)
		case KeyTitleColor:
			setColor(&o.TitleColor, v)
		case KeyFont:
			o.Font = fonts.Normalize(v)
		case KeyBold:
			setBool(&o.Bold, v)
		case KeyHideIcon:
			setBool(&o.HideIcon, v)
		case KeyHideDownloads:
			setBool(&o.HideDownloads, v)
		case KeyHideRating:
			setBool(&o.HideRating, v)
		case KeyHideReviews:
			setBool(&o.HideReviews, v)
		case KeyHideVersion:
			setBool(&o.HideVersion, v)
		case KeyHidePlayers:
			setBool(&o.HidePlayers, v)
		case KeyHideMembers:
			setBool(&o.HideMembers, v)
		case KeyMaxNameLength:
			setLength(&o.MaxNameLength, v)
		case KeyMaxMOTDLength:
			setLength(&o.MaxMOTDLength, v)
		}
	}
	return o
}

func setBool(dst *bool, v string) {
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}

func setLength(dst *int, v string) {
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		*dst = n
	}
}

func setColor(dst *color.RGBA, v string) {
	if c, err := ParseColor(v); err == nil {
		*dst = c
	}
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa, with or without the hash.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}
