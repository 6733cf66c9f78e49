// Package fonts provides the font faces banners are drawn with.
//
// The Go font family ships inside golang.org/x/image as TTF data, so the
// binary needs no font files at runtime. Parsed fonts are shared; faces are
// not, since an opentype face keeps per-use glyph buffers. Call [Face] once
// per drawing context.
package fonts

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"
)

// Family names accepted in the "font" style setting.
const (
	Sans      = "sans"
	Mono      = "mono"
	Medium    = "medium"
	SmallCaps = "smallcaps"
)

// Default is used when a family is empty or unknown.
const Default = Sans

type variant struct {
	regular []byte
	bold    []byte
}

var families = map[string]variant{
	Sans:      {goregular.TTF, gobold.TTF},
	Mono:      {gomono.TTF, gomonobold.TTF},
	Medium:    {gomedium.TTF, gobold.TTF},
	SmallCaps: {gosmallcaps.TTF, gobold.TTF},
}

var (
	mu     sync.Mutex
	parsed = map[string]*opentype.Font{}
)

// Families returns the known family names.
func Families() []string {
	return []string{Sans, Mono, Medium, SmallCaps}
}

// Normalize maps a user-supplied family name to a known one.
func Normalize(family string) string {
	family = strings.ToLower(strings.TrimSpace(family))
	if _, ok := families[family]; ok {
		return family
	}
	return Default
}

// Font returns the parsed font for family, parsing it on first use.
func Font(family string, bold bool) (*opentype.Font, error) {
	family = Normalize(family)
	key := family
	if bold {
		key += "-bold"
	}

	mu.Lock()
	defer mu.Unlock()
	if f, ok := parsed[key]; ok {
		return f, nil
	}

	v := families[family]
	data := v.regular
	if bold {
		data = v.bold
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", key, err)
	}
	parsed[key] = f
	return f, nil
}

// Face returns a new face for family at size points (72 DPI, so one point
// is one pixel).
func Face(family string, bold bool, size float64) (font.Face, error) {
	f, err := Font(family, bold)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Measurer measures text with the embedded fonts.
type Measurer struct{}

// Measure returns the advance width of s in pixels.
func (Measurer) Measure(s, family string, bold bool, size float64) float64 {
	face, err := Face(family, bold, size)
	if err != nil {
		return 0
	}
	defer face.Close()
	return float64(font.MeasureString(face, s)) / 64
}
