package layout

import (
	"image/color"

	"github.com/mcbanners/banners/pkg/backend"
)

// Brand is the cosmetic identity of a backend.
type Brand struct {
	Name   string
	Accent color.RGBA
}

var brands = map[backend.Backend]Brand{
	backend.Spigot:     {"SpigotMC", rgb(0xed, 0x8c, 0x21)},
	backend.Ore:        {"Ore", rgb(0xf7, 0xcf, 0x0d)},
	backend.CurseForge: {"CurseForge", rgb(0xf1, 0x64, 0x36)},
	backend.Modrinth:   {"Modrinth", rgb(0x1b, 0xd9, 0x6a)},
	backend.Polymart:   {"Polymart", rgb(0x00, 0xa8, 0xe8)},
	backend.BuiltByBit: {"BuiltByBit", rgb(0x2f, 0x9f, 0xf8)},
}

var serverBrand = Brand{"Minecraft", rgb(0x62, 0xb4, 0x47)}

// BrandFor returns the branding of b. The zero backend gets the Minecraft
// server brand.
func BrandFor(b backend.Backend) Brand {
	if br, ok := brands[b]; ok {
		return br
	}
	return serverBrand
}

// Placeholder is the color drawn where an icon is missing.
func (b Brand) Placeholder() color.RGBA {
	return color.RGBA{R: b.Accent.R / 2, G: b.Accent.G / 2, B: b.Accent.B / 2, A: 0xff}
}
