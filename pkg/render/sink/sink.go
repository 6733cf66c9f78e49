// Package sink rasterizes component trees and encodes them as images.
//
// Drawing uses fogleman/gg. Nodes are drawn in tree order and clipped to the
// rounded canvas. Composition involves no I/O and is deterministic: the same
// tree always encodes to the same bytes for a given format.
package sink

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	_ "golang.org/x/image/webp"

	"github.com/mcbanners/banners/pkg/errors"
	"github.com/mcbanners/banners/pkg/fonts"
	"github.com/mcbanners/banners/pkg/render/component"
)

// Format is an output image format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

const (
	jpegQuality = 90
	iconRadius  = 6
)

// ParseFormat accepts "png", "jpg" and "jpeg" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", s)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension returns the file extension of f without the dot.
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return "png"
}

// Composer draws trees. The zero value measures text with the embedded fonts.
type Composer struct {
	Measurer component.Measurer
}

// Compose draws tree with the default composer and encodes it as format.
func Compose(tree *component.Tree, format Format) ([]byte, string, error) {
	return Composer{}.Compose(tree, format)
}

// Compose draws tree and encodes it as format.
func (c Composer) Compose(tree *component.Tree, format Format) ([]byte, string, error) {
	if format != PNG && format != JPEG {
		return nil, "", errors.New(errors.ErrCodeCompositionFailure, "unsupported output format %q", string(format))
	}
	if tree == nil || tree.Width <= 0 || tree.Height <= 0 {
		return nil, "", errors.New(errors.ErrCodeCompositionFailure, "empty component tree")
	}
	m := c.Measurer
	if m == nil {
		m = fonts.Measurer{}
	}

	dc := gg.NewContext(tree.Width, tree.Height)
	// JPEG has no alpha channel, so corners are left square.
	radius := tree.Background.Radius
	if format == JPEG {
		radius = 0
	}
	drawBackground(dc, tree, radius)

	for _, n := range tree.Nodes {
		var err error
		switch n := n.(type) {
		case component.Rect:
			drawRect(dc, n)
		case component.Image:
			drawImage(dc, n)
		case component.Text:
			err = drawText(dc, n, float64(tree.Width), m)
		}
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeCompositionFailure, err, "draw node")
		}
	}

	data, err := encode(dc.Image(), format)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeCompositionFailure, err, "encode %s", format)
	}
	return data, format.ContentType(), nil
}

func drawBackground(dc *gg.Context, tree *component.Tree, radius float64) {
	w, h := float64(tree.Width), float64(tree.Height)
	bg := tree.Background

	dc.DrawRoundedRectangle(0, 0, w, h, radius)
	if bg.Gradient() {
		grad := gg.NewLinearGradient(0, 0, w, 0)
		grad.AddColorStop(0, bg.From)
		grad.AddColorStop(1, bg.To)
		dc.SetFillStyle(grad)
	} else {
		dc.SetColor(bg.From)
	}
	dc.Fill()

	dc.DrawRoundedRectangle(0, 0, w, h, radius)
	dc.Clip()
}

func drawRect(dc *gg.Context, r component.Rect) {
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, r.Radius)
	dc.SetColor(r.Color)
	dc.Fill()
}

// drawImage scales the icon to fill its box. Undecodable data falls back to
// the placeholder so a broken icon never fails the banner.
func drawImage(dc *gg.Context, n component.Image) {
	w, h := int(n.W), int(n.H)
	if w <= 0 || h <= 0 {
		return
	}

	var icon image.Image
	if len(n.Data) > 0 {
		if img, _, err := image.Decode(bytes.NewReader(n.Data)); err == nil {
			icon = imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
		}
	}

	dc.Push()
	defer dc.Pop()
	dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, iconRadius)
	if icon == nil {
		dc.SetColor(n.Placeholder)
		dc.Fill()
		return
	}
	dc.Clip()
	dc.DrawImage(icon, int(n.X), int(n.Y))
}

func drawText(dc *gg.Context, t component.Text, canvasWidth float64, m component.Measurer) error {
	lines := t.Lines(canvasWidth, m)
	if len(lines) == 0 {
		return nil
	}
	face, err := fonts.Face(t.Font, t.Bold, t.Size)
	if err != nil {
		return err
	}
	defer face.Close()

	dc.SetFontFace(face)
	dc.SetColor(t.Color)
	ax := anchor(t.Align)
	for _, l := range lines {
		dc.DrawStringAnchored(l.Content, l.X, l.Y, ax, 0)
	}
	return nil
}

func anchor(a component.Align) float64 {
	switch a {
	case component.AlignCenter:
		return 0.5
	case component.AlignRight:
		return 1
	default:
		return 0
	}
}

func encode(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if format == JPEG {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	} else {
		err = (&png.Encoder{CompressionLevel: png.DefaultCompression}).Encode(&buf, img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
