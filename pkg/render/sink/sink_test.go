package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/mcbanners/banners/pkg/errors"
	"github.com/mcbanners/banners/pkg/render/component"
)

func sampleTree(icon []byte) *component.Tree {
	tree := component.New(300, 100, component.Background{
		From:   color.RGBA{0x1f, 0x23, 0x33, 0xff},
		To:     color.RGBA{0x2e, 0x34, 0x4a, 0xff},
		Radius: 8,
	})
	return tree.Add(
		component.Rect{W: 4, H: 100, Color: color.RGBA{0xed, 0x8c, 0x21, 0xff}},
		component.Image{X: 12, Y: 14, W: 72, H: 72, Data: icon, Placeholder: color.RGBA{0x70, 0x40, 0x10, 0xff}},
		component.Text{X: 96, Y: 30, Size: 18, Bold: true, Color: color.RGBA{0xff, 0xff, 0xff, 0xff},
			Content: "A fairly long resource name that wraps", Wrap: &component.Wrap{MaxLength: 28}},
		component.Text{X: 292, Y: 93, Size: 9, Align: component.AlignRight, Color: color.RGBA{0xed, 0x8c, 0x21, 0xff}, Content: "SpigotMC"},
	)
}

func pngIcon(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 0xcc
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestComposePNG(t *testing.T) {
	data, contentType, err := Compose(sampleTree(pngIcon(t)), PNG)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("content type = %q", contentType)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 100 {
		t.Errorf("size = %v", b)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("rounded corner should be transparent")
	}
}

func TestComposeJPEG(t *testing.T) {
	data, contentType, err := Compose(sampleTree(nil), JPEG)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if contentType != "image/jpeg" {
		t.Errorf("content type = %q", contentType)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("decode: %v", err)
	}
}

func TestComposeDeterministic(t *testing.T) {
	icon := pngIcon(t)
	for _, f := range []Format{PNG, JPEG} {
		first, _, err := Compose(sampleTree(icon), f)
		if err != nil {
			t.Fatalf("Compose(%s): %v", f, err)
		}
		second, _, err := Compose(sampleTree(icon), f)
		if err != nil {
			t.Fatalf("Compose(%s): %v", f, err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("%s output differs between runs", f)
		}
	}
}

func TestComposeBrokenIcon(t *testing.T) {
	withBroken, _, err := Compose(sampleTree([]byte("not an image")), PNG)
	if err != nil {
		t.Fatalf("broken icon should not fail: %v", err)
	}
	withNone, _, err := Compose(sampleTree(nil), PNG)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(withBroken, withNone) {
		t.Error("broken icon should draw the same placeholder as a missing one")
	}
}

func TestComposeFailures(t *testing.T) {
	_, _, err := Compose(sampleTree(nil), Format("bmp"))
	if !errors.Is(err, errors.ErrCodeCompositionFailure) {
		t.Errorf("unknown format err = %v", err)
	}
	_, _, err = Compose(&component.Tree{}, PNG)
	if !errors.Is(err, errors.ErrCodeCompositionFailure) {
		t.Errorf("empty tree err = %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", PNG},
		{"PNG", PNG},
		{"jpg", JPEG},
		{"jpeg", JPEG},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(gif) err = %v", err)
	}
	if JPEG.Extension() != "jpg" || PNG.ContentType() != "image/png" {
		t.Error("format metadata")
	}
}
