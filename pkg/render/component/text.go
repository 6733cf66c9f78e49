package component

import (
	"strings"
	"unicode/utf8"
)

// LineSpacing is the line height as a multiple of the font size.
const LineSpacing = 1.2

// Ellipsis marks truncated content.
const Ellipsis = "…"

// Measurer reports the rendered width of a string in pixels. It must be a
// pure function of its arguments.
type Measurer interface {
	Measure(s, family string, bold bool, size float64) float64
}

// Line is one laid-out line of a text node.
type Line struct {
	X, Y    float64
	Content string
}

// Truncate shortens s to at most max runes, ending truncated content with
// [Ellipsis]. A max of zero or less leaves s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max == 1 {
		return string(runes[:1])
	}
	return strings.TrimRight(string(runes[:max-1]), " ") + Ellipsis
}

// WrapText breaks s at whitespace into lines no wider than width. A word that
// does not fit on a line of its own is broken between runes. Runs of
// whitespace collapse to a single space. A rune wider than width is dropped.
func WrapText(s, family string, bold bool, size, width float64, m Measurer) []string {
	fits := func(line string) bool {
		return m.Measure(line, family, bold, size) <= width
	}

	var lines []string
	current := ""
	for _, w := range strings.Fields(s) {
		candidate := w
		if current != "" {
			candidate = current + " " + w
		}
		if fits(candidate) {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if fits(w) {
			current = w
			continue
		}
		for _, r := range w {
			if fits(current + string(r)) {
				current += string(r)
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = ""
			if fits(string(r)) {
				current = string(r)
			}
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// ellipsize shortens s from the end until s followed by [Ellipsis] fits in
// width.
func ellipsize(s, family string, bold bool, size, width float64, m Measurer) string {
	runes := []rune(strings.TrimRight(strings.TrimSuffix(s, Ellipsis), " "))
	for len(runes) > 0 {
		candidate := strings.TrimRight(string(runes), " ") + Ellipsis
		if m.Measure(candidate, family, bold, size) <= width {
			return candidate
		}
		runes = runes[:len(runes)-1]
	}
	if m.Measure(Ellipsis, family, bold, size) <= width {
		return Ellipsis
	}
	return ""
}

// Lines lays out t on a canvas canvasWidth pixels wide. Plain text yields a
// single line holding Content verbatim. Wrapping text is truncated, wrapped
// to canvasWidth-X, capped at Wrap.MaxLines, and stacked downward from Y.
func (t Text) Lines(canvasWidth float64, m Measurer) []Line {
	if t.Wrap == nil {
		if t.Content == "" {
			return nil
		}
		return []Line{{X: t.X, Y: t.Y, Content: t.Content}}
	}

	content := Truncate(t.Content, t.Wrap.MaxLength)
	width := canvasWidth - t.X
	wrapped := WrapText(content, t.Font, t.Bold, t.Size, width, m)
	if n := t.Wrap.MaxLines; n > 0 && len(wrapped) > n {
		wrapped = wrapped[:n]
		wrapped[n-1] = ellipsize(wrapped[n-1], t.Font, t.Bold, t.Size, width, m)
	}

	out := make([]Line, len(wrapped))
	for i, l := range wrapped {
		out[i] = Line{X: t.X, Y: t.Y + float64(i)*t.LineHeight(), Content: l}
	}
	return out
}

// LineHeight is the distance between the baselines of consecutive lines.
func (t Text) LineHeight() float64 {
	return t.Size * LineSpacing
}
