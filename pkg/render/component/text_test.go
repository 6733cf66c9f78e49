package component

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// fixedMeasurer gives every rune the same advance: half the font size.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(s, _ string, _ bool, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size / 2
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"unbounded", "hello world", 0, "hello world"},
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 6, "hello…"},
		{"cut trims space", "hello world", 7, "hello…"},
		{"multibyte", "héllo wörld", 4, "hél…"},
		{"one", "hello", 1, "h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if tt.max > 0 && utf8.RuneCountInString(got) > tt.max {
				t.Errorf("result %q longer than %d runes", got, tt.max)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	m := fixedMeasurer{}

	// size 10 -> 5px per rune; width 50 -> 10 runes per line
	got := WrapText("the quick brown fox jumps over", "", false, 10, 50, m)
	want := []string{"the quick", "brown fox", "jumps over"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WrapText = %q, want %q", got, want)
	}

	for _, line := range got {
		if w := m.Measure(line, "", false, 10); w > 50 {
			t.Errorf("line %q is %vpx wide, limit 50", line, w)
		}
	}
}

func assertWithin(t *testing.T, lines []string, size, width float64) {
	t.Helper()
	for _, line := range lines {
		if w := (fixedMeasurer{}).Measure(line, "", false, size); w > width {
			t.Errorf("line %q is %vpx wide, limit %v", line, w, width)
		}
	}
}

func TestWrapTextLongWord(t *testing.T) {
	// 5px per rune, 30px -> 6 runes per line
	got := WrapText("a supercalifragilistic b", "", false, 10, 30, fixedMeasurer{})
	want := []string{"a", "superc", "alifra", "gilist", "ic b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WrapText = %q, want %q", got, want)
	}
	assertWithin(t, got, 10, 30)
}

func TestWrapTextWidthBound(t *testing.T) {
	inputs := []string{
		"SuperLongAuthorName Builders",
		"§aWelcome to the best survival server on the whole network!",
		"x y z",
		"ünïcödé wörds everywhere",
	}
	for _, in := range inputs {
		for _, width := range []float64{12, 30, 47, 120} {
			lines := WrapText(in, "", false, 10, width, fixedMeasurer{})
			assertWithin(t, lines, 10, width)
			if len(lines) == 0 {
				t.Errorf("WrapText(%q, %v) dropped everything", in, width)
			}
		}
	}
}

func TestWrapTextNarrowerThanRune(t *testing.T) {
	if got := WrapText("abc", "", false, 10, 3, fixedMeasurer{}); got != nil {
		t.Errorf("WrapText = %q, want nil", got)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if got := WrapText("   ", "", false, 10, 100, fixedMeasurer{}); got != nil {
		t.Errorf("WrapText(blank) = %q, want nil", got)
	}
}

func TestWrapDeterministic(t *testing.T) {
	m := fixedMeasurer{}
	s := strings.Repeat("lorem ipsum dolor sit amet ", 5)
	first := WrapText(s, "sans", true, 12, 120, m)
	for i := 0; i < 10; i++ {
		if got := WrapText(s, "sans", true, 12, 120, m); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %q vs %q", i, got, first)
		}
	}
}

func TestLinesTruncateBeforeWrap(t *testing.T) {
	txt := Text{
		X: 200, Y: 20, Size: 10,
		Content: "alpha beta gamma delta epsilon",
		Wrap:    &Wrap{MaxLength: 16},
	}
	// canvas 300 -> 100px available -> 20 runes per line at 5px/rune
	lines := txt.Lines(300, fixedMeasurer{})

	var joined []string
	for _, l := range lines {
		joined = append(joined, l.Content)
	}
	// Truncated to "alpha beta gamm…" first, which then fits on one line.
	if want := []string{"alpha beta gamm…"}; !reflect.DeepEqual(joined, want) {
		t.Errorf("lines = %q, want %q", joined, want)
	}
}

func TestLinesLimitDoesNotAffectShortContent(t *testing.T) {
	base := Text{X: 250, Y: 20, Size: 10, Content: "alpha beta gamma"}
	limited := base
	limited.Wrap = &Wrap{MaxLength: 100}
	unlimited := base
	unlimited.Wrap = &Wrap{}

	a := limited.Lines(300, fixedMeasurer{})
	b := unlimited.Lines(300, fixedMeasurer{})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("limit changed short content: %v vs %v", a, b)
	}
	if len(a) != 2 {
		t.Fatalf("expected 2 lines in 50px, got %d", len(a))
	}
	if a[0].Content != "alpha beta" || a[1].Y != 32 {
		t.Errorf("lines = %+v", a)
	}
}

func TestLinesMaxLines(t *testing.T) {
	txt := Text{
		X: 250, Y: 20, Size: 10,
		Content: "alpha beta gamma delta epsilon",
		Wrap:    &Wrap{MaxLines: 2},
	}
	lines := txt.Lines(300, fixedMeasurer{})
	if len(lines) != 2 {
		t.Fatalf("lines = %+v, want 2", lines)
	}
	if lines[0].Content != "alpha beta" || lines[1].Content != "gamma…" {
		t.Errorf("lines = %+v", lines)
	}
	for _, l := range lines {
		if w := (fixedMeasurer{}).Measure(l.Content, "", false, 10); w > 50 {
			t.Errorf("line %q is %vpx wide", l.Content, w)
		}
	}
	if lines[1].Y-lines[0].Y != txt.LineHeight() {
		t.Errorf("line spacing = %v", lines[1].Y-lines[0].Y)
	}
}

func TestLinesMaxLinesAfterTruncate(t *testing.T) {
	txt := Text{
		X: 250, Y: 20, Size: 10,
		Content: "alpha beta gamma delta epsilon zeta",
		Wrap:    &Wrap{MaxLength: 28, MaxLines: 2},
	}
	lines := txt.Lines(300, fixedMeasurer{})
	if len(lines) != 2 || lines[1].Content != "gamma…" {
		t.Errorf("lines = %+v", lines)
	}
}

func TestLinesPlain(t *testing.T) {
	txt := Text{X: 10, Y: 30, Size: 14, Content: "a  very long label that is not wrapped"}
	lines := txt.Lines(50, fixedMeasurer{})
	if len(lines) != 1 || lines[0].Content != txt.Content {
		t.Errorf("plain text lines = %+v", lines)
	}
	if got := (Text{}).Lines(300, fixedMeasurer{}); got != nil {
		t.Errorf("empty text lines = %+v", got)
	}
}

func TestTreeAdd(t *testing.T) {
	tree := New(300, 100, Background{})
	tree.Add(Rect{W: 4, H: 100}, Text{Content: "a"}, Image{W: 10, H: 10}, Text{Content: "b"})

	if len(tree.Nodes) != 4 {
		t.Fatalf("nodes = %d", len(tree.Nodes))
	}
	texts := tree.Texts()
	if len(texts) != 2 || texts[0].Content != "a" || texts[1].Content != "b" {
		t.Errorf("Texts() = %+v", texts)
	}
	if tree.Background.Gradient() {
		t.Error("zero background should be solid")
	}
}
