package fonts

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", Sans},
		{"Mono", Mono},
		{" smallcaps ", SmallCaps},
		{"comic sans", Sans},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFontsParse(t *testing.T) {
	for _, family := range Families() {
		for _, bold := range []bool{false, true} {
			if _, err := Font(family, bold); err != nil {
				t.Errorf("Font(%s, %v): %v", family, bold, err)
			}
		}
	}
}

func TestMeasure(t *testing.T) {
	m := Measurer{}

	short := m.Measure("Banner", Sans, false, 16)
	long := m.Measure("Banner Banner", Sans, false, 16)
	if short <= 0 || long <= short {
		t.Errorf("Measure widths: short=%v long=%v", short, long)
	}
	if m.Measure("Banner", Sans, false, 16) != short {
		t.Error("Measure should be deterministic")
	}
	if m.Measure("Banner", Sans, false, 32) <= short {
		t.Error("larger size should measure wider")
	}
	if m.Measure("", Sans, false, 16) != 0 {
		t.Error("empty string should measure 0")
	}
}
