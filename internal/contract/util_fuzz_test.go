package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateLabel fuzzes TruncateLabel with random labels and widths.
func FuzzTruncateLabel(f *testing.F) {
	f.Add("temperature", 8)
	f.Add("", 0)
	f.Add("日本語のラベル", 5)
	f.Add("abc", -1)

	f.Fuzz(func(t *testing.T, label string, maxWidth int) {
		got := TruncateLabel(label, maxWidth)
		if maxWidth > 3 && utf8.RuneCountInString(got) > maxWidth {
			t.Fatalf("TruncateLabel(%q, %d) = %q exceeds width", label, maxWidth, got)
		}
	})
}

// FuzzParseMargins fuzzes ParseMargins to make sure it never panics and only returns usable margins.
func FuzzParseMargins(f *testing.F) {
	for _, seed := range []string{"", "5", "1,2", "1,2,3,4", "a,b", "-1", "NaN", ",,,"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		m, err := ParseMargins(s)
		if err != nil {
			return
		}
		if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
			t.Fatalf("ParseMargins(%q) returned negative margin %+v", s, m)
		}
	})
}
