package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestEnsureUTF8_ValidPassthrough(t *testing.T) {
	for _, s := range []string{"", "plain ascii", "déjà vu", "日本語"} {
		if got := EnsureUTF8(s); got != s {
			t.Errorf("EnsureUTF8(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestEnsureUTF8_Latin1(t *testing.T) {
	// French text in ISO-8859-1 / Windows-1252; the accented bytes decode
	// the same under either charset.
	in := "caf\xe9 au lait, d\xe9j\xe0 pr\xeats, tr\xe8s dr\xf4le, une soir\xe9e agr\xe9able"
	want := "café au lait, déjà prêts, très drôle, une soirée agréable"
	if got := EnsureUTF8(in); got != want {
		t.Errorf("EnsureUTF8 = %q, want %q", got, want)
	}
}

func TestEnsureUTF8_Windows1252Punctuation(t *testing.T) {
	// 0x93/0x94 are curly quotes in Windows-1252 and invalid UTF-8.
	got := EnsureUTF8("\x93 quoted \x94")
	if !utf8.ValidString(got) {
		t.Fatalf("EnsureUTF8 = %q, not valid UTF-8", got)
	}
	if !strings.Contains(got, "quoted") {
		t.Errorf("EnsureUTF8 = %q, lost surrounding text", got)
	}
}

func TestEnsureUTF8_AlwaysValid(t *testing.T) {
	inputs := []string{
		"\xff\xfe\xfd",
		"mixed valid \xc3 and broken",
		strings.Repeat("\x80", 100),
	}
	for _, s := range inputs {
		if got := EnsureUTF8(s); !utf8.ValidString(got) {
			t.Errorf("EnsureUTF8(%q) = %q, not valid UTF-8", s, got)
		}
	}
}

func TestSanitizeUTF8(t *testing.T) {
	got := SanitizeUTF8("ok\xffok")
	if got != "ok�ok" {
		t.Errorf("SanitizeUTF8 = %q", got)
	}
	if s := "already valid é"; SanitizeUTF8(s) != s {
		t.Errorf("SanitizeUTF8 altered valid input")
	}
}

func TestEncodingByName(t *testing.T) {
	if encodingByName("ISO-8859-1") == nil {
		t.Error("ISO-8859-1 not mapped")
	}
	if encodingByName("Shift_JIS") == nil {
		t.Error("Shift_JIS not mapped")
	}
	if encodingByName("no-such-charset") != nil {
		t.Error("unknown charset should map to nil")
	}
}

func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		s    string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 5, "hello"},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "ab"},
		{"anything", 0, ""},
	}
	for _, c := range cases {
		if got := TruncateRunes(c.s, c.max); got != c.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", c.s, c.max, got, c.want)
		}
	}
}
