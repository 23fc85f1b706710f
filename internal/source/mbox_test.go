package source

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestMboxSource_SplitsMessages(t *testing.T) {
	data := strings.Join([]string{
		"From a@example.com Mon Jan  1 00:00:00 2001",
		"Subject: one",
		"",
		"body one",
		">From escaped line",
		"From b@example.com Mon Jan  1 00:00:01 2001",
		"Subject: two",
		"",
		"body two",
		"",
	}, "\n")

	src := NewMboxSource("corpus.mbox", strings.NewReader(data), 0)

	row1, err := src.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if row1.Path != "corpus.mbox#1" {
		t.Errorf("Path = %q", row1.Path)
	}
	if !strings.Contains(row1.RawMessage, "Subject: one") {
		t.Errorf("RawMessage = %q", row1.RawMessage)
	}
	if !strings.Contains(row1.RawMessage, "\nFrom escaped line\n") {
		t.Errorf("expected mboxrd unescaping, got %q", row1.RawMessage)
	}

	row2, err := src.Next()
	if err != nil {
		t.Fatalf("Next (2): %v", err)
	}
	if row2.Path != "corpus.mbox#2" || !strings.Contains(row2.RawMessage, "body two") {
		t.Errorf("row2 = %+v", row2)
	}

	if _, err := src.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestMboxSource_OversizedMessageSkipsToNext(t *testing.T) {
	data := strings.Join([]string{
		"From a@example.com Mon Jan  1 00:00:00 2001",
		"Subject: big",
		"",
		strings.Repeat("x", 200),
		"From b@example.com Mon Jan  1 00:00:01 2001",
		"Subject: small",
		"",
		"ok",
		"",
	}, "\n")

	src := NewMboxSource("corpus.mbox", strings.NewReader(data), 100)

	_, err := src.Next()
	if !errors.Is(err, ErrRowTooLarge) {
		t.Fatalf("expected ErrRowTooLarge, got %v", err)
	}

	row, err := src.Next()
	if err != nil {
		t.Fatalf("Next (after oversized): %v", err)
	}
	if row.Path != "corpus.mbox#2" || !strings.Contains(row.RawMessage, "Subject: small") {
		t.Errorf("row = %+v", row)
	}
}

func TestMboxSource_IgnoresLeadingJunk(t *testing.T) {
	data := strings.Join([]string{
		"not a separator",
		"From a@example.com Mon Jan  1 00:00:00 2001",
		"Subject: only",
		"",
		"body",
		"",
	}, "\n")

	src := NewMboxSource("m", strings.NewReader(data), 0)

	row, err := src.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !strings.Contains(row.RawMessage, "Subject: only") {
		t.Errorf("RawMessage = %q", row.RawMessage)
	}
	if strings.Contains(row.RawMessage, "not a separator") {
		t.Errorf("leading junk leaked into message: %q", row.RawMessage)
	}
}

func TestIsFromSeparator(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"From a@example.com Mon Jan  1 00:00:00 2001\n", true},
		{"From someone thedate\n", true},
		{"From \n", false},
		{">From a@example.com Mon Jan 1 2001\n", false},
		{"Fromage is cheese\n", false},
	}
	for _, c := range cases {
		if got := isFromSeparator(c.line); got != c.want {
			t.Errorf("isFromSeparator(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}
