package textutil

import (
	"strings"
	"testing"
)

func TestShortenWithinLimit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{
			name:  "short text passes through",
			text:  "hello world",
			limit: 100,
			want:  "hello world",
		},
		{
			name:  "exact limit passes through",
			text:  strings.Repeat("a", 100),
			limit: 100,
			want:  strings.Repeat("a", 100),
		},
		{
			name:  "empty text",
			text:  "",
			limit: 100,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shorten(tt.text, tt.limit); got != tt.want {
				t.Errorf("Shorten() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortenSeparatorLine(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "dash rule drops everything after it",
			text: "keep this\n----\ndrop this",
			want: "keep this",
		},
		{
			name: "underscore rule",
			text: "keep this\n___\ndrop this",
			want: "keep this",
		},
		{
			name: "em-dash rule",
			text: "keep this\n———\ndrop this",
			want: "keep this",
		},
		{
			name: "only first rule matters",
			text: "first\n----\nsecond\n----\nthird",
			want: "first",
		},
		{
			name: "short dashes are not a rule",
			text: "keep\n--\nalso keep",
			want: "keep\n--\nalso keep",
		},
		{
			name: "inline dashes are not a rule",
			text: "a -- b ---- c",
			want: "a -- b ---- c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shorten(tt.text, 100); got != tt.want {
				t.Errorf("Shorten() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortenTruncation(t *testing.T) {
	t.Run("whole lines are kept while they fit", func(t *testing.T) {
		text := "first line\nsecond line\n" + strings.Repeat("x", 200)
		got := Shorten(text, 30)
		if got != "first line\nsecond line..." {
			t.Errorf("Shorten() = %q", got)
		}
	})

	t.Run("oversized first line is hard truncated", func(t *testing.T) {
		text := strings.Repeat("a", 150)
		got := Shorten(text, 100)
		if got != strings.Repeat("a", 100)+"..." {
			t.Errorf("Shorten() = %q", got)
		}
	})

	t.Run("trailing punctuation trimmed before ellipsis", func(t *testing.T) {
		text := "an ending sentence!!\n" + strings.Repeat("y", 100)
		got := Shorten(text, 25)
		if got != "an ending sentence..." {
			t.Errorf("Shorten() = %q", got)
		}
	})
}

func TestShortenIdempotent(t *testing.T) {
	// A formatted, within-limit result must come back unchanged.
	text := "short line\n" + strings.Repeat("z", 200)
	first := Shorten(text, 50)
	if !strings.HasSuffix(first, "...") {
		t.Fatalf("expected truncated result, got %q", first)
	}
	second := Shorten(first, 50)
	if second != first {
		t.Errorf("Shorten() not idempotent: %q -> %q", first, second)
	}
}
