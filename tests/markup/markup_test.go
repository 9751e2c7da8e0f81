package markup_test

import (
	"strings"
	"testing"

	"github.com/societyfixer/hustings/pkg/markup"
)

func TestSanitizeRemovesScripts(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		forbidden string
	}{
		{
			name:      "script tag",
			input:     `<p>Policies</p><script>alert("x")</script>`,
			forbidden: "<script>",
		},
		{
			name:      "event handler",
			input:     `<img src="x" onerror="alert(1)">`,
			forbidden: "onerror",
		},
		{
			name:      "javascript href",
			input:     `<a href="javascript:alert(1)">link</a>`,
			forbidden: "javascript:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := markup.Sanitize(tt.input)
			if strings.Contains(got, tt.forbidden) {
				t.Errorf("Sanitize(%q) = %q, still contains %q", tt.input, got, tt.forbidden)
			}
		})
	}
}

func TestSanitizeKeepsFormatting(t *testing.T) {
	input := "<p>Lower <strong>property taxes</strong> and <em>better schools</em>.</p>"
	got := markup.Sanitize(input)

	for _, tag := range []string{"<p>", "<strong>", "<em>"} {
		if !strings.Contains(got, tag) {
			t.Errorf("Sanitize removed formatting tag %s: %q", tag, got)
		}
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes all markup",
			input: "<p>Lower <strong>taxes</strong></p>",
			want:  "Lower taxes",
		},
		{
			name:  "collapses whitespace",
			input: "<p>one</p>\n\n  <p>two</p>",
			want:  "one two",
		},
		{
			name:  "plain text unchanged",
			input: "already plain",
			want:  "already plain",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markup.Strip(tt.input); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
