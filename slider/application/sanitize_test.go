package application

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Sale", want: "Sale"},
		{name: "percent kept", input: "50% off", want: "50% off"},
		{name: "tags stripped", input: "<b>Big</b> <script>alert(1)</script>Sale", want: "Big Sale"},
		{name: "whitespace collapsed", input: "  a \t b\n\nc  ", want: "a b c"},
		{name: "ampersand stays raw", input: "Tom & Jerry", want: "Tom & Jerry"},
		{name: "less than kept as text", input: "a < b", want: "a < b"},
		{name: "empty", input: "", want: ""},
		{name: "invalid utf8 dropped", input: "ok\xffok", want: "okok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTextarea(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "newlines kept", input: "line one\nline two", want: "line one\nline two"},
		{name: "crlf normalised", input: "a\r\nb\rc", want: "a\nb\nc"},
		{name: "trimmed", input: "\n  text  \n", want: "text"},
		{name: "tags stripped", input: "<p>para</p>\n<em>x</em>", want: "para\nx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTextarea(tt.input); got != tt.want {
				t.Errorf("SanitizeTextarea(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
