package application

import (
	"strings"
	"testing"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		markdown []byte
		expected string
	}{
		{
			name:     "Valid title",
			markdown: []byte("# Spring Sale\nSome content"),
			expected: "Spring Sale",
		},
		{
			name:     "Title with extra spaces",
			markdown: []byte("#   Title with spaces   \nContent"),
			expected: "Title with spaces",
		},
		{
			name:     "No title",
			markdown: []byte("Some content without title"),
			expected: untitledPage,
		},
		{
			name:     "Empty markdown",
			markdown: []byte(""),
			expected: untitledPage,
		},
		{
			name:     "Hash without space",
			markdown: []byte("#NoSpace\nContent"),
			expected: untitledPage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := extractTitle(tt.markdown); result != tt.expected {
				t.Errorf("extractTitle() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name     string
		markdown []byte
		expected string
	}{
		{
			name:     "First paragraph after title",
			markdown: []byte("# Title\nThis is the first paragraph\n\nMore content"),
			expected: "This is the first paragraph",
		},
		{
			name:     "Multi-line first paragraph",
			markdown: []byte("# Title\nFirst line.\nSecond line.\n\nSecond paragraph"),
			expected: "First line. Second line.",
		},
		{
			name:     "Shortcode line is skipped",
			markdown: []byte("# Home\n[slider_posts]\n\nWelcome to the shop."),
			expected: "Welcome to the shop.",
		},
		{
			name:     "Stop at list",
			markdown: []byte("# Title\nIntro text\n- List item"),
			expected: "Intro text",
		},
		{
			name:     "Only title",
			markdown: []byte("# Title"),
			expected: "",
		},
		{
			name:     "Truncate long paragraph",
			markdown: []byte("# Title\n" + strings.Repeat("word ", 60)),
			expected: strings.TrimSpace(strings.Repeat("word ", 40)) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := extractSummary(tt.markdown); result != tt.expected {
				t.Errorf("extractSummary() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestIsRelativeLink(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"http://example.com/page", false},
		{"https://example.com/page", false},
		{"//example.com/page", false},
		{"mailto:user@example.com", false},
		{"#section", false},
		{"/about", true},
		{"./images/photo.jpg", true},
		{"../docs/readme.md", true},
		{"image.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if result := isRelativeLink(tt.url); result != tt.expected {
				t.Errorf("isRelativeLink(%q) = %v, want %v", tt.url, result, tt.expected)
			}
		})
	}
}

func TestMarkdownRenderer_Render(t *testing.T) {
	renderer := NewMarkdownRenderer("https://shop.example.com/")

	tests := []struct {
		name           string
		markdown       string
		expectedTitle  string
		expectedInHTML []string
		notInHTML      []string
	}{
		{
			name:          "Relative image points at image route",
			markdown:      "# Home\nIntro\n\n![banner](./uploads/banner.png)",
			expectedTitle: "Home",
			expectedInHTML: []string{
				`src="https://shop.example.com/images/banner.png"`,
			},
		},
		{
			name:          "Relative link points at page route",
			markdown:      "# Home\nSee [the about page](about.md).",
			expectedTitle: "Home",
			expectedInHTML: []string{
				`href="https://shop.example.com/pages/about"`,
			},
			notInHTML: []string{".md"},
		},
		{
			name:          "Absolute link is untouched",
			markdown:      "[docs](https://kenwheeler.github.io/slick/)",
			expectedTitle: untitledPage,
			expectedInHTML: []string{
				`href="https://kenwheeler.github.io/slick/"`,
			},
		},
		{
			name:          "Shortcode survives rendering",
			markdown:      "# Home\n\n[slider_posts]\n",
			expectedTitle: "Home",
			expectedInHTML: []string{
				"<p>[slider_posts]</p>",
			},
		},
		{
			name:          "GFM table",
			markdown:      "| A | B |\n|---|---|\n| 1 | 2 |",
			expectedTitle: untitledPage,
			expectedInHTML: []string{
				"<table>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := renderer.Render([]byte(tt.markdown))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			if result.Title != tt.expectedTitle {
				t.Errorf("Title = %q, want %q", result.Title, tt.expectedTitle)
			}

			html := string(result.HTML)
			for _, expected := range tt.expectedInHTML {
				if !strings.Contains(html, expected) {
					t.Errorf("HTML missing %q\ngot: %s", expected, html)
				}
			}
			for _, unexpected := range tt.notInHTML {
				if strings.Contains(html, unexpected) {
					t.Errorf("HTML unexpectedly contains %q\ngot: %s", unexpected, html)
				}
			}
		})
	}
}
