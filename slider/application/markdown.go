package application

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const (
	maxSummaryLength = 200
	untitledPage     = "Untitled Page"
)

// MarkdownResult contains the results of rendering a page body
type MarkdownResult struct {
	Title   string
	Summary string
	HTML    []byte
}

// relativeLinkTransformer points relative images at the site's image route
// and relative links at the site's page route.
type relativeLinkTransformer struct {
	siteURL string
}

func (t *relativeLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Image:
			if isRelativeLink(string(v.Destination)) {
				v.Destination = []byte(t.siteURL + "/images/" + path.Base(string(v.Destination)))
			}
		case *ast.Link:
			if isRelativeLink(string(v.Destination)) {
				slug := path.Base(string(v.Destination))
				slug = strings.TrimSuffix(slug, ".md")
				slug = strings.TrimSuffix(slug, ".html")
				v.Destination = []byte(t.siteURL + "/pages/" + slug)
			}
		}

		return ast.WalkContinue, nil
	})
}

func isRelativeLink(dest string) bool {
	if strings.HasPrefix(dest, "#") {
		return false
	}

	if strings.HasPrefix(dest, "/") {
		return !strings.HasPrefix(dest, "//")
	}

	if strings.HasPrefix(dest, "./") || strings.HasPrefix(dest, "../") {
		return true
	}

	return !strings.Contains(dest, ":")
}

// MarkdownRenderer defines the interface for converting markdown to HTML.
type MarkdownRenderer interface {
	Render(markdown []byte) (*MarkdownResult, error)
}

type goldmarkRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer creates a GFM renderer that resolves relative links against siteURL.
func NewMarkdownRenderer(siteURL string) MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&relativeLinkTransformer{siteURL: strings.TrimSuffix(siteURL, "/")}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)

	return &goldmarkRenderer{md: md}
}

func (r *goldmarkRenderer) Render(markdown []byte) (*MarkdownResult, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	return &MarkdownResult{
		Title:   extractTitle(markdown),
		Summary: extractSummary(markdown),
		HTML:    buf.Bytes(),
	}, nil
}

// extractTitle returns the text of a leading "# " heading.
func extractTitle(markdown []byte) string {
	firstLine, _, _ := strings.Cut(string(markdown), "\n")
	title, found := strings.CutPrefix(strings.TrimSpace(firstLine), "# ")
	if !found {
		return untitledPage
	}
	return strings.TrimSpace(title)
}

// extractSummary returns the first paragraph of prose, cut at a word
// boundary when it is longer than maxSummaryLength. Shortcode-only lines are
// not prose.
func extractSummary(markdown []byte) string {
	var paragraphLines []string

	for _, line := range strings.Split(string(markdown), "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || isBlockStart(trimmed) {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		paragraphLines = append(paragraphLines, trimmed)
	}

	if len(paragraphLines) == 0 {
		return ""
	}

	summary := strings.Join(paragraphLines, " ")
	if len(summary) > maxSummaryLength {
		summary = summary[:maxSummaryLength]
		if lastSpace := strings.LastIndexAny(summary, " \t"); lastSpace > 0 {
			summary = summary[:lastSpace]
		}
		summary += "..."
	}

	return summary
}

func isBlockStart(line string) bool {
	for _, prefix := range []string{"#", "```", "---", "***", "- ", "* ", "+ ", "|", "<"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")
}
