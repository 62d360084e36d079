package platform

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// ShortcodeFunc produces the markup that replaces a shortcode token.
type ShortcodeFunc func(ctx context.Context, attrs map[string]string) (string, error)

var (
	tagPattern       = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	shortcodePattern = regexp.MustCompile(`\[(\[?)([A-Za-z0-9_-]+)((?:\s+[^\[\]]*)?)\](\]?)`)
	attrPattern      = regexp.MustCompile(`([A-Za-z0-9_-]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"']+))`)
	standalonePara   = regexp.MustCompile(`<p>\s*(\[[A-Za-z0-9_-]+(?:\s+[^\[\]]*)?\])\s*</p>`)
)

func validTag(tag string) bool {
	return tagPattern.MatchString(tag)
}

// Expand replaces every registered shortcode in content with its handler's
// output. Unregistered tags are left as written and [[tag]] yields a literal
// [tag]. A registered shortcode that is the only thing in a paragraph is
// unwrapped first so block markup is not nested inside <p>.
func (r *Registry) Expand(ctx context.Context, content string) (string, error) {
	if !strings.Contains(content, "[") {
		return content, nil
	}

	content = standalonePara.ReplaceAllStringFunc(content, func(para string) string {
		token := standalonePara.FindStringSubmatch(para)[1]
		m := shortcodePattern.FindStringSubmatch(token)
		if m == nil {
			return para
		}
		if _, ok := r.shortcode(m[2]); !ok {
			return para
		}
		return token
	})

	var (
		out  strings.Builder
		last int
	)
	for _, loc := range shortcodePattern.FindAllStringSubmatchIndex(content, -1) {
		out.WriteString(content[last:loc[0]])
		last = loc[1]

		whole := content[loc[0]:loc[1]]
		open := content[loc[2]:loc[3]]
		tag := content[loc[4]:loc[5]]
		attrs := content[loc[6]:loc[7]]
		closing := content[loc[8]:loc[9]]

		fn, ok := r.shortcode(tag)
		switch {
		case !ok:
			out.WriteString(whole)
		case open == "[" && closing == "]":
			out.WriteString(whole[1 : len(whole)-1])
		default:
			out.WriteString(open)
			rendered, err := fn(ctx, parseAttrs(attrs))
			if err != nil {
				return "", fmt.Errorf("shortcode %s: %w", tag, err)
			}
			out.WriteString(rendered)
			out.WriteString(closing)
		}
	}
	out.WriteString(content[last:])

	return out.String(), nil
}

// parseAttrs reads key="v", key='v' and key=v pairs. Entities are decoded
// first since the content has usually been through a markdown renderer.
func parseAttrs(raw string) map[string]string {
	raw = html.UnescapeString(raw)
	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(raw, -1) {
		value := m[2]
		if m[3] != "" {
			value = m[3]
		} else if m[4] != "" {
			value = m[4]
		}
		attrs[strings.ToLower(m[1])] = value
	}
	return attrs
}
