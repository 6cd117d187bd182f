// Package markup converts documentation text between Markdown, HTML and
// plain text.
package markup

import (
	"bytes"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// mdParser is a pre-configured goldmark instance with the GFM table extension.
// Raw HTML is passed through because table cells carry <span> tooltips and
// doc comments are allowed to embed markup.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ToHTML converts Markdown text to HTML. Blank input yields an empty string,
// and the trailing newline goldmark emits is trimmed so results can be
// concatenated and compared directly.
func ToHTML(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(text), &buf); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}

// ToMarkdown converts rendered HTML back to Markdown. It is used for
// search summaries where tags would be noise.
func ToMarkdown(html string) (string, error) {
	if html == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(markdown), nil
}
