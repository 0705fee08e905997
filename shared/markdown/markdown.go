// Package markdown turns user supplied board text into safe output.
package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmark_html "github.com/yuin/goldmark/renderer/html"
)

// TextProcessor is safe for concurrent use.
type TextProcessor struct {
	md     goldmark.Markdown
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithRendererOptions(goldmark_html.WithUnsafe(), goldmark_html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	rich := bluemonday.UGCPolicy()
	rich.RequireNoFollowOnLinks(true)
	rich.AddTargetBlankToFullyQualifiedLinks(true)

	return &TextProcessor{md: md, rich: rich, strict: bluemonday.StrictPolicy()}
}

// RenderCourse renders a course description written in markdown. Raw HTML
// is let through goldmark and removed by the sanitizer afterwards.
func (tp *TextProcessor) RenderCourse(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(tp.rich.Sanitize(buf.String())), nil
}

// Plain strips every tag and returns the text unescaped, ready to be stored.
func (tp *TextProcessor) Plain(text string) string {
	return strings.TrimSpace(html.UnescapeString(tp.strict.Sanitize(text)))
}
