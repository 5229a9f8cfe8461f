package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Notes are plain prose with the odd list or link; line breaks typed in the
// textarea are kept.
var noteMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough, extension.TaskList),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var noteSanitizer = newNoteSanitizer()

func newNoteSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RenderMarkdown turns note text into sanitized HTML. Text that fails to
// convert is shown escaped as is.
func RenderMarkdown(text string) template.HTML {
	var out bytes.Buffer
	if err := noteMarkdown.Convert([]byte(text), &out); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(noteSanitizer.SanitizeBytes(out.Bytes()))
}
