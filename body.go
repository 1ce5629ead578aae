package jiramarkup

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Body returns the ticket text for a mail body of the given content type.
// HTML bodies are converted, markdown bodies are rendered and converted, and
// anything else is treated as plain text and only trimmed. Empty bodies read
// as NoContent.
//
// contentType may be a MIME type ("text/html; charset=utf-8") or the short
// form used by mail APIs ("html", "text").
func Body(contentType string, content string) string {
	if content == "" {
		return NoContent
	}

	switch mediaType(contentType) {
	case "html", "text/html", "application/xhtml+xml":
		return Convert(content)
	case "markdown", "text/markdown", "text/x-markdown":
		return FromMarkdown(content)
	}
	return strings.TrimSpace(content)
}

// FromMarkdown renders GitHub flavored markdown as Jira markup
func FromMarkdown(src string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		warnLog("", "markdown could not be rendered, using it as plain text", "error", err)
		return strings.TrimSpace(src)
	}
	return Convert(buf.String())
}

func mediaType(contentType string) string {
	t, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(t))
}
