// Package jiramarkup converts HTML into Jira wiki markup.
//
// It covers the constructs that show up in mail bodies and ticket text:
//
//   - Headings (h1-h6), paragraphs, line breaks and horizontal rules
//   - Bold, italic, underline, strikethrough and inline code
//   - Links, images, block quotes and preformatted blocks
//   - Nested ordered/unordered lists and tables (with or without thead/tbody)
//
// Convert never fails: when the input cannot be rendered it degrades to the
// document's plain text. Render exposes the underlying error for callers that
// want to handle it themselves. ReadMessage and Body wrap the converter for
// MIME messages and mail API payloads.
package jiramarkup
