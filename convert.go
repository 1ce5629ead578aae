package jiramarkup

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	humanize "github.com/dustin/go-humanize"
	"github.com/rs/xid"
	"golang.org/x/net/html/charset"
)

// listContext is the part of the recursion state that does not live in the
// tree: the marker of the nearest enclosing list and how deep it is nested.
// It is passed by value so every call sees its own copy.
type listContext struct {
	marker byte // 0 outside of lists
	level  int
}

type renderFunc func(n *Node, ctx listContext) string

// renderers maps a tag to its rendering strategy. Tags missing from the table
// are rendered as transparent containers.
var renderers map[string]renderFunc

func init() {
	renderers = map[string]renderFunc{
		"h1": renderHeading, "h2": renderHeading, "h3": renderHeading,
		"h4": renderHeading, "h5": renderHeading, "h6": renderHeading,

		"b": wrap("*", "*"), "strong": wrap("*", "*"),
		"i": wrap("_", "_"), "em": wrap("_", "_"),
		"u": wrap("+", "+"),
		"s": wrap("-", "-"), "strike": wrap("-", "-"), "del": wrap("-", "-"),
		"code": wrap("{{", "}}"),

		"pre":        renderPre,
		"a":          renderLink,
		"img":        renderImage,
		"p":          renderParagraph,
		"br":         func(*Node, listContext) string { return "\n" },
		"hr":         func(*Node, listContext) string { return rule + "\n\n" },
		"blockquote": renderQuote,
		"ul":         renderList(markerUnordered),
		"ol":         renderList(markerOrdered),
		"table":      func(n *Node, _ listContext) string { return renderTable(n) },
	}
}

// parse is swapped out by tests to exercise the fallback path
var parse = Parse

// Convert renders an HTML document or fragment as Jira markup.
//
// Convert never fails. If the document cannot be rendered the failure is
// logged and the document's plain text is returned instead (see PlainText).
func Convert(src string) string {
	if src == "" {
		return ""
	}

	id := xid.New().String()
	debugLog(id, "converting html", "size", humanize.Bytes(uint64(len(src))))

	out, err := render(strings.NewReader(src))
	if err != nil {
		warnLog(id, "html could not be converted, falling back to plain text", "error", err)
		if Verbose {
			debugLog(id, "unconverted html", "input", spew.Sdump(src))
		}
		return PlainText(src)
	}

	debugLog(id, "converted html", "size", humanize.Bytes(uint64(len(out))))
	return out
}

// Render renders an HTML document or fragment as Jira markup, returning any
// error instead of falling back to plain text.
func Render(src string) (string, error) {
	return render(strings.NewReader(src))
}

// RenderReader is like Render but reads the document from r, decoding it to
// UTF-8 according to contentType (for example "text/html; charset=iso-8859-1")
// or, when that names no charset, to the document's own meta declarations.
func RenderReader(r io.Reader, contentType string) (string, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", fmt.Errorf("decode html charset: %w", err)
	}
	return render(utf8Reader)
}

// RenderTree renders an already parsed tree as Jira markup
func RenderTree(root *Node) string {
	return Normalize(renderNode(root, listContext{}))
}

func render(r io.Reader) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = "", fmt.Errorf("render html: %v", p)
		}
	}()

	root, err := parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return RenderTree(root), nil
}

func renderNode(n *Node, ctx listContext) string {
	if n.Kind == TextNode {
		// Whitespace-only text between elements is dropped entirely
		if strings.TrimSpace(n.Text) == "" {
			return ""
		}
		return n.Text
	}
	if fn, ok := renderers[n.Tag]; ok {
		return fn(n, ctx)
	}
	return renderChildren(n, ctx)
}

// renderChildren concatenates the rendered children of n, in order
func renderChildren(n *Node, ctx listContext) string {
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(renderNode(c, ctx))
	}
	return sb.String()
}

// inline renders the children of n outside of any list context
func inline(n *Node) string {
	return renderChildren(n, listContext{})
}

func wrap(prefix, suffix string) renderFunc {
	return func(n *Node, _ listContext) string {
		return prefix + inline(n) + suffix
	}
}

func renderHeading(n *Node, _ listContext) string {
	return fmt.Sprintf("h%c. %s\n\n", n.Tag[1], strings.TrimSpace(inline(n)))
}

func renderPre(n *Node, _ listContext) string {
	return codeBlock + "\n" + n.TextContent() + "\n" + codeBlock + "\n\n"
}

func renderLink(n *Node, _ listContext) string {
	text := inline(n)
	href := n.Attr("href")
	if href == "" {
		return text
	}
	return "[" + strings.TrimSpace(text) + "|" + href + "]"
}

func renderImage(n *Node, _ listContext) string {
	src := n.Attr("src")
	if src == "" {
		return ""
	}
	return "!" + src + "!"
}

func renderParagraph(n *Node, _ listContext) string {
	return strings.TrimSpace(inline(n)) + "\n\n"
}

func renderQuote(n *Node, _ listContext) string {
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(inline(n)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			sb.WriteString(quotePrefix + line + "\n")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
