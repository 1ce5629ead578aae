package jiramarkup

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

const documentTag = "#document"

// Elements that never have children
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Elements whose content is dropped from the tree
var discardElements = map[string]bool{
	"script": true,
	"style":  true,
}

// Start tags that implicitly close an open element of the listed tags, unless
// one of the boundary tags is reached first
var implicitClose = map[string]struct {
	closes   []string
	boundary []string
}{
	"li":    {closes: []string{"li"}, boundary: []string{"ul", "ol"}},
	"p":     {closes: []string{"p"}, boundary: []string{"div", "blockquote", "li", "td", "th", "table"}},
	"tr":    {closes: []string{"tr"}, boundary: []string{"table", "thead", "tbody", "tfoot"}},
	"td":    {closes: []string{"td", "th"}, boundary: []string{"tr", "table"}},
	"th":    {closes: []string{"td", "th"}, boundary: []string{"tr", "table"}},
	"thead": {closes: []string{"thead", "tbody", "tfoot"}, boundary: []string{"table"}},
	"tbody": {closes: []string{"thead", "tbody", "tfoot"}, boundary: []string{"table"}},
	"tfoot": {closes: []string{"thead", "tbody", "tfoot"}, boundary: []string{"table"}},
}

// Parse reads an HTML document or fragment and returns its tree, rooted at a
// document node. The tree mirrors the markup as written: unlike an HTML5
// parser it never inserts html, head, body or tbody elements, so a table
// without sections keeps its rows as direct children.
//
// Malformed markup is recovered from rather than reported: stray end tags are
// ignored and unclosed elements end with the document. Only read errors are
// returned.
func Parse(r io.Reader) (*Node, error) {
	b := treeBuilder{
		root: &Node{Kind: ElementNode, Tag: documentTag},
	}
	b.stack = []*Node{b.root}

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenize html: %w", err)
			}
			return b.root, nil
		case html.TextToken:
			if b.skip == "" {
				b.text(string(z.Text()))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			if b.skip != "" {
				continue
			}
			tok := z.Token()
			if discardElements[tok.Data] {
				// The tokenizer reads raw text up to the end tag even after
				// a self-closing <script/>
				b.skip = tok.Data
				continue
			}
			// Only script and style content is raw text; the children of
			// noscript, iframe, textarea, title and friends are markup
			z.NextIsNotRawText()
			b.open(tok, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			tok := z.Token()
			if b.skip != "" {
				if tok.Data == b.skip {
					b.skip = ""
				}
				continue
			}
			b.close(tok.Data)
		}
	}
}

type treeBuilder struct {
	root  *Node
	stack []*Node
	skip  string
}

func (b *treeBuilder) top() *Node {
	return b.stack[len(b.stack)-1]
}

func (b *treeBuilder) text(s string) {
	if s == "" {
		return
	}
	parent := b.top()
	if n := len(parent.Children); n != 0 && parent.Children[n-1].Kind == TextNode {
		parent.Children[n-1].Text += s
		return
	}
	parent.Children = append(parent.Children, &Node{Kind: TextNode, Text: s})
}

func (b *treeBuilder) open(tok html.Token, selfClosing bool) {
	if rule, ok := implicitClose[tok.Data]; ok {
		if i := b.lookup(rule.closes, rule.boundary); i > 0 {
			b.stack = b.stack[:i]
		}
	}

	leaf := selfClosing || voidElements[tok.Data]

	// Past MaxDepth the element itself is dropped and its content flows into
	// the parent, which keeps the tree depth bounded
	if !leaf && len(b.stack) > MaxDepth {
		return
	}

	n := &Node{Kind: ElementNode, Tag: tok.Data}
	if len(tok.Attr) != 0 {
		n.Attrs = make([]Attr, 0, len(tok.Attr))
		for _, a := range tok.Attr {
			n.Attrs = append(n.Attrs, Attr{Key: a.Key, Val: a.Val})
		}
	}

	parent := b.top()
	parent.Children = append(parent.Children, n)
	if !leaf {
		b.stack = append(b.stack, n)
	}
}

func (b *treeBuilder) close(tag string) {
	if i := b.lookup([]string{tag}, nil); i > 0 {
		b.stack = b.stack[:i]
	}
}

// lookup returns the stack index of the innermost open element with one of
// the tags, or -1 when a boundary element is open above it or none is open
func (b *treeBuilder) lookup(tags []string, boundary []string) int {
	for i := len(b.stack) - 1; i > 0; i-- {
		n := b.stack[i]
		if n.Is(tags...) {
			return i
		}
		if n.Is(boundary...) {
			return -1
		}
	}
	return -1
}
