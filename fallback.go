package jiramarkup

import (
	"strings"

	"golang.org/x/net/html"
)

var rawTextParents = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true,
	"textarea": true, "title": true, "xmp": true,
}

// PlainText strips all markup from src and returns its text in document
// order, one trimmed text run per line. It is the degraded result of Convert
// and never panics.
func PlainText(src string) (text string) {
	defer func() {
		if p := recover(); p != nil {
			text = stripTags(src)
		}
	}()

	doc, err := html.ParseWithOptions(strings.NewReader(src), html.ParseOptionEnableScripting(false))
	if err != nil {
		return stripTags(src)
	}

	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && discardElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			// iframe, title, textarea and xmp keep their content as raw text
			if n.Parent != nil && rawTextParents[n.Parent.Data] {
				if s := stripTags(n.Data); s != "" {
					lines = append(lines, s)
				}
				return
			}
			if s := strings.TrimSpace(n.Data); s != "" {
				lines = append(lines, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// stripTags is the tokenizer-only version of PlainText, used when the
// document cannot be parsed into a tree at all
func stripTags(src string) string {
	var lines []string
	skip := ""
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(strings.Join(lines, "\n"))
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); discardElements[string(name)] {
				skip = string(name)
			} else {
				z.NextIsNotRawText()
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == skip {
				skip = ""
			}
		case html.TextToken:
			if skip != "" {
				continue
			}
			if s := strings.TrimSpace(string(z.Text())); s != "" {
				lines = append(lines, s)
			}
		}
	}
}
