package jiramarkup

import "strings"

// NodeKind tells a text node apart from an element
type NodeKind uint8

const (
	TextNode NodeKind = iota
	ElementNode
)

// Attr is a single element attribute, in document order
type Attr struct {
	Key string
	Val string
}

// Node is one node of a parsed document. Text nodes only carry Text;
// elements carry a lower-case Tag, their attributes and their children.
type Node struct {
	Kind     NodeKind
	Text     string
	Tag      string
	Attrs    []Attr
	Children []*Node
}

// Attr returns the value of the named attribute, or "" when it is missing
func (n *Node) Attr(key string) string {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Is reports whether n is an element with one of the given tags
func (n *Node) Is(tags ...string) bool {
	if n.Kind != ElementNode {
		return false
	}
	for _, t := range tags {
		if n.Tag == t {
			return true
		}
	}
	return false
}

// ChildElements returns the direct children of n that are elements with one
// of the given tags
func (n *Node) ChildElements(tags ...string) (nodes []*Node) {
	for _, c := range n.Children {
		if c.Is(tags...) {
			nodes = append(nodes, c)
		}
	}
	return
}

// FindAll returns every descendant element of n with one of the given tags,
// in document order. Matches are still searched for descendants.
func (n *Node) FindAll(tags ...string) (nodes []*Node) {
	for _, c := range n.Children {
		if c.Is(tags...) {
			nodes = append(nodes, c)
		}
		nodes = append(nodes, c.FindAll(tags...)...)
	}
	return
}

// Contains reports whether any descendant of n is an element with one of the
// given tags
func (n *Node) Contains(tags ...string) bool {
	for _, c := range n.Children {
		if c.Is(tags...) || c.Contains(tags...) {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated raw text of n and its descendants
func (n *Node) TextContent() string {
	if n.Kind == TextNode {
		return n.Text
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, c := range n.Children {
		if c.Kind == TextNode {
			sb.WriteString(c.Text)
		} else {
			c.writeText(sb)
		}
	}
}
