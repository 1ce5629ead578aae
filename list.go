package jiramarkup

import "strings"

func listMarker(n *Node) byte {
	if n.Tag == "ol" {
		return markerOrdered
	}
	return markerUnordered
}

func renderList(marker byte) renderFunc {
	return func(n *Node, ctx listContext) string {
		var sb strings.Builder
		for _, li := range n.ChildElements("li") {
			sb.WriteString(renderListItem(li, listContext{marker: marker, level: ctx.level}))
		}
		return sb.String()
	}
}

// renderListItem renders li as a single item line. The marker is repeated
// once per nesting level, so a second level unordered item reads "** text".
// Lists nested directly in the item follow it, one item per line.
func renderListItem(li *Node, ctx listContext) string {
	var sb strings.Builder
	for _, c := range li.Children {
		if c.Is("ul", "ol") {
			nested := listContext{marker: listMarker(c), level: ctx.level + 1}
			for _, item := range c.ChildElements("li") {
				sb.WriteString("\n" + renderListItem(item, nested))
			}
			continue
		}
		sb.WriteString(renderNode(c, ctx))
	}

	prefix := strings.Repeat(string(ctx.marker), ctx.level+1)
	return prefix + " " + strings.TrimSpace(sb.String()) + "\n"
}
