package jiramarkup

import "strings"

const (
	headerSep = "||"
	cellSep   = "|"
)

// renderTable renders every row of table on its own line. Rows in thead
// sections use header syntax and rows in tbody sections data syntax; tables
// without sections pick the syntax per row, using header syntax for rows with
// at least one th cell. Tables without any cells render as "".
func renderTable(table *Node) string {
	var rows []string

	for _, head := range table.FindAll("thead") {
		for _, tr := range head.FindAll("tr") {
			if row := renderRow(tr, headerSep); row != "" {
				rows = append(rows, row)
			}
		}
	}
	for _, body := range table.FindAll("tbody") {
		for _, tr := range body.FindAll("tr") {
			if row := renderRow(tr, cellSep); row != "" {
				rows = append(rows, row)
			}
		}
	}

	if len(rows) == 0 {
		for _, tr := range table.ChildElements("tr") {
			sep := cellSep
			if tr.Contains("th") {
				sep = headerSep
			}
			if row := renderRow(tr, sep); row != "" {
				rows = append(rows, row)
			}
		}
	}

	if len(rows) == 0 {
		return ""
	}
	return strings.Join(rows, "\n") + "\n\n"
}

// renderRow joins the trimmed cells of tr with sep and wraps them in it.
// Rows without cells render as "".
func renderRow(tr *Node, sep string) string {
	cells := tr.FindAll("td", "th")
	if len(cells) == 0 {
		return ""
	}
	fields := make([]string, 0, len(cells))
	for _, cell := range cells {
		fields = append(fields, strings.TrimSpace(inline(cell)))
	}
	return sep + strings.Join(fields, sep) + sep
}
