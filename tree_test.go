package jiramarkup

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// tags returns the tags of the element children of n, and "#text" for text
func tags(n *Node) []string {
	var out []string
	for _, c := range n.Children {
		if c.Kind == TextNode {
			out = append(out, "#text")
		} else {
			out = append(out, c.Tag)
		}
	}
	return out
}

func mustParse(t *testing.T, src string) *Node {
	t.Helper()
	root, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return root
}

func TestParseKeepsStructure(t *testing.T) {
	root := mustParse(t, "<table><tr><td>1</td></tr></table>")

	if got, want := tags(root), []string{"table"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("root children = %v, want %v", got, want)
	}
	table := root.Children[0]
	if got, want := tags(table), []string{"tr"}; !reflect.DeepEqual(got, want) {
		t.Errorf("table children = %v, want %v (no implied tbody)", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  []int // child indexes leading to the node under test
		want  []string
	}{
		{
			name:  "void elements take no children",
			input: "<p>a<br>b<img src=x>c</p>",
			path:  []int{0},
			want:  []string{"#text", "br", "#text", "img", "#text"},
		},
		{
			name:  "self closing elements take no children",
			input: "<div><span/>text</div>",
			path:  []int{0},
			want:  []string{"span", "#text"},
		},
		{
			name:  "stray end tags are ignored",
			input: "</div><p>x</b></p>",
			path:  []int{},
			want:  []string{"p"},
		},
		{
			name:  "li closes an open li",
			input: "<ul><li>one<li>two</ul>",
			path:  []int{0},
			want:  []string{"li", "li"},
		},
		{
			name:  "li does not close an li of an outer list",
			input: "<ul><li>one<ol><li>a<li>b</ol></li></ul>",
			path:  []int{0, 0},
			want:  []string{"#text", "ol"},
		},
		{
			name:  "p closes an open p",
			input: "<p>one<p>two",
			path:  []int{},
			want:  []string{"p", "p"},
		},
		{
			name:  "end tag closes unclosed children",
			input: "<div><b><i>x</div>y",
			path:  []int{},
			want:  []string{"div", "#text"},
		},
		{
			name:  "comments and doctype are skipped",
			input: "<!DOCTYPE html><!-- note --><p>x</p>",
			path:  []int{},
			want:  []string{"p"},
		},
		{
			name:  "script and style are dropped",
			input: "<script>var a = '<p>';</script><p>x</p><style>p{}</style>",
			path:  []int{},
			want:  []string{"p"},
		},
		{
			name:  "noscript children are elements",
			input: "<noscript><p>enable js</p></noscript>",
			path:  []int{0},
			want:  []string{"p"},
		},
		{
			name:  "iframe children are elements",
			input: "<iframe><b>inner</b></iframe>",
			path:  []int{0},
			want:  []string{"b"},
		},
		{
			name:  "textarea children are elements",
			input: "<textarea>a <i>b</i></textarea>",
			path:  []int{0},
			want:  []string{"#text", "i"},
		},
		{
			name:  "self closing script still drops its content",
			input: "<script/>var a = '<p>';</script><p>x</p>",
			path:  []int{},
			want:  []string{"p"},
		},
		{
			name:  "upper case tags are lowered",
			input: "<DIV><B>x</B></DIV>",
			path:  []int{0},
			want:  []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustParse(t, tt.input)
			for _, i := range tt.path {
				n = n.Children[i]
			}
			if got := tags(n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("children = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAttributes(t *testing.T) {
	root := mustParse(t, `<a HREF="https://example.com/?a=1&amp;b=2" title='t' data-x>x</a>`)
	a := root.Children[0]

	want := []Attr{
		{Key: "href", Val: "https://example.com/?a=1&b=2"},
		{Key: "title", Val: "t"},
		{Key: "data-x", Val: ""},
	}
	if !reflect.DeepEqual(a.Attrs, want) {
		t.Errorf("attrs = %#v, want %#v", a.Attrs, want)
	}
	if got := a.Attr("href"); got != "https://example.com/?a=1&b=2" {
		t.Errorf("Attr(href) = %q", got)
	}
	if got := a.Attr("missing"); got != "" {
		t.Errorf("Attr(missing) = %q, want empty", got)
	}
}

func TestParseText(t *testing.T) {
	root := mustParse(t, "<p>fish &amp; chips\r\nto go</p>")
	p := root.Children[0]
	if len(p.Children) != 1 {
		t.Fatalf("expected 1 text node got %d", len(p.Children))
	}
	if got, want := p.Children[0].Text, "fish & chips\nto go"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestParseMaxDepth(t *testing.T) {
	old := MaxDepth
	MaxDepth = 3
	t.Cleanup(func() { MaxDepth = old })

	root := mustParse(t, "<div><div><div><div><b>x</b></div></div></div></div>")

	depth := 0
	for n := root; len(n.Children) != 0; n = n.Children[len(n.Children)-1] {
		depth++
	}
	if depth > MaxDepth+1 {
		t.Errorf("tree depth %d exceeds MaxDepth %d", depth, MaxDepth)
	}
	// Elements past MaxDepth are dropped; their text still renders
	if got := RenderTree(root); got != "x" {
		t.Errorf("RenderTree() = %q, want %q", got, "x")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{`<div><div><div><a href="https://example.com">link</a> <i>it</i></div></div></div>`, "link it"},
		{"<div><div><div><p>a<br>b</p></div></div></div>", "a\nb"},
		{"<div><b>ok</b><div><div><b>deep</b></div></div></div>", "*ok*deep"},
	}
	for _, test := range tests {
		if got := Convert(test.input); got != test.expected {
			t.Errorf("Convert(%q) = %q, want %q", test.input, got, test.expected)
		}
	}
}

func TestParseReadError(t *testing.T) {
	_, err := Parse(iotestErrReader{})
	if err == nil {
		t.Fatalf("Parse error = nil, want error")
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("error %q does not wrap the read error", err)
	}
}

func TestNodeQueries(t *testing.T) {
	root := mustParse(t, "<table><thead><tr><th>a</th></tr></thead><tr><td>b<table><tr><td>c</td></tr></table></td></tr></table>")
	table := root.Children[0]

	if got := len(table.ChildElements("tr")); got != 1 {
		t.Errorf("ChildElements(tr) = %d, want 1", got)
	}
	if got := len(table.FindAll("tr")); got != 3 {
		t.Errorf("FindAll(tr) = %d, want 3", got)
	}
	if got := len(table.FindAll("td", "th")); got != 3 {
		t.Errorf("FindAll(td, th) = %d, want 3", got)
	}
	if !table.Contains("th") {
		t.Errorf("Contains(th) = false, want true")
	}
	if table.Contains("li") {
		t.Errorf("Contains(li) = true, want false")
	}
	if got := table.TextContent(); got != "abc" {
		t.Errorf("TextContent() = %q, want %q", got, "abc")
	}
}
