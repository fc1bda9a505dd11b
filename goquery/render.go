package goquery

import (
	"bytes"

	"github.com/wizperch/perch"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render serializes n, including n itself, as HTML. Nodes that do not come
// from this package are converted first.
func Render(n perch.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, toHTML(n)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// toHTML returns the *html.Node behind n, or a detached copy built from n.
func toHTML(n perch.Node) *html.Node {
	if hn, ok := HTMLNode(n); ok {
		return hn
	}
	return convert(n)
}

func convert(n perch.Node) *html.Node {
	out := &html.Node{}
	switch n.Type() {
	case perch.DocumentNode:
		out.Type = html.DocumentNode
	case perch.ElementNode:
		out.Type = html.ElementNode
		out.Data = n.Tag()
		out.DataAtom = atom.Lookup([]byte(n.Tag()))
		for _, a := range n.Attrs() {
			out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
	case perch.TextNode:
		out.Type = html.TextNode
		out.Data = n.Data()
		return out
	default:
		out.Type = html.CommentNode
		return out
	}
	for _, c := range n.Children() {
		out.AppendChild(convert(c))
	}
	return out
}
