package goquery

import (
	"github.com/wizperch/perch"
	"golang.org/x/net/html"
)

// node adapts an *html.Node to perch.Node. It wraps the pointer by value so
// that two nodes compare equal exactly when they wrap the same *html.Node.
type node struct {
	n *html.Node
}

var _ perch.Node = node{}

func wrap(n *html.Node) perch.Node {
	if n == nil {
		return nil
	}
	return node{n: n}
}

// Wrap returns n as a perch.Node.
func Wrap(n *html.Node) perch.Node {
	return wrap(n)
}

func (x node) Type() perch.NodeType {
	switch x.n.Type {
	case html.DocumentNode:
		return perch.DocumentNode
	case html.ElementNode:
		return perch.ElementNode
	case html.TextNode:
		return perch.TextNode
	default:
		return perch.OtherNode
	}
}

func (x node) Tag() string {
	if x.n.Type != html.ElementNode {
		return ""
	}
	return x.n.Data
}

func (x node) Attr(key string) string {
	for _, a := range x.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (x node) Attrs() []perch.Attribute {
	out := make([]perch.Attribute, 0, len(x.n.Attr))
	for _, a := range x.n.Attr {
		out = append(out, perch.Attribute{Key: a.Key, Val: a.Val})
	}
	return out
}

func (x node) Data() string {
	if x.n.Type != html.TextNode {
		return ""
	}
	return x.n.Data
}

func (x node) Parent() perch.Node {
	return wrap(x.n.Parent)
}

func (x node) Children() []perch.Node {
	var out []perch.Node
	for c := x.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, node{n: c})
	}
	return out
}

// HTMLNode returns the *html.Node behind a node produced by this package.
// Reports false for any other perch.Node implementation.
func HTMLNode(n perch.Node) (*html.Node, bool) {
	x, ok := n.(node)
	if !ok {
		return nil, false
	}
	return x.n, true
}
