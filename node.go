package perch

import (
	"strings"
	"unicode/utf8"
)

// NodeType identifies the kind of a Node.
type NodeType int

// Node types. OtherNode covers comments, doctypes and anything else that
// carries no text content.
const (
	OtherNode NodeType = iota
	DocumentNode
	ElementNode
	TextNode
)

// Attribute is a single element attribute.
type Attribute struct {
	Key string
	Val string
}

// Node is a read-only view of one node of a parsed document tree.
//
// Implementations must be comparable, and two Node values compare equal
// only when they refer to the same node. The engine never mutates a Node
// it is given; destructive edits happen on copies made with Clone.
type Node interface {
	// Type returns the kind of node.
	Type() NodeType

	// Tag returns the lower-case element name. Empty for non-elements.
	Tag() string

	// Attr returns the value of the named attribute, or "" if absent.
	Attr(key string) string

	// Attrs returns all attributes in source order.
	Attrs() []Attribute

	// Data returns the text of a text node. Empty for other node types.
	Data() string

	// Parent returns the parent node, or nil at the root of the tree.
	Parent() Node

	// Children returns all child nodes, text nodes included, in document order.
	Children() []Node
}

// TextContent returns the concatenated text of all descendant text nodes of n
// in document order.
func TextContent(n Node) string {
	if n == nil {
		return ""
	}
	if n.Type() == TextNode {
		return n.Data()
	}
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n Node) {
	for _, c := range n.Children() {
		switch c.Type() {
		case TextNode:
			b.WriteString(c.Data())
		case ElementNode, DocumentNode:
			writeText(b, c)
		}
	}
}

// textLength counts characters, not bytes, so that Korean and other
// multi-byte text is measured the same way as ASCII.
func textLength(s string) int {
	return utf8.RuneCountInString(s)
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// FindAll returns the descendant elements of root matching match, in
// document order. root itself is never included.
func FindAll(root Node, match func(Node) bool) []Node {
	var out []Node
	for _, c := range children(root) {
		Walk(c, func(n Node) bool {
			if n.Type() == ElementNode && match(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// FindFirst returns the first descendant element of root matching match,
// or nil.
func FindFirst(root Node, match func(Node) bool) Node {
	for _, c := range children(root) {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findFirst(n Node, match func(Node) bool) Node {
	if n.Type() == ElementNode && match(n) {
		return n
	}
	for _, c := range n.Children() {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func children(n Node) []Node {
	if n == nil {
		return nil
	}
	return n.Children()
}

// ElementChildren returns the direct children of n that are elements.
func ElementChildren(n Node) []Node {
	var out []Node
	for _, c := range children(n) {
		if c.Type() == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// HasClass reports whether the class attribute of n contains the
// whitespace-separated token class.
func HasClass(n Node, class string) bool {
	for _, token := range strings.Fields(n.Attr("class")) {
		if token == class {
			return true
		}
	}
	return false
}

// Element is an owned, mutable Node. The engine builds Elements when it
// needs to edit a tree (cleaning) or to synthesize a container around
// several blocks.
type Element struct {
	kind     NodeType
	tag      string
	attrs    []Attribute
	data     string
	parent   *Element
	children []*Element
}

var _ Node = (*Element)(nil)

// NewElement creates a detached element node.
func NewElement(tag string, attrs ...Attribute) *Element {
	return &Element{
		kind:  ElementNode,
		tag:   strings.ToLower(tag),
		attrs: append([]Attribute(nil), attrs...),
	}
}

// NewText creates a detached text node.
func NewText(data string) *Element {
	return &Element{kind: TextNode, data: data}
}

// NewDocument creates an empty document root.
func NewDocument() *Element {
	return &Element{kind: DocumentNode}
}

func (e *Element) Type() NodeType { return e.kind }
func (e *Element) Tag() string    { return e.tag }
func (e *Element) Data() string   { return e.data }

func (e *Element) Attr(key string) string {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (e *Element) Attrs() []Attribute {
	return append([]Attribute(nil), e.attrs...)
}

func (e *Element) Parent() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// AppendChild adds c as the last child of e, detaching it from any
// previous parent first.
func (e *Element) AppendChild(c *Element) {
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = e
	e.children = append(e.children, c)
}

// RemoveChild detaches c from e. Reports whether c was a child of e.
func (e *Element) RemoveChild(c *Element) bool {
	for i, child := range e.children {
		if child == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// Clone returns a deep copy of n as a detached Element tree.
func Clone(n Node) *Element {
	if n == nil {
		return nil
	}
	e := &Element{
		kind:  n.Type(),
		tag:   n.Tag(),
		attrs: n.Attrs(),
		data:  n.Data(),
	}
	for _, c := range n.Children() {
		e.AppendChild(Clone(c))
	}
	return e
}
