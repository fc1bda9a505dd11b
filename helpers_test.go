package perch_test

import (
	"fmt"
	"strings"

	"github.com/wizperch/perch"
)

// el builds an element from attributes, text and child elements.
func el(tag string, parts ...any) *perch.Element {
	var attrs []perch.Attribute
	var kids []*perch.Element
	for _, p := range parts {
		switch v := p.(type) {
		case perch.Attribute:
			attrs = append(attrs, v)
		case string:
			kids = append(kids, perch.NewText(v))
		case *perch.Element:
			kids = append(kids, v)
		default:
			panic(fmt.Sprintf("unsupported part %T", p))
		}
	}
	e := perch.NewElement(tag, attrs...)
	for _, k := range kids {
		e.AppendChild(k)
	}
	return e
}

func class(v string) perch.Attribute { return perch.Attribute{Key: "class", Val: v} }
func id(v string) perch.Attribute    { return perch.Attribute{Key: "id", Val: v} }
func attr(k, v string) perch.Attribute {
	return perch.Attribute{Key: k, Val: v}
}

// page wraps body children in a document/html/head/body skeleton.
func page(body ...any) *perch.Element {
	doc := perch.NewDocument()
	doc.AppendChild(el("html", el("head", el("title", "Test")), el("body", body...)))
	return doc
}

// prose returns n characters of readable text without anchors.
func prose(n int) string {
	const sentence = "The quick brown fox jumps over the lazy dog. "
	s := strings.Repeat(sentence, n/len(sentence)+1)
	return s[:n]
}

// dump serializes a tree so two snapshots can be compared for equality.
func dump(n perch.Node) string {
	var b strings.Builder
	var walk func(perch.Node, int)
	walk = func(n perch.Node, depth int) {
		b.WriteString(strings.Repeat(" ", depth))
		switch n.Type() {
		case perch.TextNode:
			fmt.Fprintf(&b, "%q\n", n.Data())
		default:
			fmt.Fprintf(&b, "<%s %v>\n", n.Tag(), n.Attrs())
		}
		for _, c := range n.Children() {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
	return b.String()
}
