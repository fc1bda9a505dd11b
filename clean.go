package perch

import "strings"

// boilerplateTags are removed from content wholesale.
var boilerplateTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
}

// isBoilerplate reports whether a descendant of selected content should be
// dropped before its text is taken. Comment sections are excluded here
// because they are reported separately by FindCommentContainers.
func isBoilerplate(n Node) bool {
	if boilerplateTags[n.Tag()] {
		return true
	}
	if HasClass(n, "ad") || HasClass(n, "advertisement") {
		return true
	}
	class := n.Attr("class")
	if strings.Contains(class, "banner") || strings.Contains(class, "comment") {
		return true
	}
	return strings.Contains(n.Attr("id"), "comment")
}

// Clean copies n, strips boilerplate descendants from the copy and returns
// the remaining trimmed text together with the cleaned copy. n itself is
// never modified and is kept even if it would match a removal rule.
func (e *Engine) Clean(n Node) (string, *Element) {
	if n == nil {
		return "", nil
	}

	clone := Clone(n)
	strip(clone)
	return strings.TrimSpace(TextContent(clone)), clone
}

func strip(el *Element) {
	kept := el.children[:0]
	for _, c := range el.children {
		if c.kind == ElementNode && isBoilerplate(c) {
			c.parent = nil
			continue
		}
		strip(c)
		kept = append(kept, c)
	}
	for i := len(kept); i < len(el.children); i++ {
		el.children[i] = nil
	}
	el.children = kept
}
