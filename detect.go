package perch

import "strings"

// FindCommentContainers returns the nodes under root that likely hold user
// discussion. Two independent passes contribute:
//
//   - keyword pass: elements whose class or id mentions a comment keyword,
//     each replaced by its outermost ancestor that looks like a container
//   - structural pass: ul, ol and div elements that look like a list of
//     comment-sized items
//
// Containers are deduplicated by identity. The slice order is deterministic
// but carries no meaning.
func (e *Engine) FindCommentContainers(root Node) ([]Node, error) {
	if root == nil {
		return nil, Errorf(EINVALID, "document root required")
	}

	var out []Node
	seen := make(map[Node]struct{})
	add := func(n Node) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	if e.keywords != nil {
		for _, el := range FindAll(root, e.mentionsComment) {
			add(e.outermostContainer(root, el))
		}
	}

	for _, el := range FindAll(root, isTag("ul", "ol", "div")) {
		if e.LooksLikeCommentList(el) {
			add(el)
		}
	}

	return out, nil
}

func (e *Engine) mentionsComment(n Node) bool {
	return e.keywords.MatchString(n.Attr("class")) || e.keywords.MatchString(n.Attr("id"))
}

// outermostContainer walks from n towards root and returns the highest
// ancestor that looks like a comment container, or n itself.
func (e *Engine) outermostContainer(root, n Node) Node {
	container := n
	if n == root {
		return container
	}
	for p := n.Parent(); p != nil && p.Type() == ElementNode; p = p.Parent() {
		if e.LooksLikeCommentContainer(p) {
			container = p
		}
		if p == root {
			break
		}
	}
	return container
}

// LooksLikeCommentContainer reports whether n has several element children
// with one tag name repeated often enough to suggest a list of items.
func (e *Engine) LooksLikeCommentContainer(n Node) bool {
	kids := ElementChildren(n)
	if len(kids) < e.cfg.ContainerMinChildren {
		return false
	}

	counts := make(map[string]int, len(kids))
	for _, k := range kids {
		counts[k.Tag()]++
		if counts[k.Tag()] >= e.cfg.ContainerMinRepeats {
			return true
		}
	}
	return false
}

// LooksLikeCommentList reports whether n has enough children whose text is
// sized like a single comment.
func (e *Engine) LooksLikeCommentList(n Node) bool {
	kids := ElementChildren(n)
	if len(kids) < e.cfg.ListMinItems {
		return false
	}

	valid := 0
	for _, k := range kids {
		length := textLength(strings.TrimSpace(TextContent(k)))
		if length > e.cfg.ItemMinLength && length < e.cfg.ItemMaxLength {
			valid++
		}
	}
	return valid >= e.cfg.ListMinItems
}
