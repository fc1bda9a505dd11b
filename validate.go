package perch

import "strings"

// Valid reports whether n looks like readable prose: enough trimmed text and
// no more than MaxLinkDensity of it inside links.
func (e *Engine) Valid(n Node) bool {
	if n == nil {
		return false
	}

	length := textLength(strings.TrimSpace(TextContent(n)))
	if length < e.cfg.MinTextLength || length == 0 {
		return false
	}

	return LinkDensity(n) <= e.cfg.MaxLinkDensity
}

// LinkDensity returns the share of the trimmed text of n that sits inside
// descendant anchor elements. Empty nodes have a density of 0.
func LinkDensity(n Node) float64 {
	total := textLength(strings.TrimSpace(TextContent(n)))
	if total == 0 {
		return 0
	}

	var linked int
	for _, a := range FindAll(n, isTag("a")) {
		linked += textLength(TextContent(a))
	}
	return float64(linked) / float64(total)
}
