package perch

import (
	"sort"
	"strings"
)

// candidate is a scored block considered by the longest-block fallback.
type candidate struct {
	node       Node
	score      float64
	textLength int
}

// scoreBlocks scores every div, section and article under root by the text
// of its descendant paragraphs. The result is sorted by score, highest
// first, with document order breaking ties.
func (e *Engine) scoreBlocks(root Node) []candidate {
	var candidates []candidate
	for _, el := range FindAll(root, isTag("div", "section", "article")) {
		paragraphs := FindAll(el, isTag("p"))
		count := len(paragraphs)
		if count < e.cfg.MinParagraphs {
			continue
		}

		total := 0
		for _, p := range paragraphs {
			total += textLength(TextContent(p))
		}

		// count × average reduces to total: paragraph count only gates.
		score := float64(count) * (float64(total) / float64(count))

		candidates = append(candidates, candidate{
			node:       el,
			score:      score,
			textLength: total,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates
}

// longestBlock returns the highest scoring block when it is long enough on
// its own. Otherwise up to MaxCombined of the best blocks are copied into a
// new div, stopping as soon as their combined text reaches MinContentLength.
func (e *Engine) longestBlock(root Node) Node {
	candidates := e.scoreBlocks(root)
	if len(candidates) == 0 {
		return nil
	}

	if candidates[0].textLength >= e.cfg.MinContentLength {
		return candidates[0].node
	}

	var selected []Node
	combined := 0
	for i := 0; i < min(e.cfg.MaxCombined, len(candidates)); i++ {
		selected = append(selected, candidates[i].node)
		combined += candidates[i].textLength
		if combined >= e.cfg.MinContentLength {
			break
		}
	}

	if len(selected) == 1 {
		return selected[0]
	}

	container := NewElement("div")
	for _, n := range selected {
		container.AppendChild(Clone(n))
	}
	return container
}

// LongestBlock exposes the scoring fallback on its own, bypassing the
// strategy chain and validation.
func (e *Engine) LongestBlock(root Node) Node {
	if root == nil {
		return nil
	}
	return e.longestBlock(root)
}

// BlockScore describes one scored block for diagnostics.
type BlockScore struct {
	Node       Node
	Score      float64
	TextLength int
}

// ScoreBlocks returns the ranked candidates of the scoring fallback.
func (e *Engine) ScoreBlocks(root Node) []BlockScore {
	if root == nil {
		return nil
	}
	candidates := e.scoreBlocks(root)
	out := make([]BlockScore, len(candidates))
	for i, c := range candidates {
		out[i] = BlockScore{Node: c.node, Score: c.score, TextLength: c.textLength}
	}
	return out
}

// Describe returns a short selector-like label for a node, e.g. div#main.post.
func Describe(n Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Tag())
	if id := n.Attr("id"); id != "" {
		b.WriteString("#" + id)
	}
	for _, c := range strings.Fields(n.Attr("class")) {
		b.WriteString("." + c)
	}
	return b.String()
}
