package perch

import (
	"regexp"
	"strings"
)

// Strategy names the rule that located a page's main content.
type Strategy string

// Content location strategies, in the order they are tried.
const (
	StrategyNone         Strategy = ""
	StrategyArticle      Strategy = "article"
	StrategyMain         Strategy = "main"
	StrategyRoleMain     Strategy = "role-main"
	StrategyArticleBody  Strategy = "article-body"
	StrategyPostContent  Strategy = "post-content"
	StrategyEntryContent Strategy = "entry-content"
	StrategyArticleClass Strategy = "article-attr"
	StrategyContentClass Strategy = "content-attr"
	StrategyArticleID    Strategy = "article-id"
	StrategyContentID    Strategy = "content-id"
	StrategyLongestBlock Strategy = "longest-block"
)

// ExtractionResult holds the main content of a page.
// The zero value means no content was found.
type ExtractionResult struct {
	// Text is the cleaned, trimmed text of the selected block.
	Text string

	// Node is the cleaned copy the text was taken from. It is owned by the
	// caller and shares nothing with the input tree.
	Node Node

	// Strategy is the rule that selected the block.
	Strategy Strategy
}

// Found reports whether any content was extracted.
func (r ExtractionResult) Found() bool {
	return r.Text != ""
}

// Extraction is the full result of running the engine over one tree.
type Extraction struct {
	Content ExtractionResult

	// Comments are the detected discussion containers. They are handles into
	// the input tree and must be treated as an unordered set.
	Comments []Node
}

// rule is one step of the strategy chain. Each rule proposes at most one
// node; the chain accepts the first proposal that passes validation.
type rule struct {
	strategy Strategy
	find     func(root Node) Node
}

// Engine locates main content and discussion sections in document trees.
// An Engine holds only immutable configuration and is safe for concurrent use.
type Engine struct {
	cfg      Config
	keywords *regexp.Regexp
	rules    []rule
}

// NewEngine builds an engine from cfg. The comment keyword pattern is
// compiled once here and reused for every call.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	if len(cfg.CommentKeywords) > 0 {
		quoted := make([]string, len(cfg.CommentKeywords))
		for i, kw := range cfg.CommentKeywords {
			quoted[i] = regexp.QuoteMeta(kw)
		}
		e.keywords = regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))
	}

	e.rules = []rule{
		{StrategyArticle, first(isTag("article"))},
		{StrategyMain, first(isTag("main"))},
		{StrategyRoleMain, first(func(n Node) bool { return strings.EqualFold(n.Attr("role"), "main") })},
		{StrategyArticleBody, first(func(n Node) bool { return HasClass(n, "article-body") })},
		{StrategyPostContent, first(func(n Node) bool { return HasClass(n, "post-content") })},
		{StrategyEntryContent, first(func(n Node) bool { return HasClass(n, "entry-content") })},
		{StrategyArticleClass, first(classOrIDContains("article"))},
		{StrategyContentClass, first(classOrIDContains("content"))},
		{StrategyArticleID, first(func(n Node) bool { return n.Attr("id") == "article" })},
		{StrategyContentID, first(func(n Node) bool { return n.Attr("id") == "content" })},
		{StrategyLongestBlock, e.longestBlock},
	}

	return e, nil
}

// MustEngine is like NewEngine but panics on an invalid configuration.
func MustEngine(cfg Config) *Engine {
	e, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.CommentKeywords = append([]string(nil), e.cfg.CommentKeywords...)
	return cfg
}

// Extract runs content extraction and comment detection over the same tree.
func (e *Engine) Extract(root Node) (*Extraction, error) {
	content, err := e.ExtractContent(root)
	if err != nil {
		return nil, err
	}
	comments, err := e.FindCommentContainers(root)
	if err != nil {
		return nil, err
	}
	return &Extraction{Content: content, Comments: comments}, nil
}

// ExtractContent walks the strategy chain and returns the cleaned text of the
// first block that passes validation. A page without recognizable content
// yields the zero ExtractionResult and a nil error.
func (e *Engine) ExtractContent(root Node) (ExtractionResult, error) {
	if root == nil {
		return ExtractionResult{}, Errorf(EINVALID, "document root required")
	}

	for _, r := range e.rules {
		n := r.find(root)
		if n == nil || !e.Valid(n) {
			continue
		}
		text, cleaned := e.Clean(n)
		return ExtractionResult{
			Text:     text,
			Node:     cleaned,
			Strategy: r.strategy,
		}, nil
	}

	return ExtractionResult{}, nil
}

func first(match func(Node) bool) func(Node) Node {
	return func(root Node) Node {
		return FindFirst(root, match)
	}
}

func isTag(tags ...string) func(Node) bool {
	return func(n Node) bool {
		for _, t := range tags {
			if n.Tag() == t {
				return true
			}
		}
		return false
	}
}

func classOrIDContains(sub string) func(Node) bool {
	return func(n Node) bool {
		return strings.Contains(n.Attr("class"), sub) || strings.Contains(n.Attr("id"), sub)
	}
}
