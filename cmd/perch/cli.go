package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/wizperch/perch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Engine    *perch.Engine
	Extractor perch.PageExtractor
	Converter perch.Converter
	Pages     perch.PageService
	Comments  perch.CommentService

	// HTTP fetches pages without JavaScript. Browser starts headless
	// Chrome on first use. Render selects Browser for page sources.
	HTTP    perch.Fetcher
	Browser func() (perch.Fetcher, error)
	Render  bool

	// Optional; nil when GEMINI_API_KEY is unset or the tokenizer is unavailable.
	Summarizer   perch.Summarizer
	TokenCounter perch.TokenCounter

	// Extractors returns the extractors compared for a page.
	Extractors func(pageURL string) []perch.Extractor

	// RetryDelays overrides the fetch backoff of save.
	RetryDelays []time.Duration
}

// Fetcher returns the fetcher selected by the --render flag.
func (d *Dependencies) Fetcher() (perch.Fetcher, error) {
	if d.Render {
		if d.Browser == nil {
			return nil, perch.Errorf(perch.EINVALID, "browser rendering unavailable")
		}
		return d.Browser()
	}
	return d.HTTP, nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Log fetches and extractions to stderr"`
	Render  bool          `short:"r" help:"Fetch pages with headless Chrome"`
	Timeout time.Duration `default:"30s" help:"Fetch timeout per page"`
	Settle  time.Duration `default:"1s" help:"With --render, wait until the page stops changing for this long"`

	EngineFlags `embed:""`

	Extract  ExtractCmd  `cmd:"" help:"Extract content and comments from a URL or HTML file"`
	Save     SaveCmd     `cmd:"" help:"Capture pages and store them"`
	Pages    PagesCmd    `cmd:"" help:"List stored pages"`
	Show     ShowCmd     `cmd:"" help:"Show a stored page"`
	Comments CommentsCmd `cmd:"" help:"List stored comments for a page"`
	Tag      TagCmd      `cmd:"" help:"Set tags, passage or title of a stored page"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored page and its comments"`
	Export   ExportCmd   `cmd:"" help:"Export stored pages as Markdown files or an EPUB book"`
	Compare  CompareCmd  `cmd:"" help:"Compare extractors on a URL or HTML file"`
}

// EngineFlags tune the extraction engine.
type EngineFlags struct {
	MinContentLength int     `env:"PERCH_MIN_CONTENT_LENGTH" default:"25600" help:"Paragraph text length at which one block is enough"`
	MinTextLength    int     `env:"PERCH_MIN_TEXT_LENGTH" default:"50" help:"Minimum text length of a content candidate"`
	MaxLinkDensity   float64 `env:"PERCH_MAX_LINK_DENSITY" default:"0.5" help:"Maximum link density of a content candidate"`
}

// Config returns the engine configuration for the flags.
func (f EngineFlags) Config() perch.Config {
	cfg := perch.DefaultConfig()
	cfg.MinContentLength = f.MinContentLength
	cfg.MinTextLength = f.MinTextLength
	cfg.MaxLinkDensity = f.MaxLinkDensity
	return cfg
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source   string `arg:"" help:"URL, HTML file, or - for stdin"`
	Markdown bool   `short:"m" help:"Print content as Markdown"`
	Comments bool   `short:"c" help:"Print extracted comments"`
	JSON     bool   `name:"json" help:"Print the capture as JSON"`
	Explain  bool   `short:"x" help:"Print the strategy used and the top scored blocks"`
}

// SaveCmd is the "save" subcommand.
type SaveCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs to capture"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	Rate        float64  `default:"1" help:"Requests per second per host"`
	Summarize   bool     `short:"s" help:"Summarize pages with Gemini (requires GEMINI_API_KEY)"`
	Tokens      bool     `help:"Report token counts (loads the Gemini tokenizer)"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	Tag    string `short:"t" help:"Only pages with this tag"`
	Limit  int    `short:"n" default:"20" help:"Maximum pages to list"`
	Offset int    `help:"Pages to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL  string `arg:"" help:"Page URL"`
	JSON bool   `name:"json" help:"Print the page as JSON"`
}

// CommentsCmd is the "comments" subcommand.
type CommentsCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Limit  int    `short:"n" default:"50" help:"Maximum comments to list"`
	Offset int    `help:"Comments to skip"`
}

// TagCmd is the "tag" subcommand.
type TagCmd struct {
	URL     string   `arg:"" help:"Page URL"`
	Tags    []string `arg:"" optional:"" help:"Tags replacing the current ones"`
	Clear   bool     `help:"Remove all tags"`
	Passage *string  `help:"Replace the passage"`
	Title   *string  `help:"Replace the title"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL   string `arg:"" help:"Page URL"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir    string `arg:"" help:"Output directory, replaced atomically, or the .epub file"`
	Tag    string `short:"t" help:"Only pages with this tag"`
	Format string `short:"f" enum:"markdown,epub" default:"markdown" help:"Output format (markdown, epub)"`
	Title  string `help:"Book title for epub output" default:"Saved pages"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Source string `arg:"" help:"URL, HTML file, or - for stdin"`
	Probe  bool   `help:"Also fetch with headless Chrome and report whether rendering adds content"`
}
