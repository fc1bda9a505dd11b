package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/wizperch/perch"
	"github.com/wizperch/perch/gemini"
	"github.com/wizperch/perch/goquery"
	"github.com/wizperch/perch/htmltomarkdown"
	perchhttp "github.com/wizperch/perch/http"
	"github.com/wizperch/perch/readability"
	"github.com/wizperch/perch/rod"
	perchslog "github.com/wizperch/perch/slog"
	"github.com/wizperch/perch/sqlite"
	"github.com/wizperch/perch/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PageService    perch.PageService
	CommentService perch.CommentService

	browser *rod.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.browser != nil {
		_ = m.browser.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// storageCommands are the commands that open the database.
var storageCommands = map[string]bool{
	"save": true, "pages": true, "show": true, "comments": true,
	"tag": true, "delete": true, "export": true,
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("perch"),
		kong.Description("Capture the main content and comments of web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'perch --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	engine, err := perch.NewEngine(cli.EngineFlags.Config())
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", perch.ErrorMessage(err))
		return err
	}
	deps.Engine = engine
	deps.Render = cli.Render
	deps.Converter = htmltomarkdown.NewConverter()

	extractor := goquery.NewExtractor(engine)
	deps.Extractor = extractor
	deps.Extractors = func(pageURL string) []perch.Extractor {
		return []perch.Extractor{
			extractor,
			trafilatura.NewExtractor(),
			readability.NewExtractor().WithPageURL(pageURL),
		}
	}

	var httpFetcher perch.Fetcher = perchhttp.NewFetcher(perchhttp.WithTimeout(cli.Timeout))
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
		httpFetcher = perchslog.NewLoggingFetcher(httpFetcher, deps.Logger)
		deps.Extractor = perchslog.NewLoggingExtractor(extractor, deps.Logger)
	}
	deps.HTTP = httpFetcher
	deps.Browser = func() (perch.Fetcher, error) {
		if m.browser == nil {
			browser, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout), rod.WithSettle(cli.Settle))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			m.browser = browser
		}
		if deps.Logger != nil {
			return perchslog.NewLoggingFetcher(m.browser, deps.Logger), nil
		}
		return m.browser, nil
	}
	defer m.Close()

	if storageCommands[cmd] {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PERCH_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		m.PageService = sqlite.NewPageService(m.DB)
		m.CommentService = sqlite.NewCommentService(m.DB)
		deps.Pages = m.PageService
		deps.Comments = m.CommentService
	}

	if cmd == "save" {
		if cli.Save.Tokens {
			tc, err := gemini.NewTokenCounter("")
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			deps.TokenCounter = tc
		}
		if cli.Save.Summarize {
			summarizer, err := newSummarizer(ctx, stderr)
			if err != nil {
				return err
			}
			deps.Summarizer = summarizer
			if deps.Logger != nil {
				deps.Summarizer = perchslog.NewLoggingSummarizer(summarizer, deps.Logger)
			}
		}
	}

	return kongCtx.Run(deps)
}

func newSummarizer(ctx context.Context, stderr io.Writer) (*gemini.Summarizer, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, perch.Errorf(perch.EINVALID, "GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return gemini.NewSummarizer(client, os.Getenv("PERCH_GEMINI_MODEL")), nil
}

func defaultDBPath() string {
	if path := os.Getenv("PERCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "perch.db"
	}
	dir := filepath.Join(home, ".perch")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "perch.db")
}
