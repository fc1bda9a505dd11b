package perch

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string

	// Text is the main content as plain text.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)

	// Name identifies the extractor in comparisons (e.g., "perch", "trafilatura").
	Name() string
}

// Capture is everything extracted from a single page: metadata, the cleaned
// main content and the individual discussion items.
type Capture struct {
	URL         string
	Title       string
	Description string
	Favicon     string
	Keywords    []string

	// Text is the cleaned main content; empty when none was found.
	Text        string
	ContentHTML string
	Strategy    Strategy

	// Containers is the number of discussion sections detected.
	Containers int
	Comments   []*Comment
}

// PageExtractor turns a raw page into a Capture.
type PageExtractor interface {
	// ExtractPage parses rawHTML and extracts content, metadata and comments.
	// pageURL is used to resolve relative references such as the favicon.
	// A page without recognizable content is not an error.
	ExtractPage(rawHTML string, pageURL string) (*Capture, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms cleaned content HTML into Markdown. Relative links
	// and images are resolved against pageURL when it is not empty.
	Convert(html string, pageURL string) (string, error)
}
