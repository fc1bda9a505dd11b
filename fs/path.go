// Package fs exports captured pages as Markdown files.
package fs

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/wizperch/perch"
	"gopkg.in/yaml.v3"
)

// URLToPath converts a page URL to a relative file path rooted at its host.
// Example: https://news.example.com/2024/budget → news.example.com/2024/budget.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", perch.Errorf(perch.EINVALID, "invalid URL: %s", rawURL)
	}
	if u.Host == "" {
		return "", perch.Errorf(perch.EINVALID, "URL has no host: %s", rawURL)
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == ".." {
			return "", perch.Errorf(perch.EINVALID, "path traversal in URL: %s", rawURL)
		}
	}

	host := strings.ReplaceAll(strings.ToLower(u.Host), ":", "_")
	p := strings.TrimPrefix(u.Path, "/")

	switch {
	case p == "":
		p = "index.md"
	case strings.HasSuffix(p, "/"):
		p += "index.md"
	default:
		p += ".md"
	}

	joined := path.Join(host, p)
	if host == "." || host == ".." || !strings.HasPrefix(joined, host+"/") {
		return "", perch.Errorf(perch.EINVALID, "path traversal in URL: %s", rawURL)
	}
	return joined, nil
}

// frontmatter is the YAML header written above each exported page.
type frontmatter struct {
	Source  string   `yaml:"source"`
	Title   string   `yaml:"title"`
	Passage string   `yaml:"passage,omitempty"`
	Tags    []string `yaml:"tags,omitempty,flow"`
	Saved   string   `yaml:"saved,omitempty"`
}

// FormatPage formats a page as Markdown with YAML frontmatter. The body is
// the page's Markdown, or its plain text when no Markdown was produced.
func FormatPage(page *perch.Page) (string, error) {
	fm := frontmatter{
		Source:  page.URL,
		Title:   page.Title,
		Passage: page.Passage,
		Tags:    page.Tags,
	}
	if !page.UpdatedAt.IsZero() {
		fm.Saved = page.UpdatedAt.UTC().Format("2006-01-02")
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("frontmatter for %s: %w", page.URL, err)
	}

	body := page.Markdown
	if body == "" {
		body = page.Content
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}
