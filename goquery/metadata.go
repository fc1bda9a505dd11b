package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata is the descriptive information a page declares about itself.
type Metadata struct {
	Title       string
	Description string
	Favicon     string
	Keywords    []string
}

// Metadata reads title, description, favicon and keywords from the document
// head. pageURL resolves a relative favicon; an unparsable pageURL leaves
// the favicon as written.
func (d *Document) Metadata(pageURL string) Metadata {
	return Metadata{
		Title:       d.Title(),
		Description: firstNonEmpty(metaContent(d.Selection, "name", "description"), metaContent(d.Selection, "property", "og:description")),
		Favicon:     d.favicon(pageURL),
		Keywords:    splitKeywords(metaContent(d.Selection, "name", "keywords")),
	}
}

// Title returns the <title> text, falling back to og:title.
func (d *Document) Title() string {
	title := strings.TrimSpace(d.Find("title").First().Text())
	return firstNonEmpty(title, metaContent(d.Selection, "property", "og:title"))
}

func (d *Document) favicon(pageURL string) string {
	var href string
	d.Find("link[rel]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, rel := range strings.Fields(strings.ToLower(s.AttrOr("rel", ""))) {
			if rel == "icon" {
				href = strings.TrimSpace(s.AttrOr("href", ""))
				return href == ""
			}
		}
		return true
	})
	if href == "" {
		href = "/favicon.ico"
	}

	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func metaContent(s *goquery.Selection, attr, value string) string {
	var content string
	s.Find("meta").EachWithBreak(func(_ int, m *goquery.Selection) bool {
		if !strings.EqualFold(m.AttrOr(attr, ""), value) {
			return true
		}
		content = strings.TrimSpace(m.AttrOr("content", ""))
		return content == ""
	})
	return content
}

func splitKeywords(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, kw := range strings.Split(s, ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
