// Package epub bundles stored pages and their comments into an EPUB book.
package epub

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	goepub "github.com/go-shiori/go-epub"
	"github.com/wizperch/perch"
)

const stylesheet = `body { margin: 1em; line-height: 1.5; }
.source { font-size: 0.85em; color: #666; }
.comments li { margin-bottom: 0.8em; }
.author { font-weight: bold; margin-bottom: 0; }`

// Chapter is one page of the book with the comments shown below it.
type Chapter struct {
	Page     *perch.Page
	Comments []*perch.Comment
}

// Write builds an EPUB titled title at path, one section per chapter.
func Write(path, title string, chapters []Chapter) error {
	if len(chapters) == 0 {
		return perch.Errorf(perch.EINVALID, "no pages to export")
	}

	book, err := goepub.NewEpub(title)
	if err != nil {
		return fmt.Errorf("creating epub: %w", err)
	}
	book.SetLang("en")
	book.SetAuthor("perch")

	cssPath, err := book.AddCSS("data:text/css;base64,"+base64.StdEncoding.EncodeToString([]byte(stylesheet)), "styles.css")
	if err != nil {
		return fmt.Errorf("adding stylesheet: %w", err)
	}

	for i, ch := range chapters {
		name := fmt.Sprintf("page%03d.xhtml", i+1)
		if _, err := book.AddSection(ChapterBody(ch), chapterTitle(ch.Page, i), name, cssPath); err != nil {
			return fmt.Errorf("adding %s: %w", ch.Page.URL, err)
		}
	}

	if err := book.Write(path); err != nil {
		return fmt.Errorf("writing epub: %w", err)
	}
	return nil
}

func chapterTitle(page *perch.Page, i int) string {
	if page.Title != "" {
		return page.Title
	}
	return fmt.Sprintf("Page %d", i+1)
}

// ChapterBody renders a chapter as XHTML: title, source link, passage,
// text paragraphs and the comment list. All text is escaped.
func ChapterBody(ch Chapter) string {
	page := ch.Page
	esc := html.EscapeString

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(page.Title))
	fmt.Fprintf(&b, "<p class=\"source\"><a href=\"%s\">%s</a></p>\n", esc(page.URL), esc(page.URL))
	if page.Passage != "" {
		fmt.Fprintf(&b, "<blockquote><p>%s</p></blockquote>\n", esc(page.Passage))
	}
	for _, para := range paragraphs(page.Content) {
		fmt.Fprintf(&b, "<p>%s</p>\n", esc(para))
	}

	if len(ch.Comments) > 0 {
		fmt.Fprintf(&b, "<h2>Comments (%d)</h2>\n<ol class=\"comments\">\n", len(ch.Comments))
		for _, c := range ch.Comments {
			b.WriteString("<li>")
			if c.Author != "" {
				fmt.Fprintf(&b, "<p class=\"author\">%s</p>", esc(c.Author))
			}
			fmt.Fprintf(&b, "<p>%s</p></li>\n", esc(c.Text))
		}
		b.WriteString("</ol>\n")
	}
	return b.String()
}

// paragraphs splits extracted text on line breaks, dropping blank lines.
func paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
