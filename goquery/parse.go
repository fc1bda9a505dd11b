package goquery

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"github.com/wizperch/perch"
	"golang.org/x/net/html/charset"
)

// Document is a parsed HTML page.
type Document struct {
	*goquery.Document
}

// Parse parses raw HTML into a Document. Input that is not valid UTF-8 is
// decoded from the detected charset first; valid UTF-8 is parsed as is so
// that multi-byte text is never reinterpreted.
func Parse(rawHTML string) (*Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, perch.Errorf(perch.EINVALID, "empty HTML input")
	}

	data := []byte(rawHTML)
	if !utf8.Valid(data) {
		if label := detectCharset(data); label != "" {
			r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
			if err == nil {
				doc, err := goquery.NewDocumentFromReader(r)
				if err == nil {
					return &Document{Document: doc}, nil
				}
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, perch.Errorf(perch.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{Document: doc}, nil
}

// detectCharset returns the declared or detected charset label of data.
func detectCharset(data []byte) string {
	result, err := chardet.NewHtmlDetector().DetectBest(data)
	if err != nil || result == nil {
		return ""
	}
	return strings.ToLower(result.Charset)
}

// Root returns the document node as the engine's tree root.
func (d *Document) Root() perch.Node {
	if len(d.Nodes) == 0 {
		return nil
	}
	return wrap(d.Nodes[0])
}

// Selection returns a goquery selection holding n. n must come from this
// package or be convertible with Render.
func Selection(n perch.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(toHTML(n)).Selection
}
