package main_test

import (
	"bytes"
	"context"
	"strings"

	"github.com/wizperch/perch"
	main "github.com/wizperch/perch/cmd/perch"
	"github.com/wizperch/perch/goquery"
	"github.com/wizperch/perch/htmltomarkdown"
)

// blogPost is a page with an article and a three-comment section.
const blogPost = `<!DOCTYPE html>
<html>
<head><title>Trip Report</title></head>
<body>
<nav><a href="/">Home</a><a href="/blog">Blog</a></nav>
<article>
<h1>Trip Report</h1>
<p>We set out early on the first morning and followed the river valley north for most of the day.</p>
<p>By evening the weather had turned and we made camp below the ridge, hoping for a clear sunrise.</p>
</article>
<section id="comments">
<div class="comment"><span class="nickname">hiker42</span><p>Beautiful write-up, the photos must be amazing.</p><span class="likes">12</span></div>
<div class="comment"><span class="nickname">trailmom</span><p>Which trailhead did you start from on day one?</p></div>
<div class="comment"><span class="nickname">ridge</span><p>We did the same loop last autumn and loved it.</p></div>
</section>
</body>
</html>`

// newDeps returns Dependencies wired with the real extractor and converter
// and buffers for output. Storage and fetching are left to the test.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	engine := perch.MustEngine(perch.DefaultConfig())
	extractor := goquery.NewExtractor(engine)
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdin:     strings.NewReader(""),
		Stdout:    stdout,
		Stderr:    stderr,
		Engine:    engine,
		Extractor: extractor,
		Converter: htmltomarkdown.NewConverter(),
		Extractors: func(string) []perch.Extractor {
			return []perch.Extractor{extractor}
		},
	}, stdout, stderr
}
