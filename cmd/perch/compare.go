package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/wizperch/perch"
	"github.com/wizperch/perch/batch"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	html, pageURL, err := loadSource(deps, c.Source)
	if err != nil {
		return fail(deps, err)
	}

	extractors := deps.Extractors(pageURL)
	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EXTRACTOR\tRUNES\tTITLE")
	for _, r := range batch.Compare(html, extractors...) {
		if r.Err != nil {
			fmt.Fprintf(w, "%s\t-\terror: %s\n", r.Name, perch.ErrorMessage(r.Err))
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", r.Name, r.Length, r.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !c.Probe {
		return nil
	}
	if !isURL(c.Source) {
		return fail(deps, perch.Errorf(perch.EINVALID, "--probe requires a URL"))
	}
	return c.probe(deps, extractors[0])
}

// probe fetches the page over plain HTTP and with the browser, and
// reports whether rendering JavaScript changes what is extracted.
func (c *CompareCmd) probe(deps *Dependencies, extractor perch.Extractor) error {
	httpHTML, err := deps.HTTP.Fetch(deps.Ctx, c.Source)
	if err != nil {
		return fail(deps, err)
	}
	browser, err := deps.Browser()
	if err != nil {
		return fail(deps, err)
	}
	renderedHTML, err := browser.Fetch(deps.Ctx, c.Source)
	if err != nil {
		return fail(deps, err)
	}

	if batch.RenderingAddsContent(httpHTML, renderedHTML, extractor) {
		fmt.Fprintln(deps.Stdout, "\nRendering adds content: use --render for this site.")
	} else {
		fmt.Fprintln(deps.Stdout, "\nRendering adds no content: plain HTTP is enough.")
	}
	return nil
}
