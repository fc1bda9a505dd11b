package main

import (
	"fmt"
	"strings"

	"github.com/wizperch/perch"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	filter := perch.PageFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Tag != "" {
		filter.Tag = &c.Tag
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'perch save' to capture one.")
		return nil
	}

	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", p.UpdatedAt.Local().Format("2006-01-02"), title, p.URL)
		if len(p.Tags) > 0 {
			fmt.Fprintf(deps.Stdout, "            #%s\n", strings.Join(p.Tags, " #"))
		}
	}
	return nil
}
