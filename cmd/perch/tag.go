package main

import (
	"fmt"
	"strings"

	"github.com/wizperch/perch"
)

// Run executes the tag command.
func (c *TagCmd) Run(deps *Dependencies) error {
	if len(c.Tags) == 0 && !c.Clear && c.Passage == nil && c.Title == nil {
		return fail(deps, perch.Errorf(perch.EINVALID, "nothing to update: give tags, --clear, --passage or --title"))
	}

	page, err := findPage(deps, c.URL)
	if err != nil {
		return fail(deps, err)
	}

	upd := perch.PageUpdate{Passage: c.Passage, Title: c.Title}
	switch {
	case c.Clear:
		upd.Tags = []string{}
	case len(c.Tags) > 0:
		upd.Tags = c.Tags
	}

	page, err = deps.Pages.UpdatePage(deps.Ctx, page.ID, upd)
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Updated %s", page.URL)
	if len(page.Tags) > 0 {
		fmt.Fprintf(deps.Stdout, " [%s]", strings.Join(page.Tags, ", "))
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
