package main

import (
	"fmt"

	"github.com/wizperch/perch"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		return fail(deps, perch.Errorf(perch.EINVALID, "use --force to confirm deletion"))
	}

	page, err := findPage(deps, c.URL)
	if err != nil {
		return fail(deps, err)
	}

	if err := deps.Pages.DeletePage(deps.Ctx, page.ID); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", page.URL)
	return nil
}
