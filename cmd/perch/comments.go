package main

import (
	"fmt"

	"github.com/wizperch/perch"
)

// Run executes the comments command.
func (c *CommentsCmd) Run(deps *Dependencies) error {
	page, err := findPage(deps, c.URL)
	if err != nil {
		return fail(deps, err)
	}

	comments, err := deps.Comments.FindComments(deps.Ctx, perch.CommentFilter{
		PageID: &page.ID,
		Limit:  c.Limit,
		Offset: c.Offset,
	})
	if err != nil {
		return fail(deps, err)
	}

	if len(comments) == 0 {
		fmt.Fprintf(deps.Stdout, "No comments stored for %s\n", page.URL)
		return nil
	}
	printComments(deps, comments)
	return nil
}
