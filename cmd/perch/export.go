package main

import (
	"fmt"
	"path/filepath"

	"github.com/wizperch/perch"
	"github.com/wizperch/perch/epub"
	"github.com/wizperch/perch/fs"
)

// exportPageSize is how many pages are read from storage at a time.
const exportPageSize = 100

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if c.Format == "epub" {
		return c.runEpub(deps)
	}

	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return fail(deps, err)
	}
	store := fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))

	var n int
	err = c.eachPage(deps, func(page *perch.Page) error {
		if err := store.Save(deps.Ctx, page); err != nil {
			return fmt.Errorf("export %s: %w", page.URL, err)
		}
		n++
		return nil
	})
	if err != nil {
		_ = store.Abort()
		return fail(deps, err)
	}
	if err := store.Commit(); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d page(s) to %s\n", n, dir)
	return nil
}

func (c *ExportCmd) runEpub(deps *Dependencies) error {
	var chapters []epub.Chapter
	err := c.eachPage(deps, func(page *perch.Page) error {
		comments, err := deps.Comments.FindComments(deps.Ctx, perch.CommentFilter{PageID: &page.ID})
		if err != nil {
			return err
		}
		chapters = append(chapters, epub.Chapter{Page: page, Comments: comments})
		return nil
	})
	if err != nil {
		return fail(deps, err)
	}

	if err := epub.Write(c.Dir, c.Title, chapters); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d page(s) to %s\n", len(chapters), c.Dir)
	return nil
}

// eachPage walks every stored page matching the tag filter in storage order.
func (c *ExportCmd) eachPage(deps *Dependencies, fn func(*perch.Page) error) error {
	filter := perch.PageFilter{Limit: exportPageSize}
	if c.Tag != "" {
		filter.Tag = &c.Tag
	}

	for {
		pages, err := deps.Pages.FindPages(deps.Ctx, filter)
		if err != nil {
			return err
		}
		for _, page := range pages {
			if err := fn(page); err != nil {
				return err
			}
		}
		if len(pages) < exportPageSize {
			return nil
		}
		filter.Offset += exportPageSize
	}
}
