package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	page, err := findPage(deps, c.URL)
	if err != nil {
		return fail(deps, err)
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	fmt.Fprintf(deps.Stdout, "# %s\n\n", page.Title)
	fmt.Fprintf(deps.Stdout, "URL:      %s\n", page.URL)
	fmt.Fprintf(deps.Stdout, "Saved:    %s\n", page.UpdatedAt.Local().Format("2006-01-02 15:04"))
	if page.Strategy != "" {
		fmt.Fprintf(deps.Stdout, "Strategy: %s\n", page.Strategy)
	}
	if len(page.Tags) > 0 {
		fmt.Fprintf(deps.Stdout, "Tags:     %s\n", strings.Join(page.Tags, ", "))
	}
	if page.Passage != "" {
		fmt.Fprintf(deps.Stdout, "\n> %s\n", page.Passage)
	}

	body := page.Markdown
	if body == "" {
		body = page.Content
	}
	fmt.Fprintf(deps.Stdout, "\n%s\n", body)
	return nil
}
