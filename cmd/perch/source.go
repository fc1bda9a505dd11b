package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/wizperch/perch"
)

// isURL reports whether source names a web page rather than a file.
func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// loadSource returns the HTML of a URL, local file or stdin ("-"), and the
// page URL metadata is resolved against. Files have no page URL.
func loadSource(deps *Dependencies, source string) (html string, pageURL string, err error) {
	switch {
	case isURL(source):
		fetcher, err := deps.Fetcher()
		if err != nil {
			return "", "", err
		}
		html, err := fetcher.Fetch(deps.Ctx, source)
		if err != nil {
			return "", "", err
		}
		return html, source, nil

	case source == "-":
		b, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", "", err
		}
		if err := checkTextual(b, "stdin"); err != nil {
			return "", "", err
		}
		return string(b), "", nil

	default:
		b, err := os.ReadFile(source)
		if os.IsNotExist(err) {
			return "", "", perch.Errorf(perch.ENOTFOUND, "file %q not found", source)
		} else if err != nil {
			return "", "", err
		}
		if err := checkTextual(b, source); err != nil {
			return "", "", err
		}
		return string(b), "", nil
	}
}

// checkTextual rejects binary input such as images or PDFs passed by mistake.
func checkTextual(b []byte, name string) error {
	if len(b) == 0 {
		return nil
	}
	detected := mimetype.Detect(b)
	for mt := detected; mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return nil
		}
	}
	return perch.Errorf(perch.EINVALID, "%s is not an HTML document (detected %s)", name, detected.String())
}

// findPage looks up a stored page by URL.
func findPage(deps *Dependencies, url string) (*perch.Page, error) {
	page, err := deps.Pages.FindPageByURL(deps.Ctx, url)
	if perch.ErrorCode(err) == perch.ENOTFOUND {
		return nil, perch.Errorf(perch.ENOTFOUND, "page %q not found. Use 'perch pages' to see stored pages.", url)
	}
	return page, err
}

// fail prints err the way every command reports errors and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", perch.ErrorMessage(err))
	return err
}
