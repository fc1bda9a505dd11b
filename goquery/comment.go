package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/wizperch/perch"
	"golang.org/x/net/html"
)

// Selectors used to split a discussion section into items.
const (
	itemSelector     = `li, .comment-item, [class*="comment"], article, .reply, [class*="reply"]`
	controlsSelector = `button, input, textarea, a[class*="btn"]`
	authorSelector   = `[class*="author"], [class*="nick"], [class*="user"], [class*="name"]`
	likesSelector    = `[class*="like"], [class*="vote"], [class*="recommend"]`
)

// DefaultMinCommentLength is the text length an item must exceed to count
// as a comment.
const DefaultMinCommentLength = 15

var digits = regexp.MustCompile(`\d[\d,]*`)

// CommentExtractor splits detected discussion sections into individual
// comments.
type CommentExtractor struct {
	// MinLength drops items whose text has this many characters or fewer.
	MinLength int
}

// NewCommentExtractor creates a CommentExtractor with default settings.
func NewCommentExtractor() *CommentExtractor {
	return &CommentExtractor{MinLength: DefaultMinCommentLength}
}

// Extract returns the comments found in containers, in container order and
// document order within each container. Items are deduplicated by node and
// by text. PageID and ID are left for the caller to assign.
func (x *CommentExtractor) Extract(containers []perch.Node) []*perch.Comment {
	var comments []*perch.Comment
	seenNodes := make(map[*html.Node]bool)
	seenText := make(map[string]bool)

	for _, c := range containers {
		Selection(c).Find(itemSelector).Each(func(_ int, item *goquery.Selection) {
			n := item.Get(0)
			if seenNodes[n] {
				return
			}
			seenNodes[n] = true

			text := itemText(item)
			if utf8.RuneCountInString(text) <= x.MinLength || seenText[text] {
				return
			}
			seenText[text] = true

			comments = append(comments, &perch.Comment{
				Author:   author(item),
				Text:     text,
				Likes:    likes(item),
				Position: len(comments),
			})
		})
	}
	return comments
}

// itemText returns the text of item with form controls and buttons removed,
// whitespace collapsed.
func itemText(item *goquery.Selection) string {
	clone := item.Clone()
	clone.Find(controlsSelector).Remove()
	return strings.Join(strings.Fields(clone.Text()), " ")
}

func author(item *goquery.Selection) string {
	var name string
	item.Find(authorSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name = strings.Join(strings.Fields(s.Text()), " ")
		return name == ""
	})
	return name
}

func likes(item *goquery.Selection) int {
	var count int
	item.Find(likesSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		m := digits.FindString(s.Text())
		if m == "" {
			return true
		}
		n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
		if err != nil {
			return true
		}
		count = n
		return false
	})
	return count
}
