package perch

// Default engine thresholds.
const (
	DefaultMinContentLength = 25600
	DefaultMinParagraphs    = 2
	DefaultMaxCombined      = 3
	DefaultMinTextLength    = 50
	DefaultMaxLinkDensity   = 0.5
)

// DefaultCommentKeywords are matched case-insensitively against class and id
// attributes when looking for discussion sections.
var DefaultCommentKeywords = []string{
	"comment", "reply", "discussion", "review", "feedback",
	"댓글", "답글", "의견", "리뷰", "토론",
}

// Config holds the tunable thresholds of the extraction engine.
type Config struct {
	// MinContentLength is the paragraph text length at which a single scored
	// block is returned on its own instead of being combined with others.
	MinContentLength int

	// MinParagraphs is the number of descendant paragraphs a block needs to
	// be scored at all.
	MinParagraphs int

	// MaxCombined caps how many scored blocks may be merged.
	MaxCombined int

	// MinTextLength and MaxLinkDensity gate every content candidate.
	MinTextLength  int
	MaxLinkDensity float64

	// CommentKeywords are literal substrings, not patterns.
	CommentKeywords []string

	// A comment container has at least ContainerMinChildren element children
	// and one child tag repeated ContainerMinRepeats times.
	ContainerMinChildren int
	ContainerMinRepeats  int

	// A comment list has at least ListMinItems children whose trimmed text
	// length lies strictly between ItemMinLength and ItemMaxLength.
	ListMinItems  int
	ItemMinLength int
	ItemMaxLength int
}

// DefaultConfig returns the thresholds the engine was calibrated with.
func DefaultConfig() Config {
	return Config{
		MinContentLength:     DefaultMinContentLength,
		MinParagraphs:        DefaultMinParagraphs,
		MaxCombined:          DefaultMaxCombined,
		MinTextLength:        DefaultMinTextLength,
		MaxLinkDensity:       DefaultMaxLinkDensity,
		CommentKeywords:      append([]string(nil), DefaultCommentKeywords...),
		ContainerMinChildren: 2,
		ContainerMinRepeats:  3,
		ListMinItems:         3,
		ItemMinLength:        20,
		ItemMaxLength:        5000,
	}
}

// Validate returns an error if the configuration cannot drive the engine.
func (c *Config) Validate() error {
	if c.MinContentLength <= 0 {
		return Errorf(EINVALID, "minimum content length must be positive")
	}
	if c.MinParagraphs <= 0 {
		return Errorf(EINVALID, "minimum paragraph count must be positive")
	}
	if c.MaxCombined <= 0 {
		return Errorf(EINVALID, "maximum combined blocks must be positive")
	}
	if c.MinTextLength < 0 {
		return Errorf(EINVALID, "minimum text length must not be negative")
	}
	if c.MaxLinkDensity < 0 || c.MaxLinkDensity > 1 {
		return Errorf(EINVALID, "maximum link density must be between 0 and 1")
	}
	for _, kw := range c.CommentKeywords {
		if kw == "" {
			return Errorf(EINVALID, "comment keywords must not be empty")
		}
	}
	if c.ContainerMinChildren <= 0 || c.ContainerMinRepeats <= 0 {
		return Errorf(EINVALID, "comment container thresholds must be positive")
	}
	if c.ListMinItems <= 0 {
		return Errorf(EINVALID, "minimum comment list items must be positive")
	}
	if c.ItemMinLength >= c.ItemMaxLength {
		return Errorf(EINVALID, "comment item length bounds are inverted")
	}
	return nil
}
