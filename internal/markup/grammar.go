package markup

import (
	"strings"

	"github.com/goliatone/go-docs/internal/slug"
)

// MaxHeadingLevel is the deepest heading recognised by the markup.
const MaxHeadingLevel = 3

// Heading is one entry of a page outline.
type Heading struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	AnchorID string `json:"anchor_id"`
}

// headingLine is the result of matching a single source line against the
// heading grammar: 1 to 3 '#' at column zero, one space, then non-blank text.
// start and stop delimit the trimmed text within the line.
type headingLine struct {
	level int
	start int
	stop  int
}

// scanHeadingLine is the only place the heading grammar is defined. The block
// parser used for rendering and the outline extractor both call it, and both
// derive anchors through anchorFor, so ids cannot drift between them.
func scanHeadingLine(line []byte) (headingLine, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > MaxHeadingLevel {
		return headingLine{}, false
	}
	if level >= len(line) || line[level] != ' ' {
		return headingLine{}, false
	}

	start := level + 1
	stop := len(line)
	for start < stop && isBlank(line[start]) {
		start++
	}
	for stop > start && (isBlank(line[stop-1]) || isLineEnd(line[stop-1])) {
		stop--
	}
	if start == stop {
		return headingLine{}, false
	}
	return headingLine{level: level, start: start, stop: stop}, true
}

// text returns the heading text with NUL replaced by U+FFFD, matching what
// the HTML renderer emits for the same bytes.
func (h headingLine) text(line []byte) string {
	return strings.ReplaceAll(string(line[h.start:h.stop]), "\x00", "\uFFFD")
}

func anchorFor(text string) string {
	return slug.Slugify(text)
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isLineEnd(c byte) bool {
	return c == '\n' || c == '\r'
}
