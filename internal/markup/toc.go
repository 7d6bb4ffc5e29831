package markup

import "bytes"

// Extract returns the outline of content in document order. Repeated heading
// text yields repeated anchors; no suffix is added.
func Extract(content string) []Heading {
	if content == "" {
		return nil
	}
	var headings []Heading
	source := []byte(content)
	for len(source) > 0 {
		line := source
		if idx := bytes.IndexByte(source, '\n'); idx >= 0 {
			line, source = source[:idx+1], source[idx+1:]
		} else {
			source = nil
		}
		match, ok := scanHeadingLine(line)
		if !ok {
			continue
		}
		text := match.text(line)
		headings = append(headings, Heading{
			Level:    match.level,
			Text:     text,
			AnchorID: anchorFor(text),
		})
	}
	return headings
}
