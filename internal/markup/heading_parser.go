package markup

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var attrID = []byte("id")

// headingParser opens heading blocks for lines accepted by scanHeadingLine
// and stamps the derived anchor as the element id.
type headingParser struct{}

func newHeadingParser() parser.BlockParser {
	return headingParser{}
}

func (headingParser) Trigger() []byte {
	return []byte{'#'}
}

func (headingParser) Open(_ ast.Node, reader text.Reader, _ parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	match, ok := scanHeadingLine(line)
	if !ok {
		return nil, parser.NoChildren
	}

	node := ast.NewHeading(match.level)
	node.Lines().Append(text.NewSegment(segment.Start+match.start, segment.Start+match.stop))
	if anchor := anchorFor(match.text(line)); anchor != "" {
		node.SetAttribute(attrID, []byte(anchor))
	}
	return node, parser.NoChildren
}

func (headingParser) Continue(ast.Node, text.Reader, parser.Context) parser.State {
	return parser.Close
}

func (headingParser) Close(ast.Node, text.Reader, parser.Context) {}

func (headingParser) CanInterruptParagraph() bool {
	return true
}

func (headingParser) CanAcceptIndentedLine() bool {
	return false
}
