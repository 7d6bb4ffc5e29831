package markup

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// asteriskDelimiters restricts emphasis to '*'. A run of two closes as
// strong emphasis, a single one as emphasis; underscores stay literal.
type asteriskDelimiters struct{}

func (asteriskDelimiters) IsDelimiter(b byte) bool {
	return b == '*'
}

func (asteriskDelimiters) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (asteriskDelimiters) OnMatch(consumes int) ast.Node {
	return ast.NewEmphasis(consumes)
}

type asteriskParser struct{}

func newAsteriskParser() parser.InlineParser {
	return asteriskParser{}
}

func (asteriskParser) Trigger() []byte {
	return []byte{'*'}
}

func (asteriskParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, asteriskDelimiters{})
	if node == nil {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}
