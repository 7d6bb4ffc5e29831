package markup

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

// Renderer converts page markup into HTML. Only headings (levels 1-3),
// paragraphs, strong and regular emphasis with '*', and backtick code spans
// are recognised; everything else is paragraph text. Single newlines stay
// inside the paragraph as soft breaks.
//
// Renderer is safe for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
	logger interfaces.Logger
}

// RendererOption customises a Renderer.
type RendererOption func(*Renderer)

// WithRendererLogger sets the logger used for conversion failures.
func WithRendererLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logging.OrNoOp(logger)
	}
}

// NewRenderer builds a Renderer with the restricted parser set.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		engine: goldmark.New(goldmark.WithParser(newParser())),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func newParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(newHeadingParser(), 100),
			util.Prioritized(newParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(newAsteriskParser(), 500),
		),
	)
}

// paragraphParser is goldmark's paragraph parser that also opens on lines
// indented four or more columns. With no indented code blocks registered,
// such lines would otherwise end the parse and drop the rest of the input.
type paragraphParser struct {
	parser.BlockParser
}

func newParagraphParser() parser.BlockParser {
	return paragraphParser{BlockParser: parser.NewParagraphParser()}
}

func (paragraphParser) CanAcceptIndentedLine() bool {
	return true
}

// Render returns the HTML for content. It never fails: if the engine reports
// an error the content is emitted escaped inside a single paragraph.
func (r *Renderer) Render(content string) string {
	if content == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(content), &buf); err != nil {
		r.logger.Error("markup.render.failed", "error", err)
		return "<p>" + html.EscapeString(content) + "</p>\n"
	}
	return buf.String()
}
