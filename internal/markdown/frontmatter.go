package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the YAML header accepted on page and folder files.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Order       *int   `yaml:"order"`
	Published   *bool  `yaml:"published"`
	Draft       bool   `yaml:"draft"`
}

// ParseFrontMatter splits source into its header and body. Files without a
// header return a zero FrontMatter and the full source.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}

// PublishState resolves the published flag: an explicit published key wins,
// then draft, then fallback.
func (f FrontMatter) PublishState(fallback bool) bool {
	if f.Published != nil {
		return *f.Published
	}
	if f.Draft {
		return false
	}
	return fallback
}
