package generator

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/navigation"
)

//go:embed templates/*.html
var templateFS embed.FS

var defaultTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// SiteMetadata is shared by every generated document.
type SiteMetadata struct {
	Name        string
	Description string
	BaseURL     string
	Favicon     string
}

// PageView is the data handed to the "page" template.
type PageView struct {
	Site       SiteMetadata
	Title      string
	Canonical  string
	FolderName string
	PageTitle  string
	Content    template.HTML
	Headings   []markup.Heading
	Sidebar    []navigation.SidebarSection
	Prev       *navigation.Link
	Next       *navigation.Link
}

// LandingView is the data handed to the "landing" template.
type LandingView struct {
	Site      SiteMetadata
	Title     string
	Canonical string
	Cards     []navigation.Card
}

func executeTemplate(set *template.Template, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("generator: render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
