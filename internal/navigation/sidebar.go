package navigation

import "github.com/goliatone/go-docs/internal/pages"

// SidebarLink is a page entry in the sidebar.
type SidebarLink struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// SidebarSection is a folder entry with its derived state.
type SidebarSection struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Description string        `json:"description,omitempty"`
	Open        bool          `json:"open"`
	Active      bool          `json:"active"`
	Links       []SidebarLink `json:"links"`
}

// Sidebar projects tree into sidebar state for currentPath.
func (r Resolver) Sidebar(tree Tree, currentPath string, prefs OpenPreferences) []SidebarSection {
	sections := make([]SidebarSection, 0, len(tree))
	for index, section := range tree {
		if section.Folder == nil {
			continue
		}
		sections = append(sections, SidebarSection{
			ID:          section.Folder.ID.String(),
			Title:       section.Folder.Name,
			Slug:        section.Folder.Slug,
			Description: section.Folder.Description,
			Open:        r.IsOpen(prefs, tree, index, currentPath),
			Active:      HasActiveDescendant(currentPath, section),
			Links:       sidebarLinks(section, currentPath),
		})
	}
	return sections
}

func sidebarLinks(section Section, currentPath string) []SidebarLink {
	links := make([]SidebarLink, 0, len(section.Pages))
	for _, page := range section.Pages {
		links = append(links, sidebarLink(section.Folder, page, currentPath))
	}
	return links
}

func sidebarLink(folder *pages.Folder, page *pages.Page, currentPath string) SidebarLink {
	return SidebarLink{
		ID:     page.ID.String(),
		Title:  page.Title,
		Path:   PagePath(folder, page),
		Active: IsPageActive(currentPath, folder, page),
	}
}
