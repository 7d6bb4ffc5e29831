package navigation

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-docs/internal/pages"
)

// PagePath is the public route of page: /{folderSlug}/{pageSlug}.
func PagePath(folder *pages.Folder, page *pages.Page) string {
	if folder == nil || page == nil {
		return ""
	}
	return "/" + folder.Slug + "/" + page.Slug
}

// IsPageActive reports whether currentPath is exactly the page's route.
func IsPageActive(currentPath string, folder *pages.Folder, page *pages.Page) bool {
	path := PagePath(folder, page)
	return path != "" && path == currentPath
}

// HasActiveDescendant reports whether any page of section is active.
func HasActiveDescendant(currentPath string, section Section) bool {
	for _, page := range section.Pages {
		if IsPageActive(currentPath, section.Folder, page) {
			return true
		}
	}
	return false
}

// OpenPreferences records explicit expand/collapse choices keyed by folder id.
// Folders without an entry fall back to the derived default.
type OpenPreferences map[uuid.UUID]bool

// Set records an explicit choice.
func (p OpenPreferences) Set(folderID uuid.UUID, open bool) {
	if p != nil {
		p[folderID] = open
	}
}

// Toggle flips the effective state of the folder at index in tree and
// records the result as an explicit preference.
func (p OpenPreferences) Toggle(r Resolver, tree Tree, index int, currentPath string) bool {
	if index < 0 || index >= len(tree) || tree[index].Folder == nil {
		return false
	}
	open := !r.IsOpen(p, tree, index, currentPath)
	p.Set(tree[index].Folder.ID, open)
	return open
}

// Resolver derives default open state for sidebar folders.
type Resolver struct {
	// FirstFolderOpen keeps the first folder expanded when no preference
	// says otherwise.
	FirstFolderOpen bool
}

// DefaultResolver opens the first folder.
func DefaultResolver() Resolver {
	return Resolver{FirstFolderOpen: true}
}

// IsOpen returns the explicit preference for tree[index] when one exists.
// Otherwise the folder is open when it holds the active page, or when it is
// the first folder and FirstFolderOpen is set.
func (r Resolver) IsOpen(prefs OpenPreferences, tree Tree, index int, currentPath string) bool {
	if index < 0 || index >= len(tree) {
		return false
	}
	section := tree[index]
	if section.Folder != nil {
		if open, ok := prefs[section.Folder.ID]; ok {
			return open
		}
	}
	if HasActiveDescendant(currentPath, section) {
		return true
	}
	return index == 0 && r.FirstFolderOpen
}
