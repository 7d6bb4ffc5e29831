package navigation

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"github.com/goliatone/go-docs/internal/pages"
)

// Section is one folder with its ordered pages.
type Section struct {
	Folder *pages.Folder `json:"folder"`
	Pages  []*pages.Page `json:"pages"`
}

// Tree is the two-level hierarchy rebuilt from flat folder and page records.
type Tree []Section

// BuildOptions controls which pages enter the tree.
type BuildOptions struct {
	// PublishedOnly drops drafts and, with them, folders left without pages.
	PublishedOnly bool
}

// Build groups pages under their folders. Folders and pages are ordered by
// SortOrder ascending with ties kept in input order. Pages whose folder is
// missing from folders are left out; nil records are ignored. The result is
// empty, never nil-with-error, when nothing qualifies.
func Build(folders []*pages.Folder, records []*pages.Page, opts BuildOptions) Tree {
	ordered := make([]*pages.Folder, 0, len(folders))
	for _, folder := range folders {
		if folder != nil {
			ordered = append(ordered, folder)
		}
	}
	slices.SortStableFunc(ordered, func(a, b *pages.Folder) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})

	known := make(map[uuid.UUID]struct{}, len(ordered))
	for _, folder := range ordered {
		known[folder.ID] = struct{}{}
	}

	grouped := make(map[uuid.UUID][]*pages.Page, len(ordered))
	for _, page := range records {
		if page == nil {
			continue
		}
		if opts.PublishedOnly && !page.IsPublished {
			continue
		}
		if _, ok := known[page.FolderID]; !ok {
			continue
		}
		grouped[page.FolderID] = append(grouped[page.FolderID], page)
	}

	tree := make(Tree, 0, len(ordered))
	for _, folder := range ordered {
		children := grouped[folder.ID]
		if opts.PublishedOnly && len(children) == 0 {
			continue
		}
		slices.SortStableFunc(children, func(a, b *pages.Page) int {
			return cmp.Compare(a.SortOrder, b.SortOrder)
		})
		tree = append(tree, Section{Folder: folder, Pages: children})
	}
	return tree
}

// PageCount returns the number of pages across all sections.
func (t Tree) PageCount() int {
	total := 0
	for _, section := range t {
		total += len(section.Pages)
	}
	return total
}

// Flatten returns pages in tree order, the order used for previous/next links.
func (t Tree) Flatten() []Entry {
	entries := make([]Entry, 0, t.PageCount())
	for _, section := range t {
		for _, page := range section.Pages {
			entries = append(entries, Entry{Folder: section.Folder, Page: page, Path: PagePath(section.Folder, page)})
		}
	}
	return entries
}

// Entry pairs a page with its folder and public path.
type Entry struct {
	Folder *pages.Folder `json:"-"`
	Page   *pages.Page   `json:"-"`
	Path   string        `json:"path"`
}

// Neighbours returns the entries before and after path in tree order.
func (t Tree) Neighbours(path string) (prev, next *Entry) {
	entries := t.Flatten()
	for i := range entries {
		if entries[i].Path != path {
			continue
		}
		if i > 0 {
			prev = &entries[i-1]
		}
		if i+1 < len(entries) {
			next = &entries[i+1]
		}
		return prev, next
	}
	return nil, nil
}
