package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Folder is a named, ordered grouping of pages and the top level of the
// documentation hierarchy.
type Folder struct {
	bun.BaseModel `bun:"table:doc_folders,alias:df"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Description string    `bun:"description" json:"description"`
	SortOrder   int       `bun:"sort_order,notnull" json:"sort_order"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Page is a titled document holding raw markup. It belongs to exactly one
// folder and is either a draft or published.
type Page struct {
	bun.BaseModel `bun:"table:doc_pages,alias:dp"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	FolderID    uuid.UUID `bun:"folder_id,notnull,type:uuid,unique:doc_pages_folder_slug" json:"folder_id"`
	Title       string    `bun:"title,notnull" json:"title"`
	Slug        string    `bun:"slug,notnull,unique:doc_pages_folder_slug" json:"slug"`
	Content     string    `bun:"content,notnull" json:"content"`
	IsPublished bool      `bun:"is_published,notnull" json:"is_published"`
	SortOrder   int       `bun:"sort_order,notnull" json:"sort_order"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// PageFilter narrows ListPages results. Nil fields do not filter.
type PageFilter struct {
	IsPublished *bool
	FolderID    *uuid.UUID
}

// Published returns a filter matching published pages only.
func Published() PageFilter {
	published := true
	return PageFilter{IsPublished: &published}
}

// InFolder returns a copy of the filter scoped to folderID.
func (f PageFilter) InFolder(folderID uuid.UUID) PageFilter {
	id := folderID
	f.FolderID = &id
	return f
}

// Matches reports whether page satisfies the filter.
func (f PageFilter) Matches(page *Page) bool {
	if page == nil {
		return false
	}
	if f.IsPublished != nil && page.IsPublished != *f.IsPublished {
		return false
	}
	if f.FolderID != nil && page.FolderID != *f.FolderID {
		return false
	}
	return true
}

// CreateFolderRequest captures the author input for a new folder. Slug is
// optional and defaults to the name.
type CreateFolderRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	SortOrder   *int   `json:"sort_order,omitempty"`
}

// UpdateFolderRequest renames, describes or reorders a folder. The slug is
// kept stable across renames.
type UpdateFolderRequest struct {
	ID          uuid.UUID `json:"id"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	SortOrder   *int      `json:"sort_order,omitempty"`
}

// CreatePageRequest captures the author input for a new page.
type CreatePageRequest struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug,omitempty"`
	Content     string    `json:"content"`
	FolderID    uuid.UUID `json:"folder_id"`
	IsPublished bool      `json:"is_published"`
	SortOrder   *int      `json:"sort_order,omitempty"`
}

// UpdatePageRequest edits title, content, folder assignment or order.
type UpdatePageRequest struct {
	ID        uuid.UUID  `json:"id"`
	Title     *string    `json:"title,omitempty"`
	Content   *string    `json:"content,omitempty"`
	FolderID  *uuid.UUID `json:"folder_id,omitempty"`
	SortOrder *int       `json:"sort_order,omitempty"`
}

func cloneFolder(src *Folder) *Folder {
	if src == nil {
		return nil
	}
	out := *src
	return &out
}

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	out := *src
	return &out
}
