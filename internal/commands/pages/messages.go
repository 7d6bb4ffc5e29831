package pagescmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/google/uuid"
)

const (
	createFolderMessageType = "docs.folders.create"
	deleteFolderMessageType = "docs.folders.delete"
	createPageMessageType   = "docs.pages.create"
	publishPageMessageType  = "docs.pages.publish"
	deletePageMessageType   = "docs.pages.delete"
)

var notNil = validation.By(func(value any) error {
	if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
		return validation.NewError("docs.id_required", "id is required")
	}
	return nil
})

// CreateFolderCommand adds a folder to the hierarchy.
type CreateFolderCommand struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	SortOrder   *int   `json:"sort_order,omitempty"`
	// Result receives the stored folder.
	Result func(*pages.Folder) `json:"-"`
}

// Type implements command.Message.
func (CreateFolderCommand) Type() string { return createFolderMessageType }

// Validate checks the shape of the request; slug rules run in the service.
func (m CreateFolderCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required, validation.RuneLength(1, 120)),
		validation.Field(&m.Slug, validation.RuneLength(0, 120)),
	)
}

// DeleteFolderCommand removes a folder and its pages.
type DeleteFolderCommand struct {
	FolderID uuid.UUID `json:"folder_id"`
}

// Type implements command.Message.
func (DeleteFolderCommand) Type() string { return deleteFolderMessageType }

func (m DeleteFolderCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.FolderID, notNil),
	)
}

// CreatePageCommand adds a draft (or published) page to a folder.
type CreatePageCommand struct {
	FolderID  uuid.UUID `json:"folder_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug,omitempty"`
	Content   string    `json:"content"`
	Publish   bool      `json:"publish,omitempty"`
	SortOrder *int      `json:"sort_order,omitempty"`
	// Result receives the stored page.
	Result func(*pages.Page) `json:"-"`
}

// Type implements command.Message.
func (CreatePageCommand) Type() string { return createPageMessageType }

func (m CreatePageCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.FolderID, notNil),
		validation.Field(&m.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&m.Slug, validation.RuneLength(0, 200)),
	)
}

// PublishPageCommand flips a page between draft and published.
type PublishPageCommand struct {
	PageID    uuid.UUID `json:"page_id"`
	Published bool      `json:"published"`
}

// Type implements command.Message.
func (PublishPageCommand) Type() string { return publishPageMessageType }

func (m PublishPageCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.PageID, notNil),
	)
}

// DeletePageCommand removes a page.
type DeletePageCommand struct {
	PageID uuid.UUID `json:"page_id"`
}

// Type implements command.Message.
func (DeletePageCommand) Type() string { return deletePageMessageType }

func (m DeletePageCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.PageID, notNil),
	)
}
