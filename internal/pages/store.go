package pages

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the record store contract consumed by the authoring, navigation and
// site services. Listings are ordered ascending by sort order, with ties kept
// in insertion order.
type Store interface {
	ListFolders(ctx context.Context) ([]*Folder, error)
	ListPages(ctx context.Context, filter PageFilter) ([]*Page, error)
	GetFolder(ctx context.Context, id uuid.UUID) (*Folder, error)
	GetPage(ctx context.Context, id uuid.UUID) (*Page, error)
	CreateFolder(ctx context.Context, record *Folder) (*Folder, error)
	CreatePage(ctx context.Context, record *Page) (*Page, error)
	UpdateFolder(ctx context.Context, record *Folder) (*Folder, error)
	UpdatePage(ctx context.Context, record *Page) (*Page, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*Page, error)
	// Delete removes the folder or page with the given id. Deleting a folder
	// removes the pages it contains.
	Delete(ctx context.Context, id uuid.UUID) error
}

// StoreOption configures the bundled store implementations.
type StoreOption func(*storeOptions)

type storeOptions struct {
	now func() time.Time
}

// WithStoreClock overrides the clock used to stamp updated_at on publish changes.
func WithStoreClock(clock func() time.Time) StoreOption {
	return func(o *storeOptions) {
		if clock != nil {
			o.now = clock
		}
	}
}

func applyStoreOptions(opts []StoreOption) storeOptions {
	cfg := storeOptions{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
