package pages

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunStore persists folders and pages through go-repository-bun.
type BunStore struct {
	folders repository.Repository[*Folder]
	pages   repository.Repository[*Page]
	now     func() time.Time
}

// NewBunStore constructs a Store backed by bun without caching.
func NewBunStore(db *bun.DB, opts ...StoreOption) *BunStore {
	return NewBunStoreWithCache(db, nil, nil, opts...)
}

// NewBunStoreWithCache constructs a Store backed by bun with optional repository caching.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...StoreOption) *BunStore {
	cfg := applyStoreOptions(opts)
	return &BunStore{
		folders: wrapWithCache(NewFolderRepository(db), cacheService, keySerializer),
		pages:   wrapWithCache(NewPageRepository(db), cacheService, keySerializer),
		now:     cfg.now,
	}
}

func (s *BunStore) ListFolders(ctx context.Context) ([]*Folder, error) {
	records, _, err := s.folders.List(ctx, repository.SelectRawProcessor(orderBySortOrder))
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *BunStore) ListPages(ctx context.Context, filter PageFilter) ([]*Page, error) {
	records, _, err := s.pages.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if filter.IsPublished != nil {
			q = q.Where("?TableAlias.is_published = ?", *filter.IsPublished)
		}
		if filter.FolderID != nil {
			q = q.Where("?TableAlias.folder_id = ?", *filter.FolderID)
		}
		return orderBySortOrder(q)
	}))
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *BunStore) GetFolder(ctx context.Context, id uuid.UUID) (*Folder, error) {
	record, err := s.folders.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "folder", id.String())
	}
	return record, nil
}

func (s *BunStore) GetPage(ctx context.Context, id uuid.UUID) (*Page, error) {
	record, err := s.pages.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return record, nil
}

func (s *BunStore) CreateFolder(ctx context.Context, record *Folder) (*Folder, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	created, err := s.folders.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "folder", record.Slug)
	}
	return created, nil
}

func (s *BunStore) CreatePage(ctx context.Context, record *Page) (*Page, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	created, err := s.pages.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "page", record.Slug)
	}
	return created, nil
}

func (s *BunStore) UpdateFolder(ctx context.Context, record *Folder) (*Folder, error) {
	updated, err := s.folders.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"name",
			"slug",
			"description",
			"sort_order",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "folder", record.ID.String())
	}
	return updated, nil
}

func (s *BunStore) UpdatePage(ctx context.Context, record *Page) (*Page, error) {
	updated, err := s.pages.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"folder_id",
			"title",
			"slug",
			"content",
			"is_published",
			"sort_order",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page", record.ID.String())
	}
	return updated, nil
}

func (s *BunStore) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*Page, error) {
	current, err := s.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}
	current.IsPublished = published
	current.UpdatedAt = s.now()
	updated, err := s.pages.Update(ctx, current,
		repository.UpdateByID(id.String()),
		repository.UpdateColumns("is_published", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return updated, nil
}

func (s *BunStore) Delete(ctx context.Context, id uuid.UUID) error {
	folder, err := s.GetFolder(ctx, id)
	switch {
	case err == nil:
		pages, err := s.ListPages(ctx, PageFilter{}.InFolder(folder.ID))
		if err != nil {
			return err
		}
		for _, page := range pages {
			if err := s.pages.Delete(ctx, page); err != nil {
				return mapRepositoryError(err, "page", page.ID.String())
			}
		}
		return mapRepositoryError(s.folders.Delete(ctx, folder), "folder", id.String())
	case !IsNotFound(err):
		return err
	}

	page, err := s.GetPage(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return &NotFoundError{Key: id.String()}
		}
		return err
	}
	return mapRepositoryError(s.pages.Delete(ctx, page), "page", id.String())
}

func orderBySortOrder(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.sort_order ASC").OrderExpr("?TableAlias.created_at ASC")
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

var _ Store = (*BunStore)(nil)
