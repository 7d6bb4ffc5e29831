package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/slug"
	"github.com/goliatone/go-docs/pkg/interfaces"
	"github.com/google/uuid"
)

// Service is the authoring surface for folders and pages. Every write runs the
// slug and scope checks before touching the store; a rejected request never
// persists a record.
type Service interface {
	ListFolders(ctx context.Context) ([]*Folder, error)
	ListPages(ctx context.Context, filter PageFilter) ([]*Page, error)
	GetFolder(ctx context.Context, id uuid.UUID) (*Folder, error)
	GetPage(ctx context.Context, id uuid.UUID) (*Page, error)
	CreateFolder(ctx context.Context, req CreateFolderRequest) (*Folder, error)
	UpdateFolder(ctx context.Context, req UpdateFolderRequest) (*Folder, error)
	DeleteFolder(ctx context.Context, id uuid.UUID) error
	CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error)
	UpdatePage(ctx context.Context, req UpdatePageRequest) (*Page, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*Page, error)
	DeletePage(ctx context.Context, id uuid.UUID) error
}

// ServiceOption configures the authoring service.
type ServiceOption func(*service)

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithLogger injects the logger used for authoring events.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	store  Store
	now    func() time.Time
	newID  func() uuid.UUID
	logger interfaces.Logger
}

// NewService wires the authoring service to a record store.
func NewService(store Store, opts ...ServiceOption) Service {
	s := &service{
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *service) ListFolders(ctx context.Context) ([]*Folder, error) {
	if s.store == nil {
		return nil, ErrStoreNotDefined
	}
	folders, err := s.store.ListFolders(ctx)
	if err != nil {
		return nil, s.persistError("folders.list", err)
	}
	return folders, nil
}

func (s *service) ListPages(ctx context.Context, filter PageFilter) ([]*Page, error) {
	if s.store == nil {
		return nil, ErrStoreNotDefined
	}
	records, err := s.store.ListPages(ctx, filter)
	if err != nil {
		return nil, s.persistError("pages.list", err)
	}
	return records, nil
}

func (s *service) GetFolder(ctx context.Context, id uuid.UUID) (*Folder, error) {
	if s.store == nil {
		return nil, ErrStoreNotDefined
	}
	folder, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return nil, s.lookupError("folder", id, err)
	}
	return folder, nil
}

func (s *service) GetPage(ctx context.Context, id uuid.UUID) (*Page, error) {
	if s.store == nil {
		return nil, ErrStoreNotDefined
	}
	page, err := s.store.GetPage(ctx, id)
	if err != nil {
		return nil, s.lookupError("page", id, err)
	}
	return page, nil
}

func (s *service) CreateFolder(ctx context.Context, req CreateFolderRequest) (*Folder, error) {
	if s.store == nil {
		return nil, ErrStoreNotDefined
	}
	if err := req.Validate(); err != nil {
		return nil, s.reject("folders.create", invalidRequest(err))
	}

	slugValue, err := deriveSlug(req.Slug, req.Name)
	if err != nil {
		return nil, s.reject("folders.create", validationFailure("slug", err))
	}

	folders, err := s.store.ListFolders(ctx)
	if err != nil {
		return nil, s.persistError("folders.create", err)
	}
	maxOrder := -1
	for _, folder := range folders {
		if folder.Slug == slugValue {
			return nil, s.reject("folders.create", validationFailure("slug", ErrSlugTaken))
		}
		maxOrder = max(maxOrder, folder.SortOrder)
	}

	now := s.now()
	record := &Folder{
		ID:          s.newID(),
		Name:        strings.TrimSpace(req.Name),
		Slug:        slugValue,
		Description: strings.TrimSpace(req.Description),
		SortOrder:   maxOrder + 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.SortOrder != nil {
		record.SortOrder = *req.SortOrder
	}

	created, err := s.store.CreateFolder(ctx, record)
	if err != nil {
		return nil, s.persistError("folders.create", err)
	}
	s.logger.Info("pages.folders.create.success", "folder_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *service) UpdateFolder(ctx context.Context, req UpdateFolderRequest) (*Folder, error) {
	if s.store == nil {
		return nil, ErrStoreNotDefined
	}
	if err := req.Validate(); err != nil {
		return nil, s.reject("folders.update", invalidRequest(err))
	}

	current, err := s.store.GetFolder(ctx, req.ID)
	if err != nil {
		return nil, s.lookupError("folder", req.ID, err)
	}

	updated := cloneFolder(current)
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.SortOrder != nil {
		updated.SortOrder = *req.SortOrder
	}
	updated.UpdatedAt = s.now()

	saved, err := s.store.UpdateFolder(ctx, updated)
	if err != nil {
		return nil, s.persistError("folders.update", err)
	}
	s.logger.Info("pages.folders.update.success", "folder_id", saved.ID)
	return saved, nil
}

func (s *service) DeleteFolder(ctx context.Context, id uuid.UUID) error {
	if s.store == nil {
		return ErrStoreNotDefined
	}
	if _, err := s.store.GetFolder(ctx, id); err != nil {
		return s.lookupError("folder", id, err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return s.persistError("folders.delete", err)
	}
	s.logger.Info("pages.folders.delete.success", "folder_id", id)
	return nil
}

func (s *service) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	if s.store == nil {
		return nil, ErrStoreNotDefined
	}
	if err := req.Validate(); err != nil {
		return nil, s.reject("pages.create", invalidRequest(err))
	}

	if err := s.ensureFolder(ctx, req.FolderID); err != nil {
		return nil, s.reject("pages.create", err)
	}

	slugValue, err := deriveSlug(req.Slug, req.Title)
	if err != nil {
		return nil, s.reject("pages.create", validationFailure("slug", err))
	}

	siblings, err := s.store.ListPages(ctx, PageFilter{}.InFolder(req.FolderID))
	if err != nil {
		return nil, s.persistError("pages.create", err)
	}
	maxOrder := -1
	for _, sibling := range siblings {
		if sibling.Slug == slugValue {
			return nil, s.reject("pages.create", validationFailure("slug", ErrSlugTaken))
		}
		maxOrder = max(maxOrder, sibling.SortOrder)
	}

	now := s.now()
	record := &Page{
		ID:          s.newID(),
		FolderID:    req.FolderID,
		Title:       strings.TrimSpace(req.Title),
		Slug:        slugValue,
		Content:     req.Content,
		IsPublished: req.IsPublished,
		SortOrder:   maxOrder + 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.SortOrder != nil {
		record.SortOrder = *req.SortOrder
	}

	created, err := s.store.CreatePage(ctx, record)
	if err != nil {
		return nil, s.persistError("pages.create", err)
	}
	s.logger.Info("pages.pages.create.success", "page_id", created.ID, "folder_id", created.FolderID, "slug", created.Slug)
	return created, nil
}

func (s *service) UpdatePage(ctx context.Context, req UpdatePageRequest) (*Page, error) {
	if s.store == nil {
		return nil, ErrStoreNotDefined
	}
	if err := req.Validate(); err != nil {
		return nil, s.reject("pages.update", invalidRequest(err))
	}

	current, err := s.store.GetPage(ctx, req.ID)
	if err != nil {
		return nil, s.lookupError("page", req.ID, err)
	}

	updated := clonePage(current)
	if req.Title != nil {
		updated.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		updated.Content = *req.Content
	}
	if req.SortOrder != nil {
		updated.SortOrder = *req.SortOrder
	}
	if req.FolderID != nil && *req.FolderID != current.FolderID {
		if err := s.ensureFolder(ctx, *req.FolderID); err != nil {
			return nil, s.reject("pages.update", err)
		}
		siblings, err := s.store.ListPages(ctx, PageFilter{}.InFolder(*req.FolderID))
		if err != nil {
			return nil, s.persistError("pages.update", err)
		}
		maxOrder := -1
		for _, sibling := range siblings {
			if sibling.Slug == current.Slug {
				return nil, s.reject("pages.update", validationFailure("slug", ErrSlugTaken))
			}
			maxOrder = max(maxOrder, sibling.SortOrder)
		}
		updated.FolderID = *req.FolderID
		if req.SortOrder == nil {
			updated.SortOrder = maxOrder + 1
		}
	}
	updated.UpdatedAt = s.now()

	saved, err := s.store.UpdatePage(ctx, updated)
	if err != nil {
		return nil, s.persistError("pages.update", err)
	}
	s.logger.Info("pages.pages.update.success", "page_id", saved.ID)
	return saved, nil
}

func (s *service) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*Page, error) {
	if s.store == nil {
		return nil, ErrStoreNotDefined
	}
	if id == uuid.Nil {
		return nil, s.reject("pages.publish", validationFailure("id", ErrIDRequired))
	}
	page, err := s.store.SetPublished(ctx, id, published)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound("page", id.String())
		}
		return nil, s.persistError("pages.publish", err)
	}
	s.logger.Info("pages.pages.publish.success", "page_id", id, "published", published)
	return page, nil
}

func (s *service) DeletePage(ctx context.Context, id uuid.UUID) error {
	if s.store == nil {
		return ErrStoreNotDefined
	}
	if _, err := s.store.GetPage(ctx, id); err != nil {
		return s.lookupError("page", id, err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return s.persistError("pages.delete", err)
	}
	s.logger.Info("pages.pages.delete.success", "page_id", id)
	return nil
}

func (s *service) ensureFolder(ctx context.Context, folderID uuid.UUID) error {
	if folderID == uuid.Nil {
		return validationFailure("folder_id", ErrFolderRequired)
	}
	if _, err := s.store.GetFolder(ctx, folderID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return validationFailure("folder_id", ErrFolderNotFound)
		}
		return storeFailure("folders.get", err)
	}
	return nil
}

func (s *service) reject(op string, err error) error {
	if IsValidationFailure(err) {
		s.logger.Warn("pages."+op+".rejected", "error", err)
	} else {
		s.logger.Error("pages."+op+".failed", "error", err)
	}
	return err
}

func (s *service) lookupError(resource string, id uuid.UUID, err error) error {
	if errors.Is(err, ErrNotFound) {
		return notFound(resource, id.String())
	}
	return s.persistError(resource+".get", err)
}

func (s *service) persistError(op string, err error) error {
	switch {
	case errors.Is(err, ErrSlugTaken):
		return s.reject(op, validationFailure("slug", ErrSlugTaken))
	case errors.Is(err, ErrNotFound):
		return notFound("record", "")
	default:
		wrapped := storeFailure(op, err)
		s.logger.Error("pages."+op+".store_failed", "error", err)
		return wrapped
	}
}

// deriveSlug prefers an explicit slug and falls back to the display text.
func deriveSlug(explicit, fallback string) (string, error) {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = fallback
	}
	value := slug.Slugify(source)
	if value == "" {
		return "", ErrSlugEmpty
	}
	if !slug.Valid(value) {
		return "", ErrSlugInvalid
	}
	return value, nil
}
