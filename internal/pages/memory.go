package pages

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by default and in tests.
type MemoryStore struct {
	mu          sync.RWMutex
	folders     map[uuid.UUID]*Folder
	pages       map[uuid.UUID]*Page
	folderSlugs map[string]uuid.UUID
	pageSlugs   map[pageSlugKey]uuid.UUID
	seq         map[uuid.UUID]uint64
	next        uint64
	now         func() time.Time
}

type pageSlugKey struct {
	folderID uuid.UUID
	slug     string
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	cfg := applyStoreOptions(opts)
	return &MemoryStore{
		folders:     make(map[uuid.UUID]*Folder),
		pages:       make(map[uuid.UUID]*Page),
		folderSlugs: make(map[string]uuid.UUID),
		pageSlugs:   make(map[pageSlugKey]uuid.UUID),
		seq:         make(map[uuid.UUID]uint64),
		now:         cfg.now,
	}
}

func (m *MemoryStore) ListFolders(_ context.Context) ([]*Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Folder, 0, len(m.folders))
	for _, folder := range m.folders {
		out = append(out, cloneFolder(folder))
	}
	slices.SortFunc(out, func(a, b *Folder) int {
		return m.compare(a.SortOrder, b.SortOrder, a.ID, b.ID)
	})
	return out, nil
}

func (m *MemoryStore) ListPages(_ context.Context, filter PageFilter) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Page, 0, len(m.pages))
	for _, page := range m.pages {
		if !filter.Matches(page) {
			continue
		}
		out = append(out, clonePage(page))
	}
	slices.SortFunc(out, func(a, b *Page) int {
		return m.compare(a.SortOrder, b.SortOrder, a.ID, b.ID)
	})
	return out, nil
}

func (m *MemoryStore) GetFolder(_ context.Context, id uuid.UUID) (*Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	folder, ok := m.folders[id]
	if !ok {
		return nil, &NotFoundError{Resource: "folder", Key: id.String()}
	}
	return cloneFolder(folder), nil
}

func (m *MemoryStore) GetPage(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	return clonePage(page), nil
}

func (m *MemoryStore) CreateFolder(_ context.Context, record *Folder) (*Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneFolder(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if _, exists := m.folderSlugs[copied.Slug]; exists {
		return nil, ErrSlugTaken
	}
	m.folders[copied.ID] = copied
	m.folderSlugs[copied.Slug] = copied.ID
	m.track(copied.ID)
	return cloneFolder(copied), nil
}

func (m *MemoryStore) CreatePage(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePage(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	key := pageSlugKey{folderID: copied.FolderID, slug: copied.Slug}
	if _, exists := m.pageSlugs[key]; exists {
		return nil, ErrSlugTaken
	}
	m.pages[copied.ID] = copied
	m.pageSlugs[key] = copied.ID
	m.track(copied.ID)
	return clonePage(copied), nil
}

func (m *MemoryStore) UpdateFolder(_ context.Context, record *Folder) (*Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.folders[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "folder", Key: record.ID.String()}
	}
	if record.Slug != current.Slug {
		if owner, exists := m.folderSlugs[record.Slug]; exists && owner != record.ID {
			return nil, ErrSlugTaken
		}
		delete(m.folderSlugs, current.Slug)
		m.folderSlugs[record.Slug] = record.ID
	}
	updated := cloneFolder(record)
	updated.CreatedAt = current.CreatedAt
	m.folders[record.ID] = updated
	return cloneFolder(updated), nil
}

func (m *MemoryStore) UpdatePage(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.pages[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: record.ID.String()}
	}
	oldKey := pageSlugKey{folderID: current.FolderID, slug: current.Slug}
	newKey := pageSlugKey{folderID: record.FolderID, slug: record.Slug}
	if oldKey != newKey {
		if owner, exists := m.pageSlugs[newKey]; exists && owner != record.ID {
			return nil, ErrSlugTaken
		}
		delete(m.pageSlugs, oldKey)
		m.pageSlugs[newKey] = record.ID
	}
	updated := clonePage(record)
	updated.CreatedAt = current.CreatedAt
	m.pages[record.ID] = updated
	return clonePage(updated), nil
}

func (m *MemoryStore) SetPublished(_ context.Context, id uuid.UUID, published bool) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.pages[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	updated := clonePage(current)
	updated.IsPublished = published
	updated.UpdatedAt = m.now()
	m.pages[id] = updated
	return clonePage(updated), nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if folder, ok := m.folders[id]; ok {
		for pageID, page := range m.pages {
			if page.FolderID == id {
				m.removePage(pageID, page)
			}
		}
		delete(m.folderSlugs, folder.Slug)
		delete(m.folders, id)
		delete(m.seq, id)
		return nil
	}
	if page, ok := m.pages[id]; ok {
		m.removePage(id, page)
		return nil
	}
	return &NotFoundError{Key: id.String()}
}

func (m *MemoryStore) removePage(id uuid.UUID, page *Page) {
	delete(m.pageSlugs, pageSlugKey{folderID: page.FolderID, slug: page.Slug})
	delete(m.pages, id)
	delete(m.seq, id)
}

func (m *MemoryStore) track(id uuid.UUID) {
	m.next++
	m.seq[id] = m.next
}

func (m *MemoryStore) compare(orderA, orderB int, idA, idB uuid.UUID) int {
	if orderA != orderB {
		if orderA < orderB {
			return -1
		}
		return 1
	}
	seqA, seqB := m.seq[idA], m.seq[idB]
	switch {
	case seqA < seqB:
		return -1
	case seqA > seqB:
		return 1
	default:
		return 0
	}
}

var _ Store = (*MemoryStore)(nil)
