package settings

import (
	"context"
	"errors"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Store persists the settings row. Load reports ErrNotStored until the first
// Save.
type Store interface {
	Load(ctx context.Context) (*SiteSettings, error)
	Save(ctx context.Context, record *SiteSettings) (*SiteSettings, error)
}

// MemoryStore keeps settings in process.
type MemoryStore struct {
	mu     sync.RWMutex
	record *SiteSettings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) (*SiteSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.record == nil {
		return nil, ErrNotStored
	}
	copied := *m.record
	return &copied, nil
}

func (m *MemoryStore) Save(_ context.Context, record *SiteSettings) (*SiteSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.record = &copied
	out := copied
	return &out, nil
}

// BunStore persists settings through go-repository-bun.
type BunStore struct {
	repo repository.Repository[*SiteSettings]
}

func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{repo: NewRepository(db)}
}

// NewRepository builds the generic repository for the settings table.
func NewRepository(db *bun.DB) repository.Repository[*SiteSettings] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*SiteSettings]{
		NewRecord: func() *SiteSettings { return &SiteSettings{} },
		GetID: func(s *SiteSettings) uuid.UUID {
			return s.ID
		},
		SetID: func(s *SiteSettings, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(s *SiteSettings) string {
			return s.ID.String()
		},
	})
}

func (s *BunStore) Load(ctx context.Context) (*SiteSettings, error) {
	record, err := s.repo.GetByID(ctx, SingletonID.String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, ErrNotStored
		}
		return nil, err
	}
	return record, nil
}

func (s *BunStore) Save(ctx context.Context, record *SiteSettings) (*SiteSettings, error) {
	record.ID = SingletonID
	if _, err := s.Load(ctx); err != nil {
		if !errors.Is(err, ErrNotStored) {
			return nil, err
		}
		return s.repo.Create(ctx, record)
	}
	return s.repo.Update(ctx, record, repository.UpdateByID(SingletonID.String()))
}
