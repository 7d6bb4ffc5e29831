package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

var (
	ErrInvalidJSON      = errors.New("settings: payload is not valid JSON")
	ErrSchemaValidation = errors.New("settings: payload does not match schema")
	ErrNotStored        = errors.New("settings: nothing stored yet")
)

const TextCodeInvalidSettings = "DOCS_SETTINGS_INVALID"

// Service reads and writes site settings.
type Service interface {
	Get(ctx context.Context) (SiteSettings, error)
	Update(ctx context.Context, next SiteSettings) (SiteSettings, error)
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, raw []byte) (SiteSettings, error)
	Reset(ctx context.Context) (SiteSettings, error)
}

// Option configures the settings service.
type Option func(*service)

func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		s.logger = logging.OrNoOp(logger)
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type service struct {
	store  Store
	now    func() time.Time
	logger interfaces.Logger
}

// NewService wires the settings service to store.
func NewService(store Store, opts ...Option) Service {
	s := &service{
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get returns the stored settings, or Defaults when none were saved.
func (s *service) Get(ctx context.Context) (SiteSettings, error) {
	if s.store == nil {
		return SiteSettings{}, pages.ErrStoreNotDefined
	}
	record, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, ErrNotStored):
		return Defaults(), nil
	case err != nil:
		s.logger.Error("settings.get.failed", "error", err)
		return SiteSettings{}, pages.NewStoreFailure("settings.load", err)
	}
	return *record, nil
}

func (s *service) Update(ctx context.Context, next SiteSettings) (SiteSettings, error) {
	if s.store == nil {
		return SiteSettings{}, pages.ErrStoreNotDefined
	}
	if err := next.Validate(); err != nil {
		s.logger.Warn("settings.update.rejected", "error", err)
		return SiteSettings{}, goerrors.FromOzzoValidation(err, "invalid site settings").
			WithTextCode(TextCodeInvalidSettings)
	}
	next.ID = SingletonID
	next.UpdatedAt = s.now()
	saved, err := s.store.Save(ctx, &next)
	if err != nil {
		s.logger.Error("settings.update.failed", "error", err)
		return SiteSettings{}, pages.NewStoreFailure("settings.save", err)
	}
	s.logger.Info("settings.update.success", "site_name", saved.SiteName)
	return *saved, nil
}

// Export renders the current settings as indented JSON.
func (s *service) Export(ctx context.Context) ([]byte, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(current, "", "  ")
}

// Import validates raw against the settings schema, overlays it on Defaults
// and saves the result. Keys missing from raw take their default value.
func (s *service) Import(ctx context.Context, raw []byte) (SiteSettings, error) {
	if err := validatePayload(raw); err != nil {
		s.logger.Warn("settings.import.rejected", "error", err)
		return SiteSettings{}, goerrors.Wrap(err, goerrors.CategoryValidation, "settings import rejected").
			WithTextCode(TextCodeInvalidSettings)
	}
	merged := Defaults()
	if err := json.Unmarshal(raw, &merged); err != nil {
		return SiteSettings{}, goerrors.Wrap(err, goerrors.CategoryValidation, "settings import rejected").
			WithTextCode(TextCodeInvalidSettings)
	}
	return s.Update(ctx, merged)
}

// Reset stores Defaults.
func (s *service) Reset(ctx context.Context) (SiteSettings, error) {
	return s.Update(ctx, Defaults())
}
