package settings

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-docs/internal/identity"
)

// SingletonID keys the one settings row.
var SingletonID = identity.SettingsUUID()

// SiteSettings holds site-wide presentation and behaviour flags.
type SiteSettings struct {
	bun.BaseModel `bun:"table:doc_settings,alias:ds"`

	ID                 uuid.UUID `bun:",pk,type:uuid" json:"-"`
	SiteName           string    `bun:"site_name,notnull" json:"site_name"`
	SiteDescription    string    `bun:"site_description" json:"site_description"`
	SiteURL            string    `bun:"site_url" json:"site_url"`
	LogoURL            string    `bun:"logo_url" json:"logo_url"`
	Favicon            string    `bun:"favicon" json:"favicon"`
	PrimaryColor       string    `bun:"primary_color" json:"primary_color"`
	FontFamily         string    `bun:"font_family" json:"font_family"`
	EnableAnalytics    bool      `bun:"enable_analytics,notnull" json:"enable_analytics"`
	EnableComments     bool      `bun:"enable_comments,notnull" json:"enable_comments"`
	EnableSearch       bool      `bun:"enable_search,notnull" json:"enable_search"`
	MaintenanceMode    bool      `bun:"maintenance_mode,notnull" json:"maintenance_mode"`
	PublicRegistration bool      `bun:"public_registration,notnull" json:"public_registration"`
	SEOTitle           string    `bun:"seo_title" json:"seo_title"`
	SEODescription     string    `bun:"seo_description" json:"seo_description"`
	SocialImageURL     string    `bun:"social_image_url" json:"social_image_url"`
	UpdatedAt          time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at,omitzero"`
}

// Defaults returns the settings used before anything is saved, and the base
// that imports are merged over.
func Defaults() SiteSettings {
	return SiteSettings{
		ID:              SingletonID,
		SiteName:        "Documentation Hub",
		SiteDescription: "Professional documentation platform",
		SiteURL:         "https://docs.example.com",
		PrimaryColor:    "#3B82F6",
		FontFamily:      "Inter",
		EnableAnalytics: true,
		EnableSearch:    true,
		SEOTitle:        "Documentation Hub - Professional Docs",
		SEODescription:  "Comprehensive documentation platform for teams",
	}
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks field constraints shared by Update and Import.
func (s SiteSettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.SiteName, validation.Required, validation.RuneLength(1, 120)),
		validation.Field(&s.SiteURL, is.URL),
		validation.Field(&s.LogoURL, is.URL),
		validation.Field(&s.SocialImageURL, is.URL),
		validation.Field(&s.PrimaryColor, validation.Match(hexColor)),
		validation.Field(&s.SEOTitle, validation.RuneLength(0, 70)),
		validation.Field(&s.SEODescription, validation.RuneLength(0, 160)),
	)
}
