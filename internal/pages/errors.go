package pages

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrNameRequired    = errors.New("pages: folder name is required")
	ErrTitleRequired   = errors.New("pages: page title is required")
	ErrFolderRequired  = errors.New("pages: folder selection is required")
	ErrFolderNotFound  = errors.New("pages: folder does not exist")
	ErrSlugEmpty       = errors.New("pages: derived slug is empty")
	ErrSlugInvalid     = errors.New("pages: slug contains invalid characters")
	ErrSlugTaken       = errors.New("pages: slug already exists")
	ErrIDRequired      = errors.New("pages: id is required")
	ErrInvalidRequest  = errors.New("pages: invalid request")
	ErrNotFound        = errors.New("pages: record not found")
	ErrStoreFailure    = errors.New("pages: store failure")
	ErrStoreNotDefined = errors.New("pages: store not configured")
)

const (
	TextCodeInvalidRequest = "DOCS_INVALID_REQUEST"
	TextCodeSlugEmpty      = "DOCS_SLUG_EMPTY"
	TextCodeSlugTaken      = "DOCS_SLUG_TAKEN"
	TextCodeFolderMissing  = "DOCS_FOLDER_REQUIRED"
	TextCodeNotFound       = "DOCS_NOT_FOUND"
	TextCodeStoreFailure   = "DOCS_STORE_FAILURE"
)

// NotFoundError reports a folder or page lookup miss.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	resource := strings.TrimSpace(e.Resource)
	if resource == "" {
		resource = "record"
	}
	if e.Key == "" {
		return fmt.Sprintf("%s not found", resource)
	}
	return fmt.Sprintf("%s %q not found", resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError ties a rejected field to the rule it broke.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e == nil || e.Err == nil {
		return ErrInvalidRequest.Error()
	}
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsValidationFailure reports whether err rejected an authoring request.
func IsValidationFailure(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool {
	if goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		return true
	}
	return errors.Is(err, ErrNotFound)
}

// IsStoreFailure reports whether err came from the record store.
func IsStoreFailure(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}

// NewNotFound builds the NotFound error surfaced for resource lookups outside
// the authoring service, such as public route resolution.
func NewNotFound(resource, key string) error {
	return notFound(resource, key)
}

// NewStoreFailure wraps a record store error for callers that talk to a
// Store directly. Errors that already carry a taxonomy category pass through.
func NewStoreFailure(op string, err error) error {
	return storeFailure(op, err)
}

// NewValidationFailure rejects field with cause using the same category and
// text codes as the authoring service.
func NewValidationFailure(field string, cause error) error {
	return validationFailure(field, cause)
}

func validationFailure(field string, cause error) error {
	return goerrors.Wrap(&ValidationError{Field: field, Err: cause}, goerrors.CategoryValidation, cause.Error()).
		WithTextCode(validationTextCode(cause)).
		WithMetadata(map[string]any{"field": field})
}

func invalidRequest(err error) error {
	causes := requestCauses(err)
	wrapped := goerrors.FromOzzoValidation(err, ErrInvalidRequest.Error())
	wrapped.Source = fmt.Errorf("%w: %w", ErrInvalidRequest, causes)
	return wrapped.WithTextCode(validationTextCode(causes))
}

func notFound(resource, key string) error {
	return goerrors.Wrap(&NotFoundError{Resource: resource, Key: key}, goerrors.CategoryNotFound, resource+" not found").
		WithTextCode(TextCodeNotFound)
}

func storeFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSlugTaken) || errors.Is(err, ErrStoreFailure) {
		return err
	}
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err), goerrors.CategoryExternal, "record store failed").
		WithTextCode(TextCodeStoreFailure)
}

func validationTextCode(cause error) string {
	switch {
	case errors.Is(cause, ErrSlugEmpty), errors.Is(cause, ErrSlugInvalid):
		return TextCodeSlugEmpty
	case errors.Is(cause, ErrSlugTaken):
		return TextCodeSlugTaken
	case errors.Is(cause, ErrFolderRequired), errors.Is(cause, ErrFolderNotFound):
		return TextCodeFolderMissing
	default:
		return TextCodeInvalidRequest
	}
}
