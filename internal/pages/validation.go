package pages

import (
	"errors"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 2000
	maxSlugSourceLength  = 200
)

// Validate checks the request shape before any slug derivation happens.
func (r CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.By(requiredText(ErrNameRequired)), validation.RuneLength(0, maxNameLength)),
		validation.Field(&r.Slug, validation.RuneLength(0, maxSlugSourceLength)),
		validation.Field(&r.Description, validation.RuneLength(0, maxDescriptionLength)),
		validation.Field(&r.SortOrder, validation.By(nonNegative)),
	)
}

func (r UpdateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.By(requiredID(ErrIDRequired))),
		validation.Field(&r.Name, validation.By(optionalText(ErrNameRequired)), validation.By(optionalLength(maxNameLength))),
		validation.Field(&r.Description, validation.By(optionalLength(maxDescriptionLength))),
		validation.Field(&r.SortOrder, validation.By(nonNegative)),
	)
}

func (r CreatePageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.By(requiredText(ErrTitleRequired)), validation.RuneLength(0, maxNameLength)),
		validation.Field(&r.Slug, validation.RuneLength(0, maxSlugSourceLength)),
		validation.Field(&r.FolderID, validation.By(requiredID(ErrFolderRequired))),
		validation.Field(&r.SortOrder, validation.By(nonNegative)),
	)
}

func (r UpdatePageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.By(requiredID(ErrIDRequired))),
		validation.Field(&r.Title, validation.By(optionalText(ErrTitleRequired)), validation.By(optionalLength(maxNameLength))),
		validation.Field(&r.FolderID, validation.By(optionalID(ErrFolderRequired))),
		validation.Field(&r.SortOrder, validation.By(nonNegative)),
	)
}

func requiredText(sentinel error) validation.RuleFunc {
	return func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return sentinel
		}
		return nil
	}
}

func optionalText(sentinel error) validation.RuleFunc {
	return func(value any) error {
		text, ok := value.(*string)
		if !ok || text == nil {
			return nil
		}
		if strings.TrimSpace(*text) == "" {
			return sentinel
		}
		return nil
	}
}

func optionalLength(max int) validation.RuleFunc {
	return func(value any) error {
		text, ok := value.(*string)
		if !ok || text == nil {
			return nil
		}
		return validation.Validate(*text, validation.RuneLength(0, max))
	}
}

func requiredID(sentinel error) validation.RuleFunc {
	return func(value any) error {
		id, _ := value.(uuid.UUID)
		if id == uuid.Nil {
			return sentinel
		}
		return nil
	}
}

func optionalID(sentinel error) validation.RuleFunc {
	return func(value any) error {
		id, ok := value.(*uuid.UUID)
		if !ok || id == nil {
			return nil
		}
		if *id == uuid.Nil {
			return sentinel
		}
		return nil
	}
}

func nonNegative(value any) error {
	order, ok := value.(*int)
	if !ok || order == nil {
		return nil
	}
	if *order < 0 {
		return validation.NewError("docs.sort_order.negative", "sort_order must not be negative")
	}
	return nil
}

// requestCauses flattens ozzo field errors into a deterministic joined error
// so callers can match sentinels with errors.Is.
func requestCauses(err error) error {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	keys := make([]string, 0, len(fieldErrs))
	for key := range fieldErrs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	causes := make([]error, 0, len(keys))
	for _, key := range keys {
		if fieldErrs[key] != nil {
			causes = append(causes, fieldErrs[key])
		}
	}
	return errors.Join(causes...)
}
