package game

import "strings"

// RequireNonEmpty rejects empty or whitespace-only strings.
func RequireNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyString
	}

	return nil
}

// RequireMaxLen rejects strings longer than max bytes.
func RequireMaxLen(s string, max int) error {
	if len(s) > max {
		return ErrStringTooLong
	}

	return nil
}

// ValidateName checks a bounded, required name field.
func ValidateName(s string, max int) error {
	err := RequireNonEmpty(s)
	if err != nil {
		return err
	}

	return RequireMaxLen(s, max)
}

// Validate checks a template's string bounds and stat ranges. A range
// width of exactly 1 (min == max) is a valid fixed stat.
func (t Template) Validate() error {
	if t.MinAttack > t.MaxAttack || t.MinHealth > t.MaxHealth {
		return ErrInvalidStatRange
	}

	err := ValidateName(t.Name, MaxNameLen)
	if err != nil {
		return err
	}

	err = ValidateName(t.Description, MaxDescriptionLen)
	if err != nil {
		return err
	}

	return RequireMaxLen(t.ImageURI, MaxImageURILen)
}
