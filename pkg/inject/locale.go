package inject

import (
	"fmt"
	"strings"
)

// Locale identifies one language variant of the page content.
type Locale string

const (
	// LocaleZH is the Chinese content slot.
	LocaleZH Locale = "zh"
	// LocaleEN is the English content slot.
	LocaleEN Locale = "en"
)

// Locales returns the supported locales in the order their markers are
// processed.
func Locales() []Locale {
	out := make([]Locale, 0, len(markers))
	for _, m := range markers {
		out = append(out, m.locale)
	}
	return out
}

// Known reports whether the template marker table has an entry for locale.
func Known(locale Locale) bool {
	for _, m := range markers {
		if m.locale == locale {
			return true
		}
	}
	return false
}

// ParseLocale normalises user input such as "ZH" or " en " into a Locale.
func ParseLocale(raw string) (Locale, error) {
	locale := Locale(strings.ToLower(strings.TrimSpace(raw)))
	if !Known(locale) {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, raw)
	}
	return locale, nil
}

func (l Locale) String() string {
	return string(l)
}
