package lang

import "strings"

// Locale represents a supported output and interface language
type Locale string

const (
	Spanish Locale = "es"
	English Locale = "en"
)

// String returns the string representation of the locale
func (l Locale) String() string {
	return string(l)
}

// IsValid checks if the locale is supported
func (l Locale) IsValid() bool {
	switch l {
	case Spanish, English:
		return true
	default:
		return false
	}
}

// DisplayName returns the display name of the locale
func (l Locale) DisplayName() string {
	switch l {
	case Spanish:
		return "Español"
	case English:
		return "English"
	default:
		return string(l)
	}
}

// Flag returns the flag emoji shown next to the locale in menus
func (l Locale) Flag() string {
	switch l {
	case Spanish:
		return "🇪🇸"
	case English:
		return "🇺🇸"
	default:
		return ""
	}
}

// Supported returns all supported locales in menu order
func Supported() []Locale {
	return []Locale{Spanish, English}
}

// DefaultLocale returns the default locale
func DefaultLocale() Locale {
	return Spanish
}

// ParseLocale parses a string to a Locale, reporting whether it was recognized.
// Region suffixes are ignored, so "en-US" and "es_AR" are accepted.
func ParseLocale(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	l := Locale(s)
	if l.IsValid() {
		return l, true
	}
	return DefaultLocale(), false
}

// OrDefault returns l when valid, otherwise the default locale
func (l Locale) OrDefault() Locale {
	if l.IsValid() {
		return l
	}
	return DefaultLocale()
}
