package localization

import (
	"errors"
	"fmt"
	"strings"
)

// Language identifies one of the supported output languages.
type Language int

const (
	// EnglishGB renders British English (dd/MM/yyyy dates, 24h clock).
	EnglishGB Language = iota
	// EnglishUS renders American English (MM/dd/yyyy dates, 12h clock).
	EnglishUS
	// Spanish renders Spanish as spoken in Spain.
	Spanish

	languageCount
)

// ErrUnknownLanguage is returned when a language code is not supported.
var ErrUnknownLanguage = errors.New("localization: unknown language")

var languageCodes = [languageCount]string{
	EnglishGB: "en_GB",
	EnglishUS: "en_US",
	Spanish:   "es_ES",
}

// Languages returns every supported language in declaration order.
func Languages() []Language {
	out := make([]Language, 0, languageCount)
	for lang := Language(0); lang < languageCount; lang++ {
		out = append(out, lang)
	}
	return out
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l >= 0 && l < languageCount
}

// String returns the language code, e.g. "en_GB".
func (l Language) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return languageCodes[l]
}

// ParseLanguage resolves a language code. Hyphenated and lower-case forms
// ("en-gb") are accepted.
func ParseLanguage(code string) (Language, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(code), "-", "_")
	for lang, candidate := range languageCodes {
		if strings.EqualFold(candidate, normalized) {
			return Language(lang), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}

// MarshalText implements encoding.TextMarshaler.
func (l Language) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLanguage, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(text []byte) error {
	lang, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = lang
	return nil
}
