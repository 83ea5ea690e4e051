package summary

import (
	"fmt"
	"strings"
)

type Language string

const (
	English Language = "English"
	Hindi   Language = "Hindi"
	Bengali Language = "Bengali"
	Urdu    Language = "Urdu"
)

var supportedLanguages = []Language{English, Hindi, Bengali, Urdu}

// SupportedLanguages returns the selectable languages in display order.
func SupportedLanguages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ParseLanguage matches name against the supported set, ignoring case and
// surrounding space.
func ParseLanguage(name string) (Language, error) {
	key := strings.TrimSpace(name)
	for _, lang := range supportedLanguages {
		if strings.EqualFold(string(lang), key) {
			return lang, nil
		}
	}
	return "", fmt.Errorf("unsupported language: %q", name)
}

func (l Language) IsEnglish() bool {
	return strings.EqualFold(string(l), string(English))
}

func (l Language) String() string {
	return string(l)
}
