// Package i18n defines the locales supported by Menagerie and resolves
// arbitrary locale values against them.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// BaseLocale is the canonical source locale for all messages.
const BaseLocale = "en-US"

var supportedTags = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("pt-BR"),
}

// matcher resolves arbitrary tags against the supported set. The first
// supported tag is the fallback, so unmatched input resolves to the base
// locale.
var matcher = language.NewMatcher(supportedTags)

// SupportedTags returns the list of supported language tags.
func SupportedTags() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses a locale value into a supported tag.
// The bool reports whether the value matched a supported locale exactly.
func ParseTag(value string) (language.Tag, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DefaultTag(), false
	}
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return DefaultTag(), false
	}
	for _, tag := range supportedTags {
		if tag == parsed {
			return tag, true
		}
	}
	return DefaultTag(), false
}

// MatchTags returns the best supported tag for the preference-ordered tags.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, _ := matcher.Match(tags...)
	if index < 0 || index >= len(supportedTags) {
		return DefaultTag()
	}
	return supportedTags[index]
}

// MatchLocale resolves an arbitrary locale value to a supported locale
// string. Region-less values match their regional variant ("pt" resolves to
// "pt-BR"); anything unrecognized resolves to the base locale.
func MatchLocale(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return BaseLocale
	}
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return BaseLocale
	}
	return MatchTags([]language.Tag{parsed}).String()
}
