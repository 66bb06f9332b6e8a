// Package i18n defines the languages luckydraw supports and how tags are
// matched against them.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/luckydraw/internal/platform/i18n/catalog"
)

var (
	supportedTags = []language.Tag{
		language.MustParse("en-US"),
		language.MustParse("pt-BR"),
	}
	matcher = language.NewMatcher(supportedTags)
)

// SupportedTags returns the list of supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses value and reports whether it maps onto a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Tag{}, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence < language.High {
		return language.Tag{}, false
	}
	return supportedOf(matched), true
}

// MatchTags picks the best supported tag for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	matched, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedOf(matched)
}

// Printer returns a message printer with the embedded catalogs registered.
func Printer(tag language.Tag) *message.Printer {
	catalog.Default()
	return message.NewPrinter(supportedOf(tag))
}

// supportedOf strips matcher extensions (e.g. "-u-rg-…") so callers always
// get one of the canonical supported tags.
func supportedOf(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	region, _ := tag.Region()
	for _, supported := range supportedTags {
		sb, _ := supported.Base()
		sr, _ := supported.Region()
		if sb == base && sr == region {
			return supported
		}
	}
	for _, supported := range supportedTags {
		sb, _ := supported.Base()
		if sb == base {
			return supported
		}
	}
	return DefaultTag()
}
