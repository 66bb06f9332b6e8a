package templates

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"
)

// Localizer is the catalog printer the draw page components render with.
// A *message.Printer from the i18n platform package satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T renders a catalog key such as "draw.form.submit".
//
// Components built without a localizer (component tests, error pages
// rendered before locale resolution) print the bare key followed by any
// arguments, so "draw.validation.range_too_large" with 100 becomes
// "draw.validation.range_too_large 100".
func T(loc Localizer, key string, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if len(args) == 0 {
		return key
	}
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, key)
	for _, arg := range args {
		parts = append(parts, fmt.Sprint(arg))
	}
	return strings.Join(parts, " ")
}
