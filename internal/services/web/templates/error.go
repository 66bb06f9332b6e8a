package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/luckydraw/internal/services/web/routepath"
)

const (
	errorTitleNotFoundKey  = "core.error.not_found_title"
	errorTitleServerKey    = "core.error.server_title"
	errorMessageNotFound   = "core.error.not_found"
	errorMessageServerKey  = "core.error.server"
	errorBackHomeActionKey = "core.error.back_home"
)

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, errorTitleNotFoundKey)
	}
	return T(loc, errorTitleServerKey)
}

// ErrorState renders the error body for not-found and server failures.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		message := T(loc, errorMessageServerKey)
		if normalizeErrorStatus(statusCode) == http.StatusNotFound {
			message = T(loc, errorMessageNotFound)
		}
		p := printer{w: w}
		p.printf(`<section id="error-state" class="panel"><h1>%s</h1><p>%s</p>`, esc(ErrorPageTitle(statusCode, loc)), esc(message))
		p.printf(`<a class="secondary" href="%s">%s</a></section>`, routepath.Root, esc(T(loc, errorBackHomeActionKey)))
		return p.err
	})
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
