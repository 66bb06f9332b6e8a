// Package weberror renders shared error responses for web modules.
package weberror

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/sirupsen/logrus"

	module "github.com/louisbranch/luckydraw/internal/services/web/module"
	apperrors "github.com/louisbranch/luckydraw/internal/services/web/platform/errors"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/luckydraw/internal/services/web/platform/i18n"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/luckydraw/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteAppError writes a localized error page for full-page and HTMX requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}

	loc, lang := webi18n.ResolveLocalizer(w, r)
	fragment := webtemplates.ErrorState(statusCode, loc)
	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		_ = fragment.Render(ctx, &buf)
		_ = httpx.WriteHTML(w, statusCode, buf.String())
		return
	}

	page := pagerender.PageContext(w, r, deps, webtemplates.ErrorPageTitle(statusCode, loc), loc, lang)
	_ = webtemplates.Layout(page).Render(templ.WithChildren(ctx, fragment), &buf)
	_ = httpx.WriteHTML(w, statusCode, buf.String())
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError && deps.Logger != nil {
		deps.Logger.WithFields(logrus.Fields{
			"path":       r.URL.Path,
			"request_id": httpx.RequestIDFrom(r),
		}).WithError(err).Error("web request failed")
	}
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
