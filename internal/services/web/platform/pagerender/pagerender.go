// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	module "github.com/louisbranch/luckydraw/internal/services/web/module"
	flashnotice "github.com/louisbranch/luckydraw/internal/services/web/platform/flash"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/luckydraw/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/luckydraw/internal/services/web/templates"
)

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage renders page.Fragment alone for htmx requests and inside
// the full layout otherwise. Full pages consume any pending flash notice.
func WriteModulePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
		return httpx.WriteHTML(w, statusCode, buf.String())
	}

	loc, lang := webi18n.ResolveLocalizer(w, r)
	layout := webtemplates.Layout(PageContext(w, r, deps, page.Title, loc, lang))
	if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, statusCode, buf.String())
}

// PageContext builds layout context for a full-page render.
func PageContext(w http.ResponseWriter, r *http.Request, deps module.Dependencies, title string, loc webi18n.Localizer, lang string) webtemplates.PageContext {
	options := webi18n.LanguageOptions(loc, lang)
	languages := make([]webtemplates.LanguageOption, 0, len(options))
	for _, option := range options {
		languages = append(languages, webtemplates.LanguageOption{Tag: option.Tag, Label: option.Label, Active: option.Active})
	}
	return webtemplates.PageContext{
		Title:     title,
		Lang:      lang,
		Loc:       loc,
		Languages: languages,
		Toast:     resolveFlashToast(w, r, deps, loc),
	}
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, deps module.Dependencies, loc webi18n.Localizer) *webtemplates.ToastView {
	notice, ok := flashnotice.ReadAndClearWithPolicy(w, r, deps.SchemePolicy)
	if !ok {
		return nil
	}
	args := make([]any, 0, len(notice.Args))
	for _, arg := range notice.Args {
		args = append(args, arg)
	}
	message := strings.TrimSpace(loc.Sprintf(notice.Key, args...))
	if message == "" {
		return nil
	}
	toast := &webtemplates.ToastView{Kind: webtemplates.ToastSuccess, Message: message}
	if notice.Kind == flashnotice.KindError {
		toast.Kind = webtemplates.ToastError
	}
	if notice.Title != "" {
		toast.Title = loc.Sprintf(notice.Title)
	}
	return toast
}
