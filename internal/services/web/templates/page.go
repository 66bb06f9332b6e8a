// Package templates renders the luckydraw HTML surface as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/luckydraw/internal/services/web/routepath"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// ToastKind selects toast styling.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// ToastView is a one-shot notification shown on page load.
type ToastView struct {
	Kind    ToastKind
	Title   string
	Message string
}

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title     string
	Lang      string
	Loc       Localizer
	Languages []LanguageOption
	Toast     *ToastView
}

// Layout renders the full HTML document around the children in ctx.
func Layout(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}
		appName := T(page.Loc, "core.app_name")
		title := appName
		if page.Title != "" {
			title = page.Title + " | " + appName
		}
		p := printer{w: w}
		p.printf(`<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`, esc(lang))
		p.printf(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.printf(`<title>%s</title>`, esc(title))
		p.printf(`<link rel="stylesheet" href="%s">`, esc(routepath.Static("app.css")))
		p.printf(`<script src="%s" defer></script></head><body>`, htmxScriptURL)
		p.printf(`<header class="topbar"><span class="brand">%s</span>`, esc(appName))
		if len(page.Languages) > 0 {
			p.printf(`<nav class="languages" aria-label="%s">`, esc(T(page.Loc, "core.language")))
			for _, option := range page.Languages {
				class := "lang"
				if option.Active {
					class += " active"
				}
				p.printf(`<a class="%s" href="%s" hreflang="%s">%s</a>`,
					class, esc(routepath.WithLanguage(routepath.Root, option.Tag)), esc(option.Tag), esc(option.Label))
			}
			p.printf(`</nav>`)
		}
		p.printf(`</header><main id="main" class="container">`)
		if p.err != nil {
			return p.err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		p.printf(`</main>`)
		if page.Toast != nil {
			if p.err != nil {
				return p.err
			}
			if err := Toast(*page.Toast).Render(ctx, w); err != nil {
				return err
			}
		}
		p.printf(`</body></html>`)
		return p.err
	})
}

// Toast renders a dismissable notification.
func Toast(toast ToastView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		kind := toast.Kind
		if kind != ToastError {
			kind = ToastSuccess
		}
		p := printer{w: w}
		p.printf(`<div class="toast toast-%s" role="status" aria-live="polite">`, kind)
		if toast.Title != "" {
			p.printf(`<strong class="toast-title">%s</strong>`, esc(toast.Title))
		}
		p.printf(`<p class="toast-message">%s</p></div>`, esc(toast.Message))
		return p.err
	})
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func esc(value string) string {
	return templ.EscapeString(strings.TrimSpace(value))
}
