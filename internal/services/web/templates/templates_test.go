package templates

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
)

func render(t *testing.T, ctx context.Context, component templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestDrawFormRendersFieldsAndErrors(t *testing.T) {
	t.Parallel()

	html := render(t, context.Background(), DrawForm(FormView{
		Start:        "5",
		End:          "<3>",
		WinnersCount: "1",
		Errors:       map[string]string{"end": "end must be greater than start"},
	}))
	for _, marker := range []string{
		`id="draw-panel"`,
		`name="start"`,
		`value="5"`,
		`value="&lt;3&gt;"`,
		`name="winnersCount"`,
		`min="1"`,
		`hx-post="/draw"`,
		`hx-disabled-elt=`,
		`id="end-error"`,
		`end must be greater than start`,
	} {
		if !strings.Contains(html, marker) {
			t.Fatalf("form missing %q: %s", marker, html)
		}
	}
	if strings.Contains(html, `id="start-error"`) {
		t.Fatalf("unexpected start error in %s", html)
	}
}

func TestDrawFormWhileDrawingIsDisabledAndPolls(t *testing.T) {
	t.Parallel()

	html := render(t, context.Background(), DrawForm(FormView{
		Start:        "1",
		End:          "100",
		WinnersCount: "3",
		Drawing:      true,
	}))
	for _, marker := range []string{
		`<fieldset disabled>`,
		`hx-get="/"`,
		`hx-trigger="every 1000ms"`,
		`http-equiv="refresh"`,
		`class="drawing-status"`,
		`value="100"`,
	} {
		if !strings.Contains(html, marker) {
			t.Fatalf("drawing form missing %q: %s", marker, html)
		}
	}
	if strings.Contains(html, `class="htmx-indicator"`) {
		t.Fatalf("drawing form should show a visible status: %s", html)
	}
}

func TestDrawFormIdleIsEnabled(t *testing.T) {
	t.Parallel()

	html := render(t, context.Background(), DrawForm(FormView{}))
	if strings.Contains(html, "disabled>") || strings.Contains(html, "hx-get=") {
		t.Fatalf("idle form should be enabled without polling: %s", html)
	}
}

func TestDrawResultStaggersWinners(t *testing.T) {
	t.Parallel()

	html := render(t, context.Background(), DrawResult(ResultView{
		Winners:    []int{4, 17, 42},
		RevealStep: 300 * time.Millisecond,
	}))
	for _, marker := range []string{
		`animation-delay: 0ms">4<`,
		`animation-delay: 300ms">17<`,
		`animation-delay: 600ms">42<`,
		`action="/reset"`,
	} {
		if !strings.Contains(html, marker) {
			t.Fatalf("result missing %q: %s", marker, html)
		}
	}
}

func TestLayoutWrapsChildrenWithToastAndLanguages(t *testing.T) {
	t.Parallel()

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>child</p>")
		return err
	})
	ctx := templ.WithChildren(context.Background(), body)
	html := render(t, ctx, Layout(PageContext{
		Title: "Number Draw",
		Lang:  "pt-BR",
		Languages: []LanguageOption{
			{Tag: "en-US", Label: "EN"},
			{Tag: "pt-BR", Label: "PT-BR", Active: true},
		},
		Toast: &ToastView{Kind: ToastSuccess, Title: "Done", Message: "3 numbers drawn"},
	}))
	for _, marker := range []string{
		`<html lang="pt-BR">`,
		`<title>Number Draw | core.app_name</title>`,
		`href="/static/app.css"`,
		`<p>child</p>`,
		`class="lang active" href="/?lang=pt-BR"`,
		`toast-success`,
		`3 numbers drawn`,
	} {
		if !strings.Contains(html, marker) {
			t.Fatalf("layout missing %q: %s", marker, html)
		}
	}
}

func TestErrorStateByStatus(t *testing.T) {
	t.Parallel()

	notFound := render(t, context.Background(), ErrorState(http.StatusNotFound, nil))
	if !strings.Contains(notFound, "core.error.not_found") {
		t.Fatalf("not found body = %s", notFound)
	}
	server := render(t, context.Background(), ErrorState(http.StatusBadGateway, nil))
	if !strings.Contains(server, "core.error.server") {
		t.Fatalf("server body = %s", server)
	}
	if got := ErrorPageTitle(http.StatusTeapot, nil); got != "core.error.server_title" {
		t.Fatalf("ErrorPageTitle() = %q, want %q", got, "core.error.server_title")
	}
}
