package templates

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/louisbranch/luckydraw/internal/services/web/routepath"
)

// PanelID is the element swapped by htmx form submissions.
const PanelID = "draw-panel"

// DrawingPollInterval is how often a Drawing panel asks for the outcome.
const DrawingPollInterval = time.Second

// FormView holds the draw form values and per-field messages.
type FormView struct {
	Loc          Localizer
	Start        string
	End          string
	WinnersCount string
	Errors       map[string]string
	// Drawing locks the form while the session's draw is pending.
	Drawing bool
}

// ResultView holds the winners of the current draw.
type ResultView struct {
	Loc        Localizer
	Winners    []int
	RevealStep time.Duration
}

// DrawForm renders the draw form panel. A Drawing form is disabled and polls
// the index until the result is ready.
func DrawForm(form FormView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := printer{w: w}
		if form.Drawing {
			p.printf(`<section id="%[1]s" class="panel" aria-busy="true" hx-get="%[2]s" hx-trigger="every %[3]dms" hx-target="this" hx-swap="outerHTML">`,
				PanelID, routepath.Root, DrawingPollInterval.Milliseconds())
			p.printf(`<noscript><meta http-equiv="refresh" content="%d"></noscript>`, int(DrawingPollInterval.Seconds()))
		} else {
			p.printf(`<section id="%s" class="panel">`, PanelID)
		}
		p.printf(`<h1>%s</h1><p class="tagline">%s</p>`, esc(T(form.Loc, "draw.page_title")), esc(T(form.Loc, "draw.tagline")))
		p.printf(`<form method="post" action="%[1]s" hx-post="%[1]s" hx-target="#%[2]s" hx-swap="outerHTML" hx-disabled-elt="find button[type=submit]" hx-indicator="#draw-indicator" novalidate>`,
			routepath.Draw, PanelID)
		if form.Drawing {
			p.printf(`<fieldset disabled>`)
		} else {
			p.printf(`<fieldset>`)
		}
		numberField(&p, form, "start", "draw.form.start", "draw.form.start_placeholder", form.Start)
		numberField(&p, form, "end", "draw.form.end", "draw.form.end_placeholder", form.End)
		numberField(&p, form, "winnersCount", "draw.form.winners", "draw.form.winners_placeholder", form.WinnersCount)
		p.printf(`<button type="submit" class="primary">%s</button></fieldset>`, esc(T(form.Loc, "draw.form.submit")))
		indicatorClass := "htmx-indicator"
		if form.Drawing {
			indicatorClass = "drawing-status"
		}
		p.printf(`<span id="draw-indicator" class="%s" aria-live="polite">%s</span>`, indicatorClass, esc(T(form.Loc, "draw.form.drawing")))
		p.printf(`</form></section>`)
		return p.err
	})
}

func numberField(p *printer, form FormView, name, labelKey, placeholderKey, value string) {
	message := form.Errors[name]
	invalid := ""
	if message != "" {
		invalid = ` aria-invalid="true" aria-describedby="` + name + `-error"`
	}
	p.printf(`<div class="field"><label for="%[1]s">%[2]s</label>`, name, esc(T(form.Loc, labelKey)))
	p.printf(`<input type="number" id="%[1]s" name="%[1]s" min="1" step="1" required placeholder="%[2]s" value="%[3]s"%[4]s>`,
		name, esc(T(form.Loc, placeholderKey)), esc(value), invalid)
	if message != "" {
		p.printf(`<p id="%s-error" class="field-error">%s</p>`, name, esc(message))
	}
	p.printf(`</div>`)
}

// DrawResult renders the winners grid with a staggered reveal and the reset action.
func DrawResult(view ResultView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := printer{w: w}
		p.printf(`<section id="%s" class="panel">`, PanelID)
		p.printf(`<h1>%s</h1><ol class="winners">`, esc(T(view.Loc, "draw.result.heading")))
		for idx, winner := range view.Winners {
			delay := time.Duration(idx) * view.RevealStep
			p.printf(`<li class="winner" style="animation-delay: %dms">%s</li>`, delay.Milliseconds(), strconv.Itoa(winner))
		}
		p.printf(`</ol><form method="post" action="%[1]s" hx-post="%[1]s" hx-disabled-elt="find button">`, routepath.Reset)
		p.printf(`<button type="submit" class="secondary">%s</button></form></section>`, esc(T(view.Loc, "draw.result.reset")))
		return p.err
	})
}
