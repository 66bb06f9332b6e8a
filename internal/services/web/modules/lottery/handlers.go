package lottery

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/luckydraw/internal/draw"
	"github.com/louisbranch/luckydraw/internal/draw/flow"
	module "github.com/louisbranch/luckydraw/internal/services/web/module"
	apperrors "github.com/louisbranch/luckydraw/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/luckydraw/internal/services/web/platform/flash"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/luckydraw/internal/services/web/platform/i18n"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/pagerender"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/weberror"
	"github.com/louisbranch/luckydraw/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/luckydraw/internal/services/web/templates"
)

var errCrossOrigin = apperrors.EK(apperrors.KindForbidden, "core.error.forbidden", "cross-origin form submission")

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	machine, err := h.machine(w, r)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r)
	snapshot := machine.Snapshot()
	switch snapshot.State {
	case flow.StateResult:
		h.writePage(w, r, loc, http.StatusOK, webtemplates.DrawResult(webtemplates.ResultView{
			Loc:        loc,
			Winners:    snapshot.Result.Winners,
			RevealStep: h.deps.RevealStep,
		}))
	case flow.StateDrawing:
		pending := snapshot.Result.Request
		h.writePage(w, r, loc, http.StatusOK, webtemplates.DrawForm(webtemplates.FormView{
			Loc:          loc,
			Start:        strconv.Itoa(pending.Start),
			End:          strconv.Itoa(pending.End),
			WinnersCount: strconv.Itoa(pending.WinnersCount),
			Drawing:      true,
		}))
	default:
		h.writePage(w, r, loc, http.StatusOK, webtemplates.DrawForm(webtemplates.FormView{Loc: loc}))
	}
}

func (h handlers) handleDraw(w http.ResponseWriter, r *http.Request) {
	if requestmeta.IsCrossOrigin(r, h.deps.SchemePolicy) {
		weberror.WriteModuleError(w, r, errCrossOrigin, h.deps)
		return
	}
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form body"), h.deps)
		return
	}
	machine, err := h.machine(w, r)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	input := draw.Input{
		Start:        r.PostFormValue(string(draw.FieldStart)),
		End:          r.PostFormValue(string(draw.FieldEnd)),
		WinnersCount: r.PostFormValue(string(draw.FieldWinnersCount)),
	}
	result, err := machine.Submit(httpx.RequestContext(r), input)
	if err == nil {
		flashnotice.WriteWithPolicy(w, r, flashnotice.NoticeSuccess(
			"draw.toast.success_title",
			"draw.toast.success",
			strconv.Itoa(len(result.Winners)),
		), h.deps.SchemePolicy)
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}

	var validation *draw.ValidationError
	switch {
	case errors.As(err, &validation):
		h.writeInvalidForm(w, r, input, validation)
	case errors.Is(err, flow.ErrDrawDiscarded):
		httpx.WriteRedirect(w, r, routepath.Root)
	case errors.Is(err, flow.ErrDrawInProgress):
		flashnotice.WriteWithPolicy(w, r, flashnotice.NoticeError(
			"draw.toast.busy_title",
			"draw.toast.in_progress",
		), h.deps.SchemePolicy)
		httpx.WriteRedirect(w, r, routepath.Root)
	default:
		weberror.WriteModuleError(w, r, apperrors.FromDraw(err), h.deps)
	}
}

func (h handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	if requestmeta.IsCrossOrigin(r, h.deps.SchemePolicy) {
		weberror.WriteModuleError(w, r, errCrossOrigin, h.deps)
		return
	}
	machine, err := h.machine(w, r)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	machine.Reset()
	httpx.WriteRedirect(w, r, routepath.Root)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

// writeInvalidForm re-renders the form with the message under the failing
// field. Full pages answer 400; htmx swaps need a 2xx to apply.
func (h handlers) writeInvalidForm(w http.ResponseWriter, r *http.Request, input draw.Input, validation *draw.ValidationError) {
	loc, _ := webi18n.ResolveLocalizer(w, r)
	status := http.StatusBadRequest
	if httpx.IsHTMXRequest(r) {
		status = http.StatusOK
	}
	h.writePage(w, r, loc, status, webtemplates.DrawForm(webtemplates.FormView{
		Loc:          loc,
		Start:        strings.TrimSpace(input.Start),
		End:          strings.TrimSpace(input.End),
		WinnersCount: strings.TrimSpace(input.WinnersCount),
		Errors: map[string]string{
			string(validation.Field): validationMessage(loc, validation, h.deps.Limits),
		},
	}))
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer, status int, fragment templ.Component) {
	err := pagerender.WriteModulePage(w, r, h.deps, pagerender.ModulePage{
		Title:      loc.Sprintf("draw.page_title"),
		StatusCode: status,
		Fragment:   fragment,
	})
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
	}
}

func (h handlers) machine(w http.ResponseWriter, r *http.Request) (*flow.Machine, error) {
	sessionID, _ := sessioncookie.Ensure(w, r, h.deps.SchemePolicy)
	return h.deps.Machines.Machine(sessionID)
}

func validationMessage(loc webi18n.Localizer, validation *draw.ValidationError, limits draw.Limits) string {
	if validation.Rule == draw.RuleRangeTooLarge {
		return loc.Sprintf(validation.Key, limits.RangeCap())
	}
	return loc.Sprintf(validation.Key)
}
