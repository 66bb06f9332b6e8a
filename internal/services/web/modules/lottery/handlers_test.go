package lottery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/luckydraw/internal/draw"
	"github.com/louisbranch/luckydraw/internal/draw/flow"
	"github.com/louisbranch/luckydraw/internal/draw/store"
	module "github.com/louisbranch/luckydraw/internal/services/web/module"
	flashnotice "github.com/louisbranch/luckydraw/internal/services/web/platform/flash"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/sessioncookie"
)

var testLimits = draw.Limits{MaxRange: 1000}

var winnerPattern = regexp.MustCompile(`<li class="winner"[^>]*>(\d+)</li>`)

type client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, opts ...flow.Option) *client {
	t.Helper()
	machines, err := store.New(16, append([]flow.Option{flow.WithDelay(0), flow.WithLimits(testLimits)}, opts...)...)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	return newClientWithDeps(t, module.Dependencies{
		Machines:   machines,
		Limits:     testLimits,
		RevealStep: 300 * time.Millisecond,
	})
}

func newClientWithDeps(t *testing.T, deps module.Dependencies) *client {
	t.Helper()
	mount, err := New().Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return &client{t: t, handler: mount.Handler, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return rr
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (c *client) post(target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return c.do(req)
}

func drawForm(start, end, winners string) url.Values {
	return url.Values{"start": {start}, "end": {end}, "winnersCount": {winners}}
}

func winnersIn(t *testing.T, body string) []int {
	t.Helper()
	var winners []int
	for _, match := range winnerPattern.FindAllStringSubmatch(body, -1) {
		value, err := strconv.Atoi(match[1])
		if err != nil {
			t.Fatalf("winner %q: %v", match[1], err)
		}
		winners = append(winners, value)
	}
	return winners
}

func TestDrawThenResetEndToEnd(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	index := c.get("/")
	if index.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want %d", index.Code, http.StatusOK)
	}
	if !strings.Contains(index.Body.String(), `name="winnersCount"`) {
		t.Fatalf("GET / should render the form: %s", index.Body.String())
	}
	if _, ok := c.cookies[sessioncookie.Name]; !ok {
		t.Fatalf("expected session cookie to be issued")
	}

	drawn := c.post("/draw", drawForm("1", "100", "3"), false)
	if drawn.Code != http.StatusSeeOther {
		t.Fatalf("POST /draw status = %d, want %d", drawn.Code, http.StatusSeeOther)
	}
	if got := drawn.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want %q", got, "/")
	}
	if _, ok := c.cookies[flashnotice.CookieName]; !ok {
		t.Fatalf("expected flash cookie after draw")
	}

	result := c.get("/")
	body := result.Body.String()
	winners := winnersIn(t, body)
	if len(winners) != 3 {
		t.Fatalf("winners = %v, want 3 numbers", winners)
	}
	if !sort.IntsAreSorted(winners) {
		t.Fatalf("winners = %v, want ascending", winners)
	}
	seen := map[int]bool{}
	for _, winner := range winners {
		if winner < 1 || winner > 100 {
			t.Fatalf("winner %d out of range", winner)
		}
		if seen[winner] {
			t.Fatalf("winners = %v, want distinct", winners)
		}
		seen[winner] = true
	}
	for _, marker := range []string{"3 number(s) drawn successfully.", `animation-delay: 600ms`, `action="/reset"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("result page missing %q: %s", marker, body)
		}
	}

	again := c.get("/")
	if strings.Contains(again.Body.String(), "drawn successfully") {
		t.Fatalf("flash toast should show once")
	}
	if got := winnersIn(t, again.Body.String()); len(got) != 3 {
		t.Fatalf("result should persist for the session, got %v", got)
	}

	reset := c.post("/reset", nil, false)
	if reset.Code != http.StatusSeeOther {
		t.Fatalf("POST /reset status = %d, want %d", reset.Code, http.StatusSeeOther)
	}
	cleared := c.get("/")
	if got := winnersIn(t, cleared.Body.String()); len(got) != 0 {
		t.Fatalf("winners after reset = %v, want none", got)
	}
	if !strings.Contains(cleared.Body.String(), `name="start"`) {
		t.Fatalf("form should be shown after reset")
	}
}

func TestDrawHTMXUsesHXRedirect(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	rr := c.post("/draw", drawForm("1", "10", "10"), true)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("HX-Redirect"); got != "/" {
		t.Fatalf("HX-Redirect = %q, want %q", got, "/")
	}
	winners := winnersIn(t, c.get("/").Body.String())
	if len(winners) != 10 || winners[0] != 1 || winners[9] != 10 {
		t.Fatalf("winners = %v, want the whole range", winners)
	}
}

func TestDrawValidationErrorsRenderNextToField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		form    url.Values
		field   string
		message string
	}{
		{name: "end not greater", form: drawForm("5", "3", "1"), field: "end", message: "End number must be greater than the start number"},
		{name: "too many winners", form: drawForm("1", "10", "20"), field: "winnersCount", message: "Number of winners cannot exceed available numbers"},
		{name: "start below one", form: drawForm("0", "10", "1"), field: "start", message: "Start number must be at least 1"},
		{name: "not a number", form: drawForm("1", "ten", "1"), field: "end", message: "End number must be a whole number"},
		{name: "range limit", form: drawForm("1", "5000", "1"), field: "end", message: "Range cannot exceed 1,000 numbers"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newClient(t)
			rr := c.post("/draw", tc.form, false)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			body := rr.Body.String()
			if !strings.Contains(body, `id="`+tc.field+`-error"`) {
				t.Fatalf("body missing %s error slot: %s", tc.field, body)
			}
			if !strings.Contains(body, tc.message) {
				t.Fatalf("body missing message %q: %s", tc.message, body)
			}
			if !strings.Contains(body, "<html") {
				t.Fatalf("full-page request should render layout")
			}
		})
	}
}

func TestDrawValidationErrorHTMXReturnsFragment(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	rr := c.post("/draw", drawForm("5", "3", "1"), true)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("htmx response should be a fragment: %s", body)
	}
	for _, marker := range []string{`id="draw-panel"`, `id="end-error"`, `value="5"`, `value="3"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("fragment missing %q: %s", marker, body)
		}
	}
}

func TestValidationFailureClearsPreviousResult(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	c.post("/draw", drawForm("1", "10", "2"), false)
	c.post("/draw", drawForm("5", "3", "1"), false)
	if got := winnersIn(t, c.get("/").Body.String()); len(got) != 0 {
		t.Fatalf("winners = %v, want cleared after validation failure", got)
	}
}

func TestDrawingStateLocksFormAcrossRequests(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	wait := func(ctx context.Context, _ time.Duration) error {
		once.Do(func() { close(entered) })
		select {
		case <-release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c := newClient(t, flow.WithDelay(time.Second), flow.WithWait(wait))
	c.get("/")

	done := make(chan *httptest.ResponseRecorder, 1)
	first := httptest.NewRequest(http.MethodPost, "/draw", strings.NewReader(drawForm("1", "10", "2").Encode()))
	first.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range c.cookies {
		first.AddCookie(cookie)
	}
	go func() {
		rr := httptest.NewRecorder()
		c.handler.ServeHTTP(rr, first)
		done <- rr
	}()
	<-entered

	page := c.get("/")
	if page.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want %d", page.Code, http.StatusOK)
	}
	body := page.Body.String()
	for _, marker := range []string{`<fieldset disabled>`, `hx-get="/"`, `class="drawing-status"`, `value="10"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("drawing page missing %q: %s", marker, body)
		}
	}
	if strings.Contains(body, `<fieldset>`) {
		t.Fatalf("drawing page rendered an enabled form: %s", body)
	}

	second := c.post("/draw", drawForm("1", "10", "2"), false)
	if second.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", second.Code, http.StatusSeeOther)
	}
	if got := second.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want %q", got, "/")
	}
	busy := c.get("/").Body.String()
	for _, marker := range []string{"Please wait", "A draw is already in progress.", `<fieldset disabled>`} {
		if !strings.Contains(busy, marker) {
			t.Fatalf("busy page missing %q: %s", marker, busy)
		}
	}

	close(release)
	if rr := <-done; rr.Code != http.StatusSeeOther {
		t.Fatalf("first status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := winnersIn(t, c.get("/").Body.String()); len(got) != 2 {
		t.Fatalf("winners = %v, want 2 after the draw completes", got)
	}
}

func TestMethodNotAllowedOnGetMutations(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	for _, path := range []string{"/draw", "/reset"} {
		rr := c.get(path)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusMethodNotAllowed)
		}
		if got := rr.Header().Get("Allow"); got != http.MethodPost {
			t.Fatalf("GET %s Allow = %q, want %q", path, got, http.MethodPost)
		}
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	t.Parallel()

	rr := newClient(t).get("/nope")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), `id="error-state"`) {
		t.Fatalf("body missing error state: %s", rr.Body.String())
	}
}

func TestCrossOriginPostIsRejected(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	req := httptest.NewRequest(http.MethodPost, "http://draw.example.test/draw", strings.NewReader(drawForm("1", "10", "2").Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://evil.example.test")
	rr := c.do(req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if !strings.Contains(rr.Body.String(), "Cross-site form submissions are not allowed.") {
		t.Fatalf("body = %q, want localized forbidden message", rr.Body.String())
	}
}

func TestIndexRendersInPortuguese(t *testing.T) {
	t.Parallel()

	rr := newClient(t).get("/?lang=pt-BR")
	body := rr.Body.String()
	if !strings.Contains(body, `<html lang="pt-BR">`) {
		t.Fatalf("body missing pt-BR document language: %s", body)
	}
}

func TestMountRequiresMachines(t *testing.T) {
	t.Parallel()

	if _, err := New().Mount(module.Dependencies{}); err == nil {
		t.Fatalf("expected error without machines")
	}
}
