package web

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/louisbranch/luckydraw/internal/platform/i18n/catalog"
)

func testHandler(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	if cfg.Logger == nil {
		logger := logrus.New()
		logger.SetOutput(&bytes.Buffer{})
		cfg.Logger = logger
	}
	h, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	testHandler(t, Config{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/up", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if body := rr.Body.String(); body != "ok" {
		t.Fatalf("body = %q, want %q", body, "ok")
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestStaticStylesheetIsServed(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	testHandler(t, Config{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/css") {
		t.Fatalf("content-type = %q, want text/css", got)
	}
	if !strings.Contains(rr.Body.String(), ".winners") {
		t.Fatalf("stylesheet missing winners grid rules")
	}
}

func TestRootServesDrawForm(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	testHandler(t, Config{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	for _, marker := range []string{`<form method="post" action="/draw"`, `name="winnersCount"`} {
		if !strings.Contains(rr.Body.String(), marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestAPIIsMountedWithConfiguredLimits(t *testing.T) {
	t.Parallel()

	h := testHandler(t, Config{MaxRange: 10})
	req := httptest.NewRequest(http.MethodPost, "/api/draws", strings.NewReader(`{"start":1,"end":100,"winnersCount":1}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), `"rule":"range_too_large"`) {
		t.Fatalf("body = %q, want range rule", rr.Body.String())
	}
}

func TestRequestsAreLogged(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buffer)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})

	testHandler(t, Config{Logger: logger}).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/up", nil))
	for _, marker := range []string{"http request", "path=/up", "status=200"} {
		if !strings.Contains(buffer.String(), marker) {
			t.Fatalf("log missing %q: %q", marker, buffer.String())
		}
	}
}

func TestWarnIncompleteCatalogsNamesMissingKeys(t *testing.T) {
	t.Parallel()

	bundle, err := catalog.LoadFromFS(fstest.MapFS{
		"locales/en-US/core.yaml": {Data: []byte("locale: \"en-US\"\nnamespace: \"core\"\nmessages:\n  \"core.a\": \"A\"\n  \"core.b\": \"B\"\n")},
		"locales/pt-BR/core.yaml": {Data: []byte("locale: \"pt-BR\"\nnamespace: \"core\"\nmessages:\n  \"core.a\": \"A\"\n")},
	})
	if err != nil {
		t.Fatalf("LoadFromFS() error = %v", err)
	}

	var buffer bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buffer)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	warnIncompleteCatalogs(logger, bundle)

	for _, marker := range []string{"locale catalog incomplete", "locale=pt-BR", "missing=core.b"} {
		if !strings.Contains(buffer.String(), marker) {
			t.Fatalf("log missing %q: %q", marker, buffer.String())
		}
	}
	if strings.Contains(buffer.String(), "locale=en-US") {
		t.Fatalf("base locale should not be reported: %q", buffer.String())
	}
}

func TestShippedCatalogsAreComplete(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buffer)
	warnIncompleteCatalogs(logger, catalog.Default())
	if buffer.Len() != 0 {
		t.Fatalf("unexpected catalog warning: %q", buffer.String())
	}
}

func TestNormalizeOrigins(t *testing.T) {
	t.Parallel()

	got := normalizeOrigins([]string{" https://a.test ", "", "  "})
	if len(got) != 1 || got[0] != "https://a.test" {
		t.Fatalf("normalizeOrigins() = %v, want [https://a.test]", got)
	}
}

func TestNewServerRequiresHTTPAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{HTTPAddr: "  "}); err == nil {
		t.Fatalf("expected error for empty http address")
	}
}

func TestListenAndServeStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0", Logger: logrus.New()})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.ListenAndServe(ctx)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("ListenAndServe() did not stop after cancel")
	}
}

func TestListenAndServeRejectsNilReceiver(t *testing.T) {
	t.Parallel()

	var server *Server
	if err := server.ListenAndServe(context.Background()); err == nil {
		t.Fatalf("expected error for nil server")
	}
}
