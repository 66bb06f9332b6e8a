// Package web hosts the browser-facing draw service and its JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/louisbranch/luckydraw/internal/draw"
	"github.com/louisbranch/luckydraw/internal/draw/flow"
	"github.com/louisbranch/luckydraw/internal/draw/store"
	"github.com/louisbranch/luckydraw/internal/platform/i18n/catalog"
	"github.com/louisbranch/luckydraw/internal/platform/timeouts"
	webapp "github.com/louisbranch/luckydraw/internal/services/web/app"
	module "github.com/louisbranch/luckydraw/internal/services/web/module"
	"github.com/louisbranch/luckydraw/internal/services/web/modules"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/httpx"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/observability"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/luckydraw/internal/services/web/routepath"
	webstatic "github.com/louisbranch/luckydraw/internal/services/web/static"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr            string
	DrawDelay           time.Duration
	RevealStep          time.Duration
	MaxRange            int
	MaxSessions         int
	CORSOrigins         []string
	TrustForwardedProto bool
	Logger              logrus.FieldLogger
	// FlowOptions are appended to the per-session machine options.
	FlowOptions []flow.Option
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     logrus.FieldLogger
}

// NewHandler builds the root handler with static assets, health and modules.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	warnIncompleteCatalogs(logger, catalog.Default())
	limits := draw.Limits{MaxRange: cfg.MaxRange}
	machineOpts := append([]flow.Option{
		flow.WithDelay(cfg.DrawDelay),
		flow.WithLimits(limits),
	}, cfg.FlowOptions...)
	machines, err := store.New(cfg.MaxSessions, machineOpts...)
	if err != nil {
		return nil, err
	}
	deps := module.Dependencies{
		Machines:     machines,
		Limits:       limits,
		RevealStep:   cfg.RevealStep,
		SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		CORSOrigins:  normalizeOrigins(cfg.CORSOrigins),
		Logger:       logger,
	}
	h, err := webapp.Compose(webapp.ComposeInput{
		Dependencies: deps,
		PageModules:  modules.DefaultPageModules(),
		APIModules:   modules.DefaultAPIModules(),
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Health, handleHealth)
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

// warnIncompleteCatalogs logs locales that fall back to base-locale text.
func warnIncompleteCatalogs(logger logrus.FieldLogger, bundle *catalog.Bundle) {
	for _, locale := range bundle.Locales() {
		if locale == catalog.BaseLocale {
			continue
		}
		if missing := bundle.MissingKeys(locale); len(missing) > 0 {
			logger.WithFields(logrus.Fields{
				"locale":  locale,
				"missing": strings.Join(missing, ","),
			}).Warn("locale catalog incomplete")
		}
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.httpAddr).Info("web server listening")
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
