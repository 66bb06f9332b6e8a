// Package web parses web command flags and starts the browser-facing server.
package web

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/luckydraw/internal/platform/cmd"
	"github.com/louisbranch/luckydraw/internal/platform/logging"
	"github.com/louisbranch/luckydraw/internal/services/web"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr            string        `env:"LUCKYDRAW_WEB_HTTP_ADDR"             envDefault:"localhost:8080"`
	DrawDelay           time.Duration `env:"LUCKYDRAW_WEB_DRAW_DELAY"            envDefault:"1500ms"`
	RevealStep          time.Duration `env:"LUCKYDRAW_WEB_REVEAL_STEP"           envDefault:"300ms"`
	MaxRange            int           `env:"LUCKYDRAW_WEB_MAX_RANGE"             envDefault:"1000000"`
	MaxSessions         int           `env:"LUCKYDRAW_WEB_MAX_SESSIONS"          envDefault:"10000"`
	CORSOrigins         []string      `env:"LUCKYDRAW_WEB_CORS_ORIGINS"          envSeparator:","`
	TrustForwardedProto bool          `env:"LUCKYDRAW_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`

	Logging logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	corsOrigins := strings.Join(cfg.CORSOrigins, ",")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.DurationVar(&cfg.DrawDelay, "draw-delay", cfg.DrawDelay, "pause before a draw result is published")
	fs.DurationVar(&cfg.RevealStep, "reveal-step", cfg.RevealStep, "delay between revealed winners")
	fs.IntVar(&cfg.MaxRange, "max-range", cfg.MaxRange, "largest accepted range size (0 applies the built-in ceiling)")
	fs.IntVar(&cfg.MaxSessions, "max-sessions", cfg.MaxSessions, "number of browser sessions kept in memory")
	fs.StringVar(&corsOrigins, "cors-origins", corsOrigins, "comma-separated origins allowed to call the JSON API")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "honor X-Forwarded-Proto when marking cookies secure")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level")
	fs.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "log format (text or json)")
	fs.StringVar(&cfg.Logging.File, "log-file", cfg.Logging.File, "rotate logs into this file instead of stderr")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.CORSOrigins = splitOrigins(corsOrigins)
	if cfg.MaxRange < 0 {
		return Config{}, fmt.Errorf("max range must not be negative, got %d", cfg.MaxRange)
	}
	if cfg.MaxSessions <= 0 {
		return Config{}, fmt.Errorf("max sessions must be positive, got %d", cfg.MaxSessions)
	}
	if cfg.DrawDelay < 0 || cfg.RevealStep < 0 {
		return Config{}, fmt.Errorf("durations must not be negative")
	}
	return cfg, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Run builds the web server and serves until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			DrawDelay:           cfg.DrawDelay,
			RevealStep:          cfg.RevealStep,
			MaxRange:            cfg.MaxRange,
			MaxSessions:         cfg.MaxSessions,
			CORSOrigins:         cfg.CORSOrigins,
			TrustForwardedProto: cfg.TrustForwardedProto,
			Logger:              logger,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
