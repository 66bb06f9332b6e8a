// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config controls log level, format and destination.
type Config struct {
	Level      string `env:"LUCKYDRAW_LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LUCKYDRAW_LOG_FORMAT" envDefault:"text"`
	File       string `env:"LUCKYDRAW_LOG_FILE"`
	MaxSizeMB  int    `env:"LUCKYDRAW_LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LUCKYDRAW_LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LUCKYDRAW_LOG_MAX_AGE_DAYS" envDefault:"28"`
}

// New builds a logger from cfg. When cfg.File is set, output goes to a
// size-rotated file instead of stderr; the returned closer releases it.
func New(cfg Config) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	formatter, err := newFormatter(cfg.Format)
	if err != nil {
		return nil, nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(formatter)

	var closer io.Closer = nopCloser{}
	if path := strings.TrimSpace(cfg.File); path != "" {
		rotating := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		logger.SetOutput(rotating)
		closer = rotating
	} else {
		logger.SetOutput(os.Stderr)
	}
	return logger, closer, nil
}

// Install builds a logger from cfg and makes it the logrus standard logger.
func Install(cfg Config) (io.Closer, error) {
	logger, closer, err := New(cfg)
	if err != nil {
		return nil, err
	}
	std := logrus.StandardLogger()
	std.SetLevel(logger.GetLevel())
	std.SetFormatter(logger.Formatter)
	std.SetOutput(logger.Out)
	return closer, nil
}

func newFormatter(format string) (logrus.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return &logrus.TextFormatter{FullTimestamp: true}, nil
	case FormatJSON:
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
