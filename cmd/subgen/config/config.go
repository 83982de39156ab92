package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/soundshield/subgen/cmd/subgen/subtitle"
)

const (
	// defaults
	OutputFormatDefault = subtitle.FormatSRT
	FFProbeBinDefault   = "ffprobe"
	LogLevelDefault     = LogLevelInfo
	WatchSettleDefault  = 2 * time.Second
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

func (l LogLevel) Level() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type Config struct {
	// output config
	OutputFormat subtitle.Format
	Segmenter    subtitle.SegmenterOptions
	Text         subtitle.TextOptions

	// tooling config
	FFProbeBin string
	LogLevel   LogLevel

	// watch config
	WatchSettle time.Duration
}

func (cfg Config) IsValid() error {
	if cfg == (Config{}) {
		return fmt.Errorf("config cannot be empty")
	}

	if !cfg.OutputFormat.IsValid() {
		return fmt.Errorf("OutputFormat value is not valid")
	}

	if cfg.FFProbeBin == "" {
		return fmt.Errorf("FFProbeBin cannot be empty")
	}

	if !cfg.LogLevel.IsValid() {
		return fmt.Errorf("LogLevel value is not valid")
	}

	if cfg.WatchSettle <= 0 {
		return fmt.Errorf("WatchSettle should be a positive duration")
	}

	if err := cfg.Segmenter.IsValid(); err != nil {
		return err
	}

	return cfg.Text.IsValid()
}

func (cfg *Config) SetDefaults() {
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = OutputFormatDefault
	}

	if cfg.FFProbeBin == "" {
		cfg.FFProbeBin = FFProbeBinDefault
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = LogLevelDefault
	}

	if cfg.WatchSettle == 0 {
		cfg.WatchSettle = WatchSettleDefault
	}

	if cfg.Segmenter.IsEmpty() {
		cfg.Segmenter.SetDefaults()
	}

	if cfg.Text.IsEmpty() {
		cfg.Text.SetDefaults()
	}
}

func FromEnv() (Config, error) {
	var cfg Config

	if val := os.Getenv("OUTPUT_FORMAT"); val != "" {
		cfg.OutputFormat = subtitle.Format(val)
	}

	cfg.FFProbeBin = os.Getenv("FFPROBE_PATH")
	cfg.LogLevel = LogLevel(os.Getenv("LOG_LEVEL"))

	if val := os.Getenv("WATCH_SETTLE"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse WATCH_SETTLE: %w", err)
		}
		cfg.WatchSettle = d
	}

	cfg.Segmenter.FromEnv()
	cfg.Text.FromEnv()

	return cfg, nil
}
