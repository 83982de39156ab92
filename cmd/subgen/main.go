package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/soundshield/subgen/cmd/subgen/config"

	"github.com/joho/godotenv"
)

func slogReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
	}
	return a
}

func main() {
	_ = godotenv.Load() // best-effort: load .env if present

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("failed to load config", slog.String("err", err.Error()))
		os.Exit(1)
	}
	cfg.SetDefaults()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   true,
		Level:       cfg.LogLevel.Level(),
		ReplaceAttr: slogReplaceAttr,
	}))
	slog.SetDefault(logger)

	if err := newRootCommand(cfg).Execute(); err != nil {
		slog.Error("command failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
