package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soundshield/subgen/cmd/subgen/apis/ffprobe"
	"github.com/soundshield/subgen/cmd/subgen/config"
	"github.com/soundshield/subgen/cmd/subgen/subtitle"
	"github.com/soundshield/subgen/cmd/subgen/watcher"
)

const stopTimeout = 30 * time.Second

func newWatchCommand(cfg config.Config) *cobra.Command {
	var outputDir string
	var format string
	var settle time.Duration

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a directory for transcripts and generate subtitles",
		Long: `Watch a directory for new or changed transcripts (.json or .txt)
and generate a subtitle file for each one. A transcript is processed once it
has sat unchanged for the settle period. Plain text transcripts need their
media file next to them so the duration can be probed.

Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "" {
				cfg.OutputFormat = subtitle.Format(format)
			}
			if settle > 0 {
				cfg.WatchSettle = settle
			}
			if err := cfg.IsValid(); err != nil {
				return err
			}

			prober, err := ffprobe.NewProber(ffprobe.Config{BinPath: cfg.FFProbeBin})
			if err != nil {
				return err
			}

			w, err := watcher.New(watcher.Config{
				Dir:       args[0],
				Settle:    cfg.WatchSettle,
				OutputDir: outputDir,
				Format:    cfg.OutputFormat,
				Segmenter: cfg.Segmenter,
				Text:      cfg.Text,
			}, prober)
			if err != nil {
				return err
			}

			if err := w.Start(cmd.Context()); err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

			select {
			case <-w.Done():
				return w.Err()
			case <-sig:
				slog.Info("received signal, stopping watcher")
				ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
				defer cancel()
				return w.Stop(ctx)
			}
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory generated files are written to (default: next to the transcript)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "subtitle format to render (srt|vtt|txt)")
	cmd.Flags().DurationVar(&settle, "settle", 0, "how long a transcript must sit unchanged before it is processed")

	return cmd
}
