package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/soundshield/subgen/cmd/subgen/config"
	"github.com/soundshield/subgen/cmd/subgen/subtitle"
)

const cueTextWidth = 60

func newInspectCommand(cfg config.Config) *cobra.Command {
	var mediaPath string
	var duration float64

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the cues of a subtitle file or transcript",
		Long: `Show the cues of a subtitle file (.srt) or the cues a transcript
(.json or .txt) would produce, along with any timing issues found.

Checks that cues end past the media duration run only when a duration is
known: pass --duration or --media, or inspect a plain text transcript.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			segs, knownDuration, err := loadCues(cmd.Context(), cfg, path, duration, mediaPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			if len(segs) == 0 {
				_, err = fmt.Fprintln(w, "no cues")
				return err
			}

			fmt.Fprintln(w, renderCueTable(segs))

			var span float64
			for _, seg := range segs {
				if seg.End > span {
					span = seg.End
				}
			}
			fmt.Fprintf(w, "%d cues, %s\n", len(segs), formatClock(span))

			if issues := segs.Validate(knownDuration); len(issues) > 0 {
				colorize := shouldColorize(w)
				fmt.Fprintf(w, "\n%d issue(s):\n", len(issues))
				for _, issue := range issues {
					line := "  - " + issue
					if colorize {
						line = ansiYellow + line + ansiReset
					}
					fmt.Fprintln(w, line)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&mediaPath, "media", "m", "", "media file to probe for duration")
	cmd.Flags().Float64VarP(&duration, "duration", "d", 0, "duration of the source media in seconds, skips probing")

	return cmd
}

// loadCues returns the cues of the given file plus the media duration they
// were checked against, 0 when unknown.
func loadCues(ctx context.Context, cfg config.Config, path string, duration float64, mediaPath string) (subtitle.Segments, float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to open subtitle file: %w", err)
		}
		defer f.Close()

		segs, err := subtitle.ParseSRT(f)
		if err != nil {
			return nil, 0, err
		}

		d, err := optionalDuration(ctx, cfg, duration, mediaPath)
		return segs, d, err
	case ".json":
		res, err := subtitle.LoadResult(path)
		if err != nil {
			return nil, 0, err
		}

		d, err := optionalDuration(ctx, cfg, duration, mediaPath)
		return res.Segments(), d, err
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read transcript: %w", err)
		}

		d, err := resolveDuration(ctx, cfg, duration, mediaPath, path)
		if err != nil {
			return nil, 0, err
		}

		return subtitle.SplitText(string(data), d, cfg.Segmenter), d, nil
	default:
		return nil, 0, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// optionalDuration probes the media file when one was given, otherwise the
// duration stays unknown and duration checks are skipped.
func optionalDuration(ctx context.Context, cfg config.Config, duration float64, mediaPath string) (float64, error) {
	if duration > 0 || mediaPath == "" {
		return duration, nil
	}
	return resolveDuration(ctx, cfg, 0, mediaPath, "")
}

func renderCueTable(segs subtitle.Segments) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "START", "END", "DURATION", "CHARS", "TEXT"})

	for i, seg := range segs {
		tw.AppendRow(table.Row{
			i + 1,
			subtitle.SRTTimestamp(seg.Start),
			subtitle.SRTTimestamp(seg.End),
			fmt.Sprintf("%.3fs", seg.Duration()),
			utf8.RuneCountInString(seg.Text),
			seg.Text,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 6, WidthMax: cueTextWidth},
	})

	return tw.Render()
}
