package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soundshield/subgen/cmd/subgen/apis/ffprobe"
	"github.com/soundshield/subgen/cmd/subgen/config"
	"github.com/soundshield/subgen/cmd/subgen/subtitle"
)

func newGenerateCommand(cfg config.Config) *cobra.Command {
	var outputPath string
	var format string
	var mediaPath string
	var duration float64
	var maxChars int
	var minSeg float64
	var maxSeg float64

	cmd := &cobra.Command{
		Use:   "generate <transcript>",
		Short: "Generate a subtitle file from a transcript",
		Long: `Generate a subtitle file from a speech recognition transcript.

The transcript is either a recognizer result (.json, timed fragments are kept
as-is) or a plain text file (.txt, segmented over the media duration). Plain
text needs a duration: pass --duration, point --media at the media file, or
keep the media file next to the transcript so it can be found and probed.

Examples:
  subgen generate movie.json                 # writes movie.srt
  subgen generate movie.txt -m movie.mp4     # probes movie.mp4, writes movie.srt
  subgen generate movie.txt -d 95.5 -f vtt   # fixed duration, writes movie.vtt
  subgen generate movie.json -o -            # print to stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcriptPath := args[0]

			if format != "" {
				cfg.OutputFormat = subtitle.Format(format)
			}
			if maxChars > 0 {
				cfg.Segmenter.MaxCharsPerSegment = maxChars
			}
			if minSeg > 0 {
				cfg.Segmenter.MinSegmentDuration = minSeg
			}
			if maxSeg > 0 {
				cfg.Segmenter.MaxSegmentDuration = maxSeg
			}
			if err := cfg.IsValid(); err != nil {
				return err
			}

			opts := subtitle.GenerateOptions{
				SourcePath: transcriptPath,
				OutputPath: outputPath,
				Format:     cfg.OutputFormat,
				Segmenter:  cfg.Segmenter,
				Text:       cfg.Text,
			}

			toStdout := outputPath == "-"
			if toStdout {
				opts.OutputPath = ""
				opts.SourcePath = ""
			} else if outputPath == "" && mediaPath != "" {
				opts.OutputPath = subtitle.DeriveOutputPath(mediaPath, cfg.OutputFormat)
			}

			var content, savedPath string
			switch strings.ToLower(filepath.Ext(transcriptPath)) {
			case ".json":
				res, err := subtitle.LoadResult(transcriptPath)
				if err != nil {
					return err
				}
				content, savedPath, err = subtitle.GenerateFromResult(res, opts)
				if err != nil {
					return err
				}
			case ".txt":
				data, err := os.ReadFile(transcriptPath)
				if err != nil {
					return fmt.Errorf("failed to read transcript: %w", err)
				}
				d, err := resolveDuration(cmd.Context(), cfg, duration, mediaPath, transcriptPath)
				if err != nil {
					return err
				}
				content, savedPath, err = subtitle.GenerateFromText(string(data), d, opts)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported transcript type %q", filepath.Ext(transcriptPath))
			}

			if content == "" {
				slog.Info("nothing to save", slog.String("path", transcriptPath))
				return nil
			}

			if toStdout {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			slog.Info("subtitles saved", slog.String("output", savedPath))

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "path of the subtitle file to write, \"-\" for stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "subtitle format to render (srt|vtt|txt)")
	cmd.Flags().StringVarP(&mediaPath, "media", "m", "", "media file to probe for duration and derive the destination from")
	cmd.Flags().Float64VarP(&duration, "duration", "d", 0, "duration of the source media in seconds, skips probing")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "maximum characters per segment when chunking unpunctuated text")
	cmd.Flags().Float64Var(&minSeg, "min-seg", 0, "minimum segment duration in seconds")
	cmd.Flags().Float64Var(&maxSeg, "max-seg", 0, "maximum segment duration in seconds")

	return cmd
}

// resolveDuration picks the media duration for plain text transcripts: an
// explicit value wins, otherwise the media file (given or found next to the
// transcript) is probed.
func resolveDuration(ctx context.Context, cfg config.Config, duration float64, mediaPath, transcriptPath string) (float64, error) {
	if duration > 0 {
		return duration, nil
	}

	if mediaPath == "" {
		mediaPath = ffprobe.FindMediaSibling(transcriptPath)
	}
	if mediaPath == "" {
		return 0, fmt.Errorf("cannot resolve the media duration: pass --duration or --media, or keep the media file next to the transcript")
	}

	prober, err := ffprobe.NewProber(ffprobe.Config{BinPath: cfg.FFProbeBin})
	if err != nil {
		return 0, err
	}

	return prober.Duration(ctx, mediaPath)
}
