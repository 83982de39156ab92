package ffprobe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const DefaultBin = "ffprobe"

// Media extensions that recognizers commonly produce transcripts for. Used to
// locate the media file a transcript belongs to.
var (
	AudioExtensions = []string{".mp3", ".wav", ".m4a", ".flac", ".ogg", ".wma", ".aac"}
	VideoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm"}
)

type Config struct {
	// The name or path of the ffprobe binary to execute.
	BinPath string
}

func (c Config) IsValid() error {
	if c.BinPath == "" {
		return fmt.Errorf("invalid BinPath: should not be empty")
	}

	return nil
}

// Prober extracts media metadata by shelling out to ffprobe.
type Prober struct {
	cfg    Config
	runCmd func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func NewProber(cfg Config) (*Prober, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	return &Prober{cfg: cfg}, nil
}

// WithRunner overrides command execution. Used in tests.
func (p *Prober) WithRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	p.runCmd = runner
}

// Duration returns the container duration of the given media file in seconds.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	out, err := p.run(ctx, p.cfg.BinPath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	raw := strings.TrimSpace(string(out))
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", raw, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("duration should be a positive number")
	}

	return duration, nil
}

func (p *Prober) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if p.runCmd != nil {
		return p.runCmd(ctx, name, args...)
	}

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}

	return out, nil
}

// IsAudio reports whether path has a supported audio extension.
func IsAudio(path string) bool {
	return slices.Contains(AudioExtensions, strings.ToLower(filepath.Ext(path)))
}

// IsVideo reports whether path has a supported video extension.
func IsVideo(path string) bool {
	return slices.Contains(VideoExtensions, strings.ToLower(filepath.Ext(path)))
}

// IsSupportedMedia reports whether path has a supported audio or video extension.
func IsSupportedMedia(path string) bool {
	return IsAudio(path) || IsVideo(path)
}

// FindMediaSibling returns the first supported media file sharing the
// transcript's directory and base name (movie.json -> movie.mp4), or an
// empty string when none exists.
func FindMediaSibling(transcriptPath string) string {
	base := strings.TrimSuffix(transcriptPath, filepath.Ext(transcriptPath))
	for _, ext := range append(append([]string{}, AudioExtensions...), VideoExtensions...) {
		candidate := base + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}
