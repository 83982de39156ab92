package subtitle

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type GenerateOptions struct {
	// OutputPath is the explicit destination for the artifact. When empty
	// and SourcePath is set, the destination is derived from SourcePath by
	// replacing its extension with the format's. When neither is set the
	// content is returned without being written anywhere.
	OutputPath string
	// SourcePath is the media file the transcript came from.
	SourcePath string
	Format     Format
	Segmenter  SegmenterOptions
	Text       TextOptions
}

func (o *GenerateOptions) SetDefaults() {
	if o.Format == "" {
		o.Format = FormatSRT
	}

	if o.Segmenter.IsEmpty() {
		o.Segmenter.SetDefaults()
	}
}

func (o *GenerateOptions) IsValid() error {
	if !o.Format.IsValid() {
		return fmt.Errorf("Format value is not valid")
	}

	return o.Segmenter.IsValid()
}

// GenerateFromText segments a plain transcript over the given duration and
// renders it, optionally writing the artifact. It returns the rendered
// content and the path written, both empty when there was nothing to render.
func GenerateFromText(text string, duration float64, opts GenerateOptions) (string, string, error) {
	opts.SetDefaults()
	return generate(SplitText(text, duration, opts.Segmenter), opts)
}

// GenerateFromResult renders a recognizer result that carries its own timed
// fragments, skipping segmentation entirely. An empty fragment list yields
// empty content and no artifact.
func GenerateFromResult(res RecognitionResult, opts GenerateOptions) (string, string, error) {
	opts.SetDefaults()
	return generate(res.Segments(), opts)
}

func generate(segs Segments, opts GenerateOptions) (string, string, error) {
	segs = segs.withText()
	if len(segs) == 0 {
		return "", "", nil
	}

	var buf bytes.Buffer
	if err := segs.render(&buf, opts); err != nil {
		return "", "", err
	}
	content := buf.String()

	outPath := opts.OutputPath
	if outPath == "" && opts.SourcePath != "" {
		outPath = DeriveOutputPath(opts.SourcePath, opts.Format)
	}
	if outPath == "" {
		return content, "", nil
	}

	if err := Save(content, outPath); err != nil {
		return content, "", err
	}

	return content, outPath, nil
}

func (s Segments) render(w io.Writer, opts GenerateOptions) error {
	switch opts.Format {
	case FormatWebVTT:
		return s.WebVTT(w)
	case FormatText:
		return s.Text(w, opts.Text)
	default:
		return s.SRT(w)
	}
}

// DeriveOutputPath replaces sourcePath's extension with the format's,
// keeping the rest of the path intact.
func DeriveOutputPath(sourcePath string, format Format) string {
	return strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + format.Extension()
}

// Save writes the rendered content as UTF-8, creating the parent directory
// if needed.
func Save(content, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}

	return nil
}
