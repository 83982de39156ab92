package subtitle

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
)

type TextCompactOptions struct {
	// SilenceThreshold is the largest pause, in seconds, that still allows
	// two consecutive segments to be joined.
	SilenceThreshold float64
	// MaxSegmentDuration caps the running span, in seconds, of a joined
	// segment.
	MaxSegmentDuration float64
}

func (o *TextCompactOptions) SetDefaults() {
	o.SilenceThreshold = 2.0
	o.MaxSegmentDuration = 10.0
}

func (o *TextCompactOptions) IsEmpty() bool {
	return o == nil || *o == TextCompactOptions{}
}

type TextOptions struct {
	CompactOptions TextCompactOptions
}

func (o *TextOptions) SetDefaults() {
	o.CompactOptions.SetDefaults()
}

func (o *TextOptions) IsValid() error {
	if o.CompactOptions.SilenceThreshold <= 0 {
		return fmt.Errorf("SilenceThreshold should be a positive number")
	}

	if o.CompactOptions.MaxSegmentDuration <= 0 {
		return fmt.Errorf("MaxSegmentDuration should be a positive number")
	}

	return nil
}

func (o *TextOptions) IsEmpty() bool {
	return o.CompactOptions.IsEmpty()
}

func (o *TextOptions) FromEnv() {
	o.CompactOptions.SilenceThreshold, _ = strconv.ParseFloat(os.Getenv("TEXT_COMPACT_SILENCE_THRESHOLD"), 64)
	o.CompactOptions.MaxSegmentDuration, _ = strconv.ParseFloat(os.Getenv("TEXT_COMPACT_MAX_SEGMENT_DURATION"), 64)
}

func compactSegments(segments Segments, opts TextCompactOptions) Segments {
	if len(segments) < 2 {
		return segments
	}

	out := Segments{segments[0]}

	for i := 1; i < len(segments); i++ {
		currSeg := segments[i]
		prevSeg := segments[i-1]

		// We join the segments if:
		// - There's less than SilenceThreshold of pause between the end of the previous segment and the start of the next one.
		// - The overall (running) duration of the joined segments is less than MaxSegmentDuration.
		if currSeg.Start-prevSeg.End < opts.SilenceThreshold &&
			currSeg.Start-out[len(out)-1].Start < opts.MaxSegmentDuration {

			slog.Debug(fmt.Sprintf("%d and %d can be joined", i-1, i))
			out[len(out)-1].Text += " " + currSeg.Text
			out[len(out)-1].End = currSeg.End
		} else {
			out = append(out, currSeg)
		}
	}

	slog.Debug("compact done", slog.Int("inLen", len(segments)), slog.Int("outLen", len(out)))

	return out
}

// Text renders the segments as a readable transcript: a timing line followed
// by the text of each segment. Non-empty CompactOptions join consecutive
// segments separated by short pauses.
func (s Segments) Text(w io.Writer, opts TextOptions) error {
	segments := s.ordered().withText()

	if !opts.CompactOptions.IsEmpty() {
		segments = compactSegments(segments, opts.CompactOptions)
	}

	for i, seg := range segments {
		seg.sanitize()

		nl := "\n"
		if i == 0 {
			nl = ""
		}
		_, err := fmt.Fprintf(w, "%s%s -> %s\n", nl, vttTS(seg.Start, false), vttTS(seg.End, false))
		if err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", seg.Text)
		if err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}
	}

	return nil
}
