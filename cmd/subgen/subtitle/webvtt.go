package subtitle

import (
	"fmt"
	"html"
	"io"
	"math"
)

// vttTS converts ts seconds in the 00:00:00.000 format.
func vttTS(ts float64, withMs bool) string {
	sMs := int64(1000)
	mMs := 60 * sMs
	hMs := 60 * mMs

	msTotal := tsToMs(ts)
	h := msTotal / hMs
	m := (msTotal - (h * hMs)) / mMs

	if withMs {
		s := ((msTotal - (h * hMs)) - m*mMs) / sMs
		ms := ((msTotal - (h * hMs)) - m*mMs) - s*sMs
		return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
	}

	s := int64(math.Round(float64((msTotal-(h*hMs))-m*mMs) / float64(sMs)))
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// WebVTT renders the segments in WebVTT format: a WEBVTT header followed by
// unnumbered cue blocks. Cue text is HTML-escaped; segments whose trimmed
// text is empty are skipped.
func (s Segments) WebVTT(w io.Writer) error {
	_, err := fmt.Fprintf(w, "WEBVTT\n")
	if err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	for _, seg := range s.ordered() {
		seg.sanitize(html.EscapeString)
		if seg.Text == "" {
			continue
		}

		_, err = fmt.Fprintf(w, "\n%s --> %s\n%s\n", vttTS(seg.Start, true), vttTS(seg.End, true), seg.Text)
		if err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}
	}

	return nil
}
