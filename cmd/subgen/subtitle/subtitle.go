// Package subtitle turns recognized speech into timed caption segments and
// serializes them to common subtitle formats.
package subtitle

import (
	"fmt"
	"sort"
	"strings"
)

type Format string

const (
	FormatSRT    Format = "srt"
	FormatWebVTT Format = "vtt"
	FormatText   Format = "txt"
)

func (f Format) IsValid() bool {
	switch f {
	case FormatSRT, FormatWebVTT, FormatText:
		return true
	default:
		return false
	}
}

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	return "." + string(f)
}

// Segment is a single caption cue. Times are offsets from the start of the
// media, in seconds.
type Segment struct {
	Text  string
	Start float64
	End   float64
}

func (s Segment) Duration() float64 {
	return s.End - s.Start
}

func (s *Segment) sanitize(funcs ...func(string) string) {
	s.Text = strings.TrimSpace(s.Text)
	for _, f := range funcs {
		s.Text = f(s.Text)
	}
}

// Segments is an ordered sequence of cues, ascending by start time.
type Segments []Segment

// ordered returns a copy sorted by start time. The receiver is not
// modified.
func (s Segments) ordered() Segments {
	out := make(Segments, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// withText returns the subset of segments whose trimmed text is non-empty.
func (s Segments) withText() Segments {
	out := make(Segments, 0, len(s))
	for _, seg := range s {
		if strings.TrimSpace(seg.Text) != "" {
			out = append(out, seg)
		}
	}
	return out
}

// Validate checks the sequence against the cue invariants and returns
// human-readable issues, one per violation. A duration > 0 additionally
// checks that no cue ends past it.
func (s Segments) Validate(duration float64) []string {
	var issues []string
	for i, seg := range s {
		if strings.TrimSpace(seg.Text) == "" {
			issues = append(issues, fmt.Sprintf("cue %d: empty text", i+1))
		}
		if seg.Start < 0 {
			issues = append(issues, fmt.Sprintf("cue %d: negative start time", i+1))
		}
		if seg.End < seg.Start {
			issues = append(issues, fmt.Sprintf("cue %d: end precedes start", i+1))
		}
		if i > 0 && seg.Start < s[i-1].End {
			issues = append(issues, fmt.Sprintf("cue %d: overlaps previous cue", i+1))
		}
		if duration > 0 && seg.End > duration {
			issues = append(issues, fmt.Sprintf("cue %d: ends past media duration", i+1))
		}
	}
	return issues
}
