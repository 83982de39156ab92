package subtitle

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// defaults
	MaxCharsPerSegmentDefault = 40
	MinSegmentDurationDefault = 1.5
	MaxSegmentDurationDefault = 5.0
)

// sentenceEnd matches a run of sentence-final punctuation, CJK or Latin.
var sentenceEnd = regexp.MustCompile(`[。！？.!?]+`)

type SegmenterOptions struct {
	// MaxCharsPerSegment is the chunk width, in characters, used when the
	// text carries no sentence-final punctuation to split on.
	MaxCharsPerSegment int
	// MinSegmentDuration and MaxSegmentDuration bound the computed duration
	// of each caption, in seconds.
	MinSegmentDuration float64
	MaxSegmentDuration float64
}

func (o *SegmenterOptions) SetDefaults() {
	if o.MaxCharsPerSegment == 0 {
		o.MaxCharsPerSegment = MaxCharsPerSegmentDefault
	}

	if o.MinSegmentDuration == 0 {
		o.MinSegmentDuration = MinSegmentDurationDefault
	}

	if o.MaxSegmentDuration == 0 {
		o.MaxSegmentDuration = MaxSegmentDurationDefault
	}
}

func (o *SegmenterOptions) IsValid() error {
	if o.MaxCharsPerSegment <= 0 {
		return fmt.Errorf("MaxCharsPerSegment should be a positive number")
	}

	if o.MinSegmentDuration <= 0 {
		return fmt.Errorf("MinSegmentDuration should be a positive number")
	}

	if o.MaxSegmentDuration < o.MinSegmentDuration {
		return fmt.Errorf("MaxSegmentDuration should not be less than MinSegmentDuration")
	}

	return nil
}

func (o *SegmenterOptions) IsEmpty() bool {
	return o == nil || *o == SegmenterOptions{}
}

func (o *SegmenterOptions) FromEnv() {
	o.MaxCharsPerSegment, _ = strconv.Atoi(os.Getenv("SEGMENTER_MAX_CHARS"))
	o.MinSegmentDuration, _ = strconv.ParseFloat(os.Getenv("SEGMENTER_MIN_SEGMENT_DURATION"), 64)
	o.MaxSegmentDuration, _ = strconv.ParseFloat(os.Getenv("SEGMENTER_MAX_SEGMENT_DURATION"), 64)
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '。', '！', '？', '.', '!', '?':
		return true
	default:
		return false
	}
}

// splitSentences breaks text at runs of sentence-final punctuation, keeping
// each run attached to the sentence it closes. A trailing remainder without
// a terminator becomes its own unit. Returns nil when the text carries no
// terminator at all.
func splitSentences(text string) []string {
	locs := sentenceEnd.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	var units []string
	last := 0
	for _, loc := range locs {
		sentence := strings.TrimSpace(text[last:loc[0]])
		punct := text[loc[0]:loc[1]]
		if sentence != "" {
			units = append(units, sentence+punct)
		}
		last = loc[1]
	}

	if tail := strings.TrimSpace(text[last:]); tail != "" {
		units = append(units, tail)
	}

	return units
}

// chunkText slices text into consecutive windows of size characters,
// trimming each window and discarding empties.
func chunkText(text string, size int) []string {
	runes := []rune(text)

	var chunks []string
	for i := 0; i < len(runes); i += size {
		chunk := strings.TrimSpace(string(runes[i:min(i+size, len(runes))]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}

// SplitText converts an un-timed transcript plus a known total duration into
// an ordered sequence of caption segments. The text is split at sentence-final
// punctuation, falling back to fixed-width chunks when no punctuation is
// present; the total duration is then distributed across the units in
// proportion to their character counts, with each caption's duration clamped
// into [MinSegmentDuration, MaxSegmentDuration]. The last caption is extended
// to reach the total duration. Character counts are in runes.
//
// Empty text, a duration <= 0, or text made solely of punctuation and
// whitespace yields no segments. Units that would start at or past the total
// duration are dropped.
func SplitText(text string, duration float64, opts SegmenterOptions) Segments {
	text = strings.TrimSpace(text)
	if text == "" || duration <= 0 {
		return nil
	}

	if !strings.ContainsFunc(text, func(r rune) bool {
		return !isSentenceEnd(r) && !unicode.IsSpace(r)
	}) {
		return nil
	}

	opts.SetDefaults()

	units := splitSentences(text)
	if len(units) == 0 {
		units = chunkText(text, opts.MaxCharsPerSegment)
	}
	if len(units) == 0 {
		return Segments{{Text: text, Start: 0, End: duration}}
	}

	var totalChars int
	for _, unit := range units {
		totalChars += utf8.RuneCountInString(unit)
	}
	charDuration := duration / float64(totalChars)

	segments := make(Segments, 0, len(units))
	currentTime := 0.0
	for _, unit := range units {
		segmentDuration := float64(utf8.RuneCountInString(unit)) * charDuration
		segmentDuration = max(opts.MinSegmentDuration, min(segmentDuration, opts.MaxSegmentDuration))

		endTime := min(currentTime+segmentDuration, duration)

		segments = append(segments, Segment{
			Text:  unit,
			Start: currentTime,
			End:   endTime,
		})

		currentTime = endTime
		if currentTime >= duration {
			break
		}
	}

	// The last caption always reaches the true end of the media.
	if len(segments) > 0 && segments[len(segments)-1].End < duration {
		segments[len(segments)-1].End = duration
	}

	return segments
}
