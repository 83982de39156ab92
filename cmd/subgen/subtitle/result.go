package subtitle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Fragment is one pre-timed piece of recognized speech, as emitted by the
// upstream recognizer. Times are in seconds.
type Fragment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// RecognitionResult is the recognizer's output for a whole media file: the
// full transcript plus, when the engine produced them, per-sentence timed
// fragments.
type RecognitionResult struct {
	Text      string     `json:"text"`
	Fragments []Fragment `json:"timestamps"`
}

func (r RecognitionResult) IsEmpty() bool {
	return len(r.Fragments) == 0
}

// Segments wraps the timed fragments into caption segments, trimming their
// text and ordering them by start time. Fragment timings are adopted as-is,
// with no re-segmentation.
func (r RecognitionResult) Segments() Segments {
	segs := make(Segments, 0, len(r.Fragments))
	for _, f := range r.Fragments {
		segs = append(segs, Segment{
			Text:  strings.TrimSpace(f.Text),
			Start: f.Start,
			End:   f.End,
		})
	}

	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].Start < segs[j].Start
	})

	return segs
}

func DecodeResult(r io.Reader) (RecognitionResult, error) {
	var res RecognitionResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return RecognitionResult{}, fmt.Errorf("failed to decode recognition result: %w", err)
	}
	return res, nil
}

func LoadResult(path string) (RecognitionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return RecognitionResult{}, fmt.Errorf("failed to open recognition result: %w", err)
	}
	defer f.Close()

	return DecodeResult(f)
}
