package subtitle

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// tsToMs converts ts seconds to milliseconds. The value is rounded at
// microsecond precision, then truncated to milliseconds.
func tsToMs(ts float64) int64 {
	if ts < 0 {
		ts = 0
	}
	return int64(math.Round(ts*1e6)) / 1000
}

// SRTTimestamp converts ts seconds in the 00:00:00,000 format.
func SRTTimestamp(ts float64) string {
	sMs := int64(1000)
	mMs := 60 * sMs
	hMs := 60 * mMs

	msTotal := tsToMs(ts)
	h := msTotal / hMs
	m := (msTotal - (h * hMs)) / mMs
	s := ((msTotal - (h * hMs)) - m*mMs) / sMs
	ms := ((msTotal - (h * hMs)) - m*mMs) - s*sMs

	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// SRT renders the segments in SubRip format: numbered blocks of
// index, timing line and text, separated by blank lines. Indices start at 1
// and increase only for emitted blocks; segments whose trimmed text is empty
// are skipped without consuming an index.
func (s Segments) SRT(w io.Writer) error {
	idx := 1
	for _, seg := range s.ordered() {
		seg.sanitize()
		if seg.Text == "" {
			continue
		}

		nl := "\n"
		if idx == 1 {
			nl = ""
		}
		_, err := fmt.Fprintf(w, "%s%d\n%s --> %s\n%s\n", nl, idx, SRTTimestamp(seg.Start), SRTTimestamp(seg.End), seg.Text)
		if err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}
		idx++
	}

	return nil
}

func parseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	// Tolerate the WebVTT period separator for milliseconds.
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// ParseSRT reads SubRip content back into segments. Malformed blocks are
// skipped rather than failing the whole parse; index lines are consumed but
// not trusted for ordering.
func ParseSRT(r io.Reader) (Segments, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}

	content := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if content == "" {
		return nil, nil
	}

	var segs Segments
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		var index int
		if _, err := fmt.Sscanf(lines[0], "%d", &index); err != nil {
			continue
		}

		parts := strings.Split(lines[1], "-->")
		if len(parts) != 2 {
			continue
		}
		start, err := parseSRTTimestamp(parts[0])
		if err != nil {
			continue
		}
		end, err := parseSRTTimestamp(parts[1])
		if err != nil {
			continue
		}

		segs = append(segs, Segment{
			Text:  strings.Join(lines[2:], "\n"),
			Start: start,
			End:   end,
		})
	}

	return segs, nil
}
