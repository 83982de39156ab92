package subtitle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextOptionsIsValid(t *testing.T) {
	tcs := []struct {
		name          string
		opts          TextOptions
		expectedError string
	}{
		{
			name:          "empty",
			opts:          TextOptions{},
			expectedError: "SilenceThreshold should be a positive number",
		},
		{
			name: "invalid MaxSegmentDuration",
			opts: TextOptions{
				CompactOptions: TextCompactOptions{
					SilenceThreshold:   2.0,
					MaxSegmentDuration: -1,
				},
			},
			expectedError: "MaxSegmentDuration should be a positive number",
		},
		{
			name: "valid",
			opts: TextOptions{
				CompactOptions: TextCompactOptions{
					SilenceThreshold:   2.0,
					MaxSegmentDuration: 10.0,
				},
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.IsValid()
			if tc.expectedError == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.expectedError)
			}
		})
	}
}

func TestTextOptionsFromEnv(t *testing.T) {
	t.Setenv("TEXT_COMPACT_SILENCE_THRESHOLD", "1.5")
	t.Setenv("TEXT_COMPACT_MAX_SEGMENT_DURATION", "20")

	var opts TextOptions
	opts.FromEnv()
	require.Equal(t, TextOptions{
		CompactOptions: TextCompactOptions{
			SilenceThreshold:   1.5,
			MaxSegmentDuration: 20,
		},
	}, opts)
}

func TestCompactSegments(t *testing.T) {
	opts := TextCompactOptions{
		SilenceThreshold:   2.0,
		MaxSegmentDuration: 8.0,
	}

	t.Run("fewer than two segments", func(t *testing.T) {
		segs := Segments{{Text: "a", Start: 0, End: 1}}
		require.Equal(t, segs, compactSegments(segs, opts))
	})

	t.Run("short pauses are joined", func(t *testing.T) {
		segs := Segments{
			{Text: "a", Start: 0, End: 2},
			{Text: "b", Start: 2.5, End: 4},
		}
		require.Equal(t, Segments{
			{Text: "a b", Start: 0, End: 4},
		}, compactSegments(segs, opts))
	})

	t.Run("long pause keeps segments apart", func(t *testing.T) {
		segs := Segments{
			{Text: "a", Start: 0, End: 2},
			{Text: "b", Start: 10, End: 12},
		}
		require.Equal(t, segs, compactSegments(segs, opts))
	})

	t.Run("running span is capped", func(t *testing.T) {
		segs := Segments{
			{Text: "a", Start: 0, End: 5},
			{Text: "b", Start: 5, End: 9},
			{Text: "c", Start: 9, End: 13},
		}
		require.Equal(t, Segments{
			{Text: "a b", Start: 0, End: 9},
			{Text: "c", Start: 9, End: 13},
		}, compactSegments(segs, opts))
	})
}

func TestText(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var segs Segments
		var buf bytes.Buffer
		require.NoError(t, segs.Text(&buf, TextOptions{}))
		require.Empty(t, buf.String())
	})

	t.Run("no compaction", func(t *testing.T) {
		segs := Segments{
			{Text: "hello", Start: 0, End: 2},
			{Text: "world", Start: 30, End: 35},
		}
		var buf bytes.Buffer
		require.NoError(t, segs.Text(&buf, TextOptions{}))
		require.Equal(t, "00:00:00 -> 00:00:02\nhello\n\n00:00:30 -> 00:00:35\nworld\n", buf.String())
	})

	t.Run("compaction", func(t *testing.T) {
		segs := Segments{
			{Text: "a", Start: 0, End: 2},
			{Text: "b", Start: 2.5, End: 4},
			{Text: "c", Start: 20, End: 22},
		}
		var opts TextOptions
		opts.SetDefaults()

		var buf bytes.Buffer
		require.NoError(t, segs.Text(&buf, opts))
		require.Equal(t, "00:00:00 -> 00:00:04\na b\n\n00:00:20 -> 00:00:22\nc\n", buf.String())
	})

	t.Run("empty text dropped before compaction", func(t *testing.T) {
		segs := Segments{
			{Text: "a", Start: 0, End: 1},
			{Text: "  ", Start: 1, End: 2},
			{Text: "b", Start: 2, End: 3},
		}
		var opts TextOptions
		opts.SetDefaults()

		var buf bytes.Buffer
		require.NoError(t, segs.Text(&buf, opts))
		require.Equal(t, "00:00:00 -> 00:00:03\na b\n", buf.String())
	})
}
