package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeResult(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload := `{
			"text": "你好 世界",
			"timestamps": [
				{"text": "你好", "start": 0, "end": 1.2},
				{"text": "世界", "start": 2.0, "end": 3.5}
			],
			"raw": {"engine": "ignored"}
		}`

		res, err := DecodeResult(strings.NewReader(payload))
		require.NoError(t, err)
		require.Equal(t, RecognitionResult{
			Text: "你好 世界",
			Fragments: []Fragment{
				{Text: "你好", Start: 0, End: 1.2},
				{Text: "世界", Start: 2.0, End: 3.5},
			},
		}, res)
		require.False(t, res.IsEmpty())
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := DecodeResult(strings.NewReader("{not json"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to decode recognition result")
	})

	t.Run("no timestamps", func(t *testing.T) {
		res, err := DecodeResult(strings.NewReader(`{"text": "hello"}`))
		require.NoError(t, err)
		require.True(t, res.IsEmpty())
	})
}

func TestLoadResult(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "result.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"text":"hi","timestamps":[{"text":"hi","start":0,"end":1}]}`), 0644))

		res, err := LoadResult(path)
		require.NoError(t, err)
		require.Equal(t, "hi", res.Text)
		require.Len(t, res.Fragments, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadResult(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to open recognition result")
	})
}

func TestResultSegments(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var res RecognitionResult
		require.Empty(t, res.Segments())
	})

	t.Run("wraps and trims", func(t *testing.T) {
		res := RecognitionResult{
			Fragments: []Fragment{
				{Text: " 你好 ", Start: 0, End: 1.2},
				{Text: "世界", Start: 2.0, End: 3.5},
			},
		}
		require.Equal(t, Segments{
			{Text: "你好", Start: 0, End: 1.2},
			{Text: "世界", Start: 2.0, End: 3.5},
		}, res.Segments())
	})

	t.Run("orders by start", func(t *testing.T) {
		res := RecognitionResult{
			Fragments: []Fragment{
				{Text: "b", Start: 2, End: 3},
				{Text: "a", Start: 0, End: 1},
			},
		}
		segs := res.Segments()
		require.Equal(t, "a", segs[0].Text)
		require.Equal(t, "b", segs[1].Text)
	})
}
