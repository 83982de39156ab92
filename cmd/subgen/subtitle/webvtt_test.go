package subtitle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVTTTS(t *testing.T) {
	require.Equal(t, "00:00:00.000", vttTS(0, true))

	require.Equal(t, "00:01:10.000", vttTS(70, true))

	require.Equal(t, "00:00:00.999", vttTS(0.999, true))

	require.Equal(t, "00:00:01.000", vttTS(1, true))

	require.Equal(t, "00:00:01.100", vttTS(1.1, true))

	require.Equal(t, "00:01:02.200", vttTS(62.2, true))

	require.Equal(t, "01:00:00.000", vttTS(3600, true))

	require.Equal(t, "01:45:45.045", vttTS(6345.045, true))

	require.Equal(t, "00:01:10", vttTS(70.4, false))

	require.Equal(t, "00:01:11", vttTS(70.5, false))

	require.Equal(t, "01:01:01", vttTS(3661.234, false))
}

func TestWebVTT(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var segs Segments
		var buf bytes.Buffer
		require.NoError(t, segs.WebVTT(&buf))
		require.Equal(t, "WEBVTT\n", buf.String())
	})

	t.Run("segments", func(t *testing.T) {
		segs := SplitText("你好。今天天气很好！", 6.0, SegmenterOptions{})
		var buf bytes.Buffer
		require.NoError(t, segs.WebVTT(&buf))
		require.Equal(t, "WEBVTT\n\n"+
			"00:00:00.000 --> 00:00:01.800\n你好。\n\n"+
			"00:00:01.800 --> 00:00:06.000\n今天天气很好！\n", buf.String())
	})

	t.Run("text is escaped", func(t *testing.T) {
		segs := Segments{
			{Text: "a <b> & c", Start: 0, End: 1},
		}
		var buf bytes.Buffer
		require.NoError(t, segs.WebVTT(&buf))
		require.Equal(t, "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\na &lt;b&gt; &amp; c\n", buf.String())
	})

	t.Run("empty text is skipped", func(t *testing.T) {
		segs := Segments{
			{Text: "", Start: 0, End: 1},
			{Text: "kept", Start: 1, End: 2},
		}
		var buf bytes.Buffer
		require.NoError(t, segs.WebVTT(&buf))
		require.Equal(t, "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nkept\n", buf.String())
	})
}
